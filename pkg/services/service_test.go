package service

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

type fakeService struct {
	mu      sync.Mutex
	initErr error
	started chan struct{}
	stopped int
}

func newFakeService(initErr error) *fakeService {
	return &fakeService{initErr: initErr, started: make(chan struct{})}
}

func (f *fakeService) Init() error { return f.initErr }

func (f *fakeService) Run(ctx context.Context) { close(f.started) }

func (f *fakeService) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
}

func (f *fakeService) stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func TestManagerStopsOnContextCancel(t *testing.T) {
	a, b := newFakeService(nil), newFakeService(nil)
	m := NewManager(nopLogger{})
	m.AddService(a, b)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- m.Run(ctx) }()

	<-a.started
	<-b.started
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.stops() != 1 || b.stops() != 1 {
		t.Errorf("stops: a=%d b=%d", a.stops(), b.stops())
	}
}

func TestManagerInitFailureStopsStartedServices(t *testing.T) {
	boom := errors.New("boom")
	a, b := newFakeService(nil), newFakeService(boom)
	m := NewManager(nopLogger{})
	m.AddService(a, b)

	if err := m.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want init error, got %v", err)
	}
	if a.stops() != 1 {
		t.Errorf("started service not stopped: %d", a.stops())
	}
	if b.stops() != 0 {
		t.Errorf("failed service stopped: %d", b.stops())
	}
}
