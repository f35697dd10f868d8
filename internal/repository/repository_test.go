package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"lorcana/internal/models"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := NewSQLiteDB(&Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return NewRepository(db)
}

func createEvent(t *testing.T, repo *Repository, owner string) string {
	t.Helper()
	id, err := repo.CreateEvent(context.Background(), models.Event{
		OwnerID:   owner,
		Name:      "Store Championship",
		Type:      models.EventTypeTournament,
		DeckName:  "Amber Steel",
		Format:    "Core",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return id
}

func games(results ...models.Result) []models.GameResult {
	out := make([]models.GameResult, len(results))
	for i, r := range results {
		out[i] = models.GameResult{Result: r, OnThePlay: i%2 == 0}
	}
	return out
}

func TestRunMigrationsTwice(t *testing.T) {
	db, err := NewSQLiteDB(&Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second run: %v", err)
	}
}

func TestDeckLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	id, err := repo.CreateDeck(ctx, models.Deck{OwnerID: "u1", Name: "Amber Steel", InkColors: []string{"Amber", "Steel"}})
	if err != nil {
		t.Fatalf("create deck: %v", err)
	}

	d, err := repo.GetDeck(ctx, "u1", id)
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if d.Name != "Amber Steel" || len(d.InkColors) != 2 || d.InkColors[1] != "Steel" {
		t.Errorf("unexpected deck %+v", d)
	}

	if _, err := repo.GetDeck(ctx, "u2", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("other owner: want ErrNotFound, got %v", err)
	}

	decks, err := repo.ListDecks(ctx, "u1")
	if err != nil {
		t.Fatalf("list decks: %v", err)
	}
	if len(decks) != 1 {
		t.Fatalf("want 1 deck, got %d", len(decks))
	}

	if err := repo.DeleteDeck(ctx, "u1", id); err != nil {
		t.Fatalf("delete deck: %v", err)
	}
	if _, err := repo.GetDeck(ctx, "u1", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: want ErrNotFound, got %v", err)
	}
	if err := repo.DeleteDeck(ctx, "u1", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestDeleteDeckKeepsEvents(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	deckID, err := repo.CreateDeck(ctx, models.Deck{OwnerID: "u1", Name: "Ruby Sapphire"})
	if err != nil {
		t.Fatalf("create deck: %v", err)
	}
	eventID, err := repo.CreateEvent(ctx, models.Event{
		OwnerID: "u1", Name: "Weekly", Type: models.EventTypePlaytest,
		UserDeckID: deckID, DeckName: "Ruby Sapphire",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := repo.DeleteDeck(ctx, "u1", deckID); err != nil {
		t.Fatalf("delete deck: %v", err)
	}

	e, err := repo.FetchEventMeta(ctx, "u1", eventID)
	if err != nil {
		t.Fatalf("event should survive deck delete: %v", err)
	}
	if e.DeckName != "Ruby Sapphire" || e.UserDeckID != deckID {
		t.Errorf("deck snapshot lost: %+v", e)
	}
}

func TestEventRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	id := createEvent(t, repo, "u1")

	e, err := repo.FetchEventMeta(ctx, "u1", id)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if e.Type != models.EventTypeTournament || e.Format != "Core" {
		t.Errorf("unexpected event %+v", e)
	}
	if !e.StartDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start date: got %v", e.StartDate)
	}
	if !e.Counters().IsZero() {
		t.Errorf("new event counters should be zero, got %+v", e.Counters())
	}

	if _, err := repo.FetchEventMeta(ctx, "u2", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("other owner: want ErrNotFound, got %v", err)
	}
}

func TestListEventsFilters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	mk := func(e models.Event) string {
		id, err := repo.CreateEvent(ctx, e)
		if err != nil {
			t.Fatalf("create event: %v", err)
		}
		return id
	}

	byID := mk(models.Event{OwnerID: "u1", Name: "a", Type: models.EventTypeTournament, UserDeckID: "d1", DeckName: "Emerald", Format: "Core"})
	legacy := mk(models.Event{OwnerID: "u1", Name: "b", Type: models.EventTypePlaytest, DeckName: "Emerald", Format: "Infinity"})
	mk(models.Event{OwnerID: "u1", Name: "c", Type: models.EventTypePlaytest, UserDeckID: "d2", DeckName: "Emerald"})
	mk(models.Event{OwnerID: "u2", Name: "d", Type: models.EventTypePlaytest, UserDeckID: "d1", DeckName: "Emerald"})

	tests := []struct {
		name   string
		filter EventFilter
		want   []string
	}{
		{"deck id with legacy name", EventFilter{OwnerID: "u1", DeckID: "d1", DeckName: "Emerald"}, []string{byID, legacy}},
		{"deck id only", EventFilter{OwnerID: "u1", DeckID: "d1"}, []string{byID}},
		{"type", EventFilter{OwnerID: "u1", DeckID: "d1", DeckName: "Emerald", Type: models.EventTypePlaytest}, []string{legacy}},
		{"format", EventFilter{OwnerID: "u1", Format: "Core"}, []string{byID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.ListEvents(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			got := make([]string, 0, len(events))
			for _, e := range events {
				got = append(got, e.ID)
			}
			sort.Strings(got)
			want := append([]string(nil), tt.want...)
			sort.Strings(want)
			if len(got) != len(want) {
				t.Fatalf("got %v, want %v", got, want)
			}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("got %v, want %v", got, want)
				}
			}
		})
	}
}

func TestCreateRoundAppliesDelta(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	eventID := createEvent(t, repo, "u1")

	roundID, err := repo.CreateRound(ctx, models.Round{
		EventID:           eventID,
		OwnerID:           "u1",
		Games:             games(models.ResultWin, models.ResultLoss, models.ResultWin),
		OpponentInkColors: []string{"Ruby"},
	}, models.Counters{Wins: 1})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}

	e, err := repo.FetchEventMeta(ctx, "u1", eventID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if e.Counters() != (models.Counters{Wins: 1}) {
		t.Errorf("counters: got %+v", e.Counters())
	}

	r, err := repo.GetRound(ctx, "u1", eventID, roundID)
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	if len(r.Games) != 3 || r.Games[1].Result != models.ResultLoss || r.Games[1].OnThePlay {
		t.Errorf("games not preserved in order: %+v", r.Games)
	}
	if !r.Games[0].OnThePlay || !r.Games[2].OnThePlay {
		t.Errorf("on the play flags lost: %+v", r.Games)
	}
	if len(r.OpponentInkColors) != 1 || r.OpponentInkColors[0] != "Ruby" {
		t.Errorf("opponent inks: %v", r.OpponentInkColors)
	}
}

func TestCreateRoundUnknownEvent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	eventID := createEvent(t, repo, "u1")

	_, err := repo.CreateRound(ctx, models.Round{EventID: eventID, OwnerID: "u2", Games: games(models.ResultWin)}, models.Counters{Wins: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	rounds, err := repo.FetchRounds(ctx, RoundScope{OwnerID: "u1", EventIDs: []string{eventID}})
	if err != nil {
		t.Fatalf("fetch rounds: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("failed create left %d rounds behind", len(rounds))
	}
}

func TestEmptyRoundIsStored(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	eventID := createEvent(t, repo, "u1")

	if _, err := repo.CreateRound(ctx, models.Round{EventID: eventID, OwnerID: "u1"}, models.Counters{}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rounds, err := repo.FetchRounds(ctx, RoundScope{OwnerID: "u1", EventIDs: []string{eventID}})
	if err != nil {
		t.Fatalf("fetch rounds: %v", err)
	}
	if len(rounds) != 1 || len(rounds[0].Games) != 0 {
		t.Fatalf("want one empty round, got %+v", rounds)
	}
}

func TestReplaceAndDeleteRound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	eventID := createEvent(t, repo, "u1")

	roundID, err := repo.CreateRound(ctx, models.Round{
		EventID: eventID, OwnerID: "u1",
		Games: games(models.ResultWin, models.ResultWin),
	}, models.Counters{Wins: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = repo.ReplaceRound(ctx, models.Round{
		ID: roundID, EventID: eventID, OwnerID: "u1",
		Games:             games(models.ResultLoss, models.ResultLoss),
		OpponentInkColors: []string{"Amethyst", "Steel"},
	}, models.Counters{Wins: -1, Losses: 1})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	e, _ := repo.FetchEventMeta(ctx, "u1", eventID)
	if e.Counters() != (models.Counters{Losses: 1}) {
		t.Errorf("after edit: got %+v", e.Counters())
	}
	r, _ := repo.GetRound(ctx, "u1", eventID, roundID)
	if len(r.Games) != 2 || r.Games[0].Result != models.ResultLoss || len(r.OpponentInkColors) != 2 {
		t.Errorf("round not replaced: %+v", r)
	}

	if err := repo.DeleteRound(ctx, "u2", eventID, roundID, models.Counters{Losses: -1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete: want ErrNotFound, got %v", err)
	}
	if err := repo.DeleteRound(ctx, "u1", eventID, roundID, models.Counters{Losses: -1}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	e, _ = repo.FetchEventMeta(ctx, "u1", eventID)
	if !e.Counters().IsZero() {
		t.Errorf("after delete: got %+v", e.Counters())
	}
	if _, err := repo.GetRound(ctx, "u1", eventID, roundID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted round: want ErrNotFound, got %v", err)
	}
}

func TestFailedCounterUpdateRollsBackRoundChange(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	eventID := createEvent(t, repo, "u1")

	roundID, err := repo.CreateRound(ctx, models.Round{
		EventID: eventID, OwnerID: "u1",
		Games:             games(models.ResultWin, models.ResultWin),
		OpponentInkColors: []string{"Ruby"},
	}, models.Counters{Wins: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = repo.db.ExecContext(ctx, `CREATE TRIGGER reject_counter_update
		BEFORE UPDATE OF wins, losses, draws ON events
		BEGIN SELECT RAISE(ABORT, 'counter update rejected'); END`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	assertUnchanged := func(t *testing.T) {
		t.Helper()
		e, err := repo.FetchEventMeta(ctx, "u1", eventID)
		if err != nil {
			t.Fatalf("fetch event: %v", err)
		}
		if e.Counters() != (models.Counters{Wins: 1}) {
			t.Errorf("counters = %+v, want 1-0-0", e.Counters())
		}
		r, err := repo.GetRound(ctx, "u1", eventID, roundID)
		if err != nil {
			t.Fatalf("round should still exist: %v", err)
		}
		if len(r.Games) != 2 || r.Games[0].Result != models.ResultWin || r.Games[1].Result != models.ResultWin {
			t.Errorf("games = %+v, want the original two wins", r.Games)
		}
		if len(r.OpponentInkColors) != 1 || r.OpponentInkColors[0] != "Ruby" {
			t.Errorf("opponent inks = %v", r.OpponentInkColors)
		}
	}

	t.Run("replace", func(t *testing.T) {
		err := repo.ReplaceRound(ctx, models.Round{
			ID: roundID, EventID: eventID, OwnerID: "u1",
			Games:             games(models.ResultLoss),
			OpponentInkColors: []string{"Steel"},
		}, models.Counters{Wins: -1, Losses: 1})
		if err == nil {
			t.Fatal("expected the counter update to fail")
		}
		assertUnchanged(t)
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.DeleteRound(ctx, "u1", eventID, roundID, models.Counters{Wins: -1}); err == nil {
			t.Fatal("expected the counter update to fail")
		}
		assertUnchanged(t)
	})

	t.Run("create", func(t *testing.T) {
		if _, err := repo.CreateRound(ctx, models.Round{
			EventID: eventID, OwnerID: "u1",
			Games: games(models.ResultLoss),
		}, models.Counters{Losses: 1}); err == nil {
			t.Fatal("expected the counter update to fail")
		}
		rounds, err := repo.FetchRounds(ctx, RoundScope{OwnerID: "u1", EventIDs: []string{eventID}})
		if err != nil {
			t.Fatalf("fetch rounds: %v", err)
		}
		if len(rounds) != 1 {
			t.Errorf("expected only the original round, got %d", len(rounds))
		}
	})
}

func TestOwnerSheetUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	if _, err := repo.GetOwnerSheet(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if err := repo.SaveOwnerSheet(ctx, models.OwnerSheet{OwnerID: "u1", SpreadsheetID: "own"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	err := repo.SaveOwnerSheet(ctx, models.OwnerSheet{OwnerID: "u1", SpreadsheetID: "shared", SheetTitle: "u1", SheetID: 42})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := repo.GetOwnerSheet(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SpreadsheetID != "shared" || got.SheetTitle != "u1" || got.SheetID != 42 {
		t.Errorf("got %+v", got)
	}
}

func TestDeleteEventCascades(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	eventID := createEvent(t, repo, "u1")

	for i := 0; i < 3; i++ {
		if _, err := repo.CreateRound(ctx, models.Round{EventID: eventID, OwnerID: "u1", Games: games(models.ResultWin)}, models.Counters{Wins: 1}); err != nil {
			t.Fatalf("create round: %v", err)
		}
	}

	if err := repo.DeleteEvent(ctx, "u2", eventID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete: want ErrNotFound, got %v", err)
	}
	if err := repo.DeleteEvent(ctx, "u1", eventID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	rounds, err := repo.FetchRounds(ctx, RoundScope{OwnerID: "u1", EventIDs: []string{eventID}})
	if err != nil {
		t.Fatalf("fetch rounds: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("rounds survived event delete: %d", len(rounds))
	}
}

func TestConcurrentDeltasAreNotLost(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	eventID := createEvent(t, repo, "u1")

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			delta := models.Counters{Wins: 1}
			g := games(models.ResultWin)
			if i%2 == 1 {
				delta = models.Counters{Losses: 1}
				g = games(models.ResultLoss)
			}
			if _, err := repo.CreateRound(ctx, models.Round{EventID: eventID, OwnerID: "u1", Games: g}, delta); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent create: %v", err)
	}

	e, err := repo.FetchEventMeta(ctx, "u1", eventID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if e.Counters() != (models.Counters{Wins: writers / 2, Losses: writers / 2}) {
		t.Errorf("lost updates: %+v", e.Counters())
	}
}

func TestApplyCounterDelta(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	eventID := createEvent(t, repo, "u1")

	if err := repo.ApplyCounterDelta(ctx, "u1", eventID, models.Counters{Wins: 2, Draws: 1}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := repo.ApplyCounterDelta(ctx, "u1", eventID, models.Counters{Wins: -1}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	e, _ := repo.FetchEventMeta(ctx, "u1", eventID)
	if e.Counters() != (models.Counters{Wins: 1, Draws: 1}) {
		t.Errorf("got %+v", e.Counters())
	}

	if err := repo.ApplyCounterDelta(ctx, "u1", "missing", models.Counters{Wins: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing event: want ErrNotFound, got %v", err)
	}
}
