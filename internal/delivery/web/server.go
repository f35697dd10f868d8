package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"lorcana/internal/application"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

const (
	ownerHeader   = "X-Owner-ID"
	ownerPrefix   = "http:"
	maxBodyBytes  = 1 << 20
	shutdownGrace = 5 * time.Second
)

type ctxKey int

const ownerKey ctxKey = iota

type Server struct {
	http     *http.Server
	services *application.Service
	logger   application.Logger
}

func NewServer(addr string, services *application.Service, logger application.Logger) *Server {
	s := &Server{
		services: services,
		logger:   logger,
	}

	s.http = &http.Server{
		Addr:         addr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s
}

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", noContent)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.requireOwner)

		r.Get("/decks", s.listDecks)
		r.Post("/decks", s.createDeck)
		r.Get("/decks/{deckID}", s.getDeck)
		r.Delete("/decks/{deckID}", s.deleteDeck)

		r.Get("/events", s.listEvents)
		r.Post("/events", s.createEvent)
		r.Get("/events/{eventID}", s.getEvent)
		r.Delete("/events/{eventID}", s.deleteEvent)
		r.Post("/events/{eventID}/repair", s.repairEvent)

		r.Post("/events/{eventID}/rounds", s.addRound)
		r.Post("/events/{eventID}/rounds/import", s.importRound)
		r.Get("/events/{eventID}/rounds/{roundID}", s.getRound)
		r.Put("/events/{eventID}/rounds/{roundID}", s.editRound)
		r.Delete("/events/{eventID}/rounds/{roundID}", s.deleteRound)

		r.Get("/report.xlsx", s.exportReport)
		r.Post("/sheets/sync", s.syncSheet)
	})

	return r
}

func (s *Server) Init() error {
	s.logger.Info("HTTP API will listen on %s", s.http.Addr)
	return nil
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting HTTP server")
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		s.logger.Info("HTTP server closed")
		return
	}
	s.logger.Error("HTTP server crashed: %v", err)
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Warn("unable to shut down HTTP server: %v", err)
	}
}

// requireOwner scopes every request to the caller named in X-Owner-ID.
func (s *Server) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(ownerHeader)
		if owner == "" {
			s.response(w, http.StatusUnauthorized, errorBody{Error: "missing " + ownerHeader + " header"})
			return
		}
		ctx := context.WithValue(r.Context(), ownerKey, ownerPrefix+owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ownerID(r *http.Request) string {
	owner, _ := r.Context().Value(ownerKey).(string)
	return owner
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) response(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("unable to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(response); err != nil {
		s.logger.Error("unable to send response: %v", err)
	}
}

func (s *Server) error(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	} else {
		s.logger.Debug("request rejected: %v", err)
	}
	s.response(w, code, errorBody{Error: err.Error()})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, application.ErrEmptyRoundSubmission), errors.Is(err, application.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrNotConfigured):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.response(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}
