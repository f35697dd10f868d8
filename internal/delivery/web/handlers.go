package web

import (
	"fmt"
	"io"
	"net/http"

	"lorcana/internal/application"
	"lorcana/internal/models"

	"github.com/go-chi/chi"
)

type deckRequest struct {
	Name      string   `json:"name"`
	InkColors []string `json:"ink_colors"`
}

type roundRequest struct {
	Games             []models.GameResult `json:"games"`
	OpponentInkColors []string            `json:"opponent_ink_colors"`
	// PreviousGames lets a client that already holds the round skip the
	// lookup on edit.
	PreviousGames []models.GameResult `json:"previous_games,omitempty"`
}

func (s *Server) listDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.services.DeckService.ListDecks(r.Context(), ownerID(r))
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusOK, decks)
}

func (s *Server) createDeck(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if !s.decode(w, r, &req) {
		return
	}

	deck, err := s.services.DeckService.CreateDeck(r.Context(), ownerID(r), req.Name, req.InkColors)
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusCreated, deck)
}

func (s *Server) getDeck(w http.ResponseWriter, r *http.Request) {
	dv, err := s.services.DeckService.GetDeckStats(r.Context(), ownerID(r), chi.URLParam(r, "deckID"))
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusOK, dv)
}

func (s *Server) deleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.services.DeckService.DeleteDeck(r.Context(), ownerID(r), chi.URLParam(r, "deckID")); err != nil {
		s.error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := application.EventListFilter{
		DeckID: q.Get("deck_id"),
		Type:   models.EventType(q.Get("type")),
		Format: q.Get("format"),
	}

	events, err := s.services.EventService.ListEvents(r.Context(), ownerID(r), filter)
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusOK, events)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req application.EventInput
	if !s.decode(w, r, &req) {
		return
	}

	e, err := s.services.EventService.CreateEvent(r.Context(), ownerID(r), req)
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusCreated, e)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	detail, err := s.services.EventService.GetEventDetail(r.Context(), ownerID(r), chi.URLParam(r, "eventID"))
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusOK, detail)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.services.EventService.DeleteEvent(r.Context(), ownerID(r), chi.URLParam(r, "eventID")); err != nil {
		s.error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) repairEvent(w http.ResponseWriter, r *http.Request) {
	delta, err := s.services.EventService.RepairCounters(r.Context(), ownerID(r), chi.URLParam(r, "eventID"))
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusOK, struct {
		Applied models.Counters `json:"applied"`
	}{delta})
}

func (s *Server) addRound(w http.ResponseWriter, r *http.Request) {
	var req roundRequest
	if !s.decode(w, r, &req) {
		return
	}

	rd, err := s.services.RoundService.AddRound(r.Context(), ownerID(r), chi.URLParam(r, "eventID"), req.Games, req.OpponentInkColors)
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusCreated, rd)
}

func (s *Server) importRound(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10*maxBodyBytes))
	if err != nil {
		s.response(w, http.StatusBadRequest, errorBody{Error: "unable to read image: " + err.Error()})
		return
	}

	rd, err := s.services.RoundService.ImportRoundFromScreenshot(r.Context(), ownerID(r), chi.URLParam(r, "eventID"), data)
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusCreated, rd)
}

func (s *Server) getRound(w http.ResponseWriter, r *http.Request) {
	rd, err := s.services.RoundService.GetRound(r.Context(), ownerID(r), chi.URLParam(r, "eventID"), chi.URLParam(r, "roundID"))
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusOK, rd)
}

func (s *Server) editRound(w http.ResponseWriter, r *http.Request) {
	var req roundRequest
	if !s.decode(w, r, &req) {
		return
	}

	// stored rounds always have games, so an empty list cannot describe one
	if req.PreviousGames != nil && len(req.PreviousGames) == 0 {
		s.response(w, http.StatusBadRequest, errorBody{Error: "previous_games must list the stored games or be omitted"})
		return
	}

	owner := ownerID(r)
	eventID, roundID := chi.URLParam(r, "eventID"), chi.URLParam(r, "roundID")

	previous := models.Round{ID: roundID, EventID: eventID, Games: req.PreviousGames}
	if req.PreviousGames == nil {
		stored, err := s.services.RoundService.GetRound(r.Context(), owner, eventID, roundID)
		if err != nil {
			s.error(w, err)
			return
		}
		previous = *stored
	}

	rd, err := s.services.RoundService.EditRound(r.Context(), owner, previous, req.Games, req.OpponentInkColors)
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusOK, rd)
}

func (s *Server) deleteRound(w http.ResponseWriter, r *http.Request) {
	err := s.services.RoundService.DeleteRound(r.Context(), ownerID(r), chi.URLParam(r, "eventID"), chi.URLParam(r, "roundID"))
	if err != nil {
		s.error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	data, err := s.services.ReportService.GetExcelReport(r.Context(), ownerID(r))
	if err != nil {
		s.error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="lorcana-stats.xlsx"`)
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	if _, err := w.Write(data); err != nil {
		s.logger.Error("unable to send report: %v", err)
	}
}

func (s *Server) syncSheet(w http.ResponseWriter, r *http.Request) {
	url, err := s.services.ReportService.SyncToGoogleSheet(r.Context(), ownerID(r))
	if err != nil {
		s.error(w, err)
		return
	}
	s.response(w, http.StatusOK, struct {
		URL string `json:"url"`
	}{url})
}
