package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"lorcana/internal/models"
	"lorcana/internal/repository"
)

type EventInput struct {
	Name      string           `json:"name"`
	Type      models.EventType `json:"type"`
	DeckID    string           `json:"deck_id"`
	Format    string           `json:"format"`
	StartDate string           `json:"start_date"`
}

type EventListFilter struct {
	DeckID string
	Type   models.EventType
	Format string
}

type EventServiceImpl struct {
	repo   repository.Event
	decks  repository.Deck
	views  *views
	logger Logger
}

func NewEventServiceImpl(repo repository.Event, decks repository.Deck, v *views, logger Logger) *EventServiceImpl {
	return &EventServiceImpl{
		repo:   repo,
		decks:  decks,
		views:  v,
		logger: logger,
	}
}

func (s *EventServiceImpl) CreateEvent(ctx context.Context, ownerID string, in EventInput) (*models.Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidf("event name is required")
	}
	if !in.Type.Valid() {
		return nil, invalidf("event type must be %s or %s, got %q", models.EventTypeTournament, models.EventTypePlaytest, in.Type)
	}

	e := models.Event{
		OwnerID: ownerID,
		Name:    name,
		Type:    in.Type,
		Format:  strings.TrimSpace(in.Format),
	}

	if in.StartDate != "" {
		t, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, invalidf("start date must be YYYY-MM-DD, got %q", in.StartDate)
		}
		e.StartDate = t
	}

	if in.DeckID != "" {
		d, err := s.decks.GetDeck(ctx, ownerID, in.DeckID)
		if err != nil {
			return nil, storageErr("get deck", err)
		}
		e.UserDeckID = d.ID
		e.DeckName = d.Name
	}

	id, err := s.repo.CreateEvent(ctx, e)
	if err != nil {
		return nil, storageErr("create event", err)
	}

	created, err := s.repo.FetchEventMeta(ctx, ownerID, id)
	if err != nil {
		return nil, storageErr("load event", err)
	}
	s.logger.Info("event %s created for %s", id, ownerID)
	return &created, nil
}

func (s *EventServiceImpl) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	if err := s.repo.DeleteEvent(ctx, ownerID, eventID); err != nil {
		return storageErr("delete event", err)
	}
	s.logger.Info("event %s deleted for %s", eventID, ownerID)
	return nil
}

func (s *EventServiceImpl) ListEvents(ctx context.Context, ownerID string, filter EventListFilter) ([]EventSummary, error) {
	f := repository.EventFilter{
		OwnerID: ownerID,
		Type:    filter.Type,
		Format:  filter.Format,
	}
	if filter.DeckID != "" {
		d, err := s.decks.GetDeck(ctx, ownerID, filter.DeckID)
		switch {
		case err == nil:
			f.DeckID = d.ID
			f.DeckName = d.Name
		case errors.Is(err, repository.ErrNotFound):
			// deleted deck, its events still carry the id
			f.DeckID = filter.DeckID
		default:
			return nil, storageErr("get deck", err)
		}
	}
	return s.views.eventList(ctx, f)
}

func (s *EventServiceImpl) GetEventDetail(ctx context.Context, ownerID, eventID string) (*EventDetail, error) {
	return s.views.eventDetail(ctx, ownerID, eventID)
}

// RepairCounters brings the stored counters of an event back to the values
// recomputed from its rounds and returns the applied correction.
func (s *EventServiceImpl) RepairCounters(ctx context.Context, ownerID, eventID string) (models.Counters, error) {
	detail, err := s.views.eventDetail(ctx, ownerID, eventID)
	if err != nil {
		return models.Counters{}, err
	}

	if detail.Drift == nil {
		return models.Counters{}, nil
	}

	delta := detail.Drift.Delta()

	if err := s.repo.ApplyCounterDelta(ctx, ownerID, eventID, delta); err != nil {
		return models.Counters{}, storageErr("repair counters", err)
	}
	s.logger.Info("event %s counters repaired by %+v", eventID, delta)
	return delta, nil
}
