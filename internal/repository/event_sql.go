package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lorcana/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const dateLayout = "2006-01-02"

type eventRow struct {
	ID         string `db:"id"`
	OwnerID    string `db:"owner_id"`
	Name       string `db:"name"`
	Type       string `db:"event_type"`
	UserDeckID string `db:"user_deck_id"`
	DeckName   string `db:"deck_name"`
	Format     string `db:"format"`
	StartDate  string `db:"start_date"`
	Wins       int    `db:"wins"`
	Losses     int    `db:"losses"`
	Draws      int    `db:"draws"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
}

func (r eventRow) toModel() (models.Event, error) {
	e := models.Event{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		Name:       r.Name,
		Type:       models.EventType(r.Type),
		UserDeckID: r.UserDeckID,
		DeckName:   r.DeckName,
		Format:     r.Format,
		Wins:       r.Wins,
		Losses:     r.Losses,
		Draws:      r.Draws,
		CreatedAt:  fromMillis(r.CreatedAt),
	}
	if r.StartDate != "" {
		d, err := time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return models.Event{}, fmt.Errorf("event %s has invalid start date %q: %w", r.ID, r.StartDate, err)
		}
		e.StartDate = d
	}
	return e, nil
}

var eventColumns = []string{
	"id", "owner_id", "name", "event_type", "user_deck_id", "deck_name", "format",
	"start_date", "wins", "losses", "draws", "created_at", "updated_at",
}

type EventSQL struct {
	store
}

func NewEventSQL(s store) *EventSQL {
	return &EventSQL{store: s}
}

// CreateEvent stores a new event with zeroed counters.
func (r *EventSQL) CreateEvent(ctx context.Context, event models.Event) (string, error) {
	var startDate string
	if !event.StartDate.IsZero() {
		startDate = event.StartDate.Format(dateLayout)
	}

	id := uuid.NewString()
	ts := nowMillis()
	_, err := r.exec(ctx, r.db, r.sb.Insert("events").
		Columns(eventColumns...).
		Values(id, event.OwnerID, event.Name, string(event.Type), event.UserDeckID, event.DeckName,
			event.Format, startDate, 0, 0, 0, ts, ts))
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

func (r *EventSQL) FetchEventMeta(ctx context.Context, ownerID, eventID string) (models.Event, error) {
	var row eventRow
	err := r.getRow(ctx, r.db, &row, r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": eventID, "owner_id": ownerID}))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	return row.toModel()
}

func (r *EventSQL) ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	q := r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"owner_id": filter.OwnerID}).
		OrderBy("start_date DESC", "created_at DESC", "id")

	switch {
	case filter.DeckID != "" && filter.DeckName != "":
		q = q.Where(squirrel.Or{
			squirrel.Eq{"user_deck_id": filter.DeckID},
			squirrel.And{
				squirrel.Eq{"user_deck_id": ""},
				squirrel.Eq{"deck_name": filter.DeckName},
			},
		})
	case filter.DeckID != "":
		q = q.Where(squirrel.Eq{"user_deck_id": filter.DeckID})
	case filter.DeckName != "":
		q = q.Where(squirrel.Eq{"deck_name": filter.DeckName})
	}
	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"event_type": string(filter.Type)})
	}
	if filter.Format != "" {
		q = q.Where(squirrel.Eq{"format": filter.Format})
	}

	var rows []eventRow
	if err := r.selectRows(ctx, r.db, &rows, q); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		e, err := row.toModel()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// DeleteEvent removes the event together with its rounds and their games.
func (r *EventSQL) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	return r.transaction(ctx, func(tx *sqlx.Tx) error {
		roundIDs := r.sb.Select("id").From("rounds").
			Where(squirrel.Eq{"event_id": eventID, "owner_id": ownerID})

		var ids []string
		if err := r.selectRows(ctx, tx, &ids, roundIDs); err != nil {
			return fmt.Errorf("failed to list event rounds: %w", err)
		}

		if len(ids) > 0 {
			if _, err := r.exec(ctx, tx, r.sb.Delete("round_games").Where(squirrel.Eq{"round_id": ids})); err != nil {
				return fmt.Errorf("failed to delete round games: %w", err)
			}
			if _, err := r.exec(ctx, tx, r.sb.Delete("rounds").Where(squirrel.Eq{"id": ids})); err != nil {
				return fmt.Errorf("failed to delete rounds: %w", err)
			}
		}

		n, err := r.exec(ctx, tx, r.sb.Delete("events").
			Where(squirrel.Eq{"id": eventID, "owner_id": ownerID}))
		if err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return nil
	})
}

// ApplyCounterDelta adds delta to the stored counters as a relative
// increment, so concurrent writers never overwrite each other.
func (r *EventSQL) ApplyCounterDelta(ctx context.Context, ownerID, eventID string, delta models.Counters) error {
	return applyCounterDelta(ctx, r.store, r.db, ownerID, eventID, delta)
}

func applyCounterDelta(ctx context.Context, s store, e sqlx.ExecerContext, ownerID, eventID string, delta models.Counters) error {
	if delta.IsZero() {
		return nil
	}
	n, err := s.exec(ctx, e, s.sb.Update("events").
		Set("wins", squirrel.Expr("wins + ?", delta.Wins)).
		Set("losses", squirrel.Expr("losses + ?", delta.Losses)).
		Set("draws", squirrel.Expr("draws + ?", delta.Draws)).
		Set("updated_at", nowMillis()).
		Where(squirrel.Eq{"id": eventID, "owner_id": ownerID}))
	if err != nil {
		return fmt.Errorf("failed to apply counter delta: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	return nil
}

func eventExists(ctx context.Context, s store, q sqlx.QueryerContext, ownerID, eventID string) error {
	var ids []string
	err := s.selectRows(ctx, q, &ids, s.sb.Select("id").From("events").
		Where(squirrel.Eq{"id": eventID, "owner_id": ownerID}))
	if err != nil {
		return fmt.Errorf("failed to check event: %w", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	return nil
}
