package repository

import (
	"context"
	"errors"

	"lorcana/internal/models"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("not found")

// RoundScope selects the rounds of the listed events, all owned by OwnerID.
type RoundScope struct {
	OwnerID  string
	EventIDs []string
}

type EventFilter struct {
	OwnerID string
	// DeckID also matches legacy events that carry no deck id but the
	// deck's name in DeckName.
	DeckID   string
	DeckName string
	Type     models.EventType
	Format   string
}

type Deck interface {
	CreateDeck(ctx context.Context, deck models.Deck) (string, error)
	GetDeck(ctx context.Context, ownerID, deckID string) (models.Deck, error)
	ListDecks(ctx context.Context, ownerID string) ([]models.Deck, error)
	DeleteDeck(ctx context.Context, ownerID, deckID string) error
}

type Event interface {
	CreateEvent(ctx context.Context, event models.Event) (string, error)
	FetchEventMeta(ctx context.Context, ownerID, eventID string) (models.Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, error)
	DeleteEvent(ctx context.Context, ownerID, eventID string) error
	ApplyCounterDelta(ctx context.Context, ownerID, eventID string, delta models.Counters) error
}

type Round interface {
	FetchRounds(ctx context.Context, scope RoundScope) ([]models.Round, error)
	GetRound(ctx context.Context, ownerID, eventID, roundID string) (models.Round, error)
	CreateRound(ctx context.Context, round models.Round, delta models.Counters) (string, error)
	ReplaceRound(ctx context.Context, round models.Round, delta models.Counters) error
	DeleteRound(ctx context.Context, ownerID, eventID, roundID string, delta models.Counters) error
}

type Sheet interface {
	GetOwnerSheet(ctx context.Context, ownerID string) (models.OwnerSheet, error)
	SaveOwnerSheet(ctx context.Context, sheet models.OwnerSheet) error
}

type Repository struct {
	Deck
	Event
	Round
	Sheet
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	s := newStore(db)
	return &Repository{
		Deck:  NewDeckSQL(s, NewDeckCache()),
		Event: NewEventSQL(s),
		Round: NewRoundSQL(s),
		Sheet: NewSheetSQL(s),
		db:    db,
	}
}
