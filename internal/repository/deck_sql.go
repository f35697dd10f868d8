package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lorcana/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type deckRow struct {
	ID        string `db:"id"`
	OwnerID   string `db:"owner_id"`
	Name      string `db:"name"`
	InkColors string `db:"ink_colors"`
	CreatedAt int64  `db:"created_at"`
}

func (r deckRow) toModel() (models.Deck, error) {
	colors, err := decodeColors(r.InkColors)
	if err != nil {
		return models.Deck{}, err
	}
	return models.Deck{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		InkColors: colors,
		CreatedAt: fromMillis(r.CreatedAt),
	}, nil
}

var deckColumns = []string{"id", "owner_id", "name", "ink_colors", "created_at"}

type DeckSQL struct {
	store
	cache *DeckCache
}

func NewDeckSQL(s store, cache *DeckCache) *DeckSQL {
	return &DeckSQL{store: s, cache: cache}
}

func (r *DeckSQL) CreateDeck(ctx context.Context, deck models.Deck) (string, error) {
	colors, err := encodeColors(deck.InkColors)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = r.exec(ctx, r.db, r.sb.Insert("decks").
		Columns(deckColumns...).
		Values(id, deck.OwnerID, deck.Name, colors, nowMillis()))
	if err != nil {
		return "", fmt.Errorf("failed to insert deck: %w", err)
	}
	return id, nil
}

func (r *DeckSQL) GetDeck(ctx context.Context, ownerID, deckID string) (models.Deck, error) {
	if d, ok := r.cache.Get(ownerID, deckID); ok {
		return d, nil
	}

	var row deckRow
	err := r.getRow(ctx, r.db, &row, r.sb.Select(deckColumns...).
		From("decks").
		Where(squirrel.Eq{"id": deckID, "owner_id": ownerID}))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Deck{}, fmt.Errorf("deck %s: %w", deckID, ErrNotFound)
	}
	if err != nil {
		return models.Deck{}, fmt.Errorf("failed to get deck: %w", err)
	}

	d, err := row.toModel()
	if err != nil {
		return models.Deck{}, err
	}
	r.cache.Set(d)
	return d, nil
}

func (r *DeckSQL) ListDecks(ctx context.Context, ownerID string) ([]models.Deck, error) {
	var rows []deckRow
	err := r.selectRows(ctx, r.db, &rows, r.sb.Select(deckColumns...).
		From("decks").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at", "id"))
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	decks := make([]models.Deck, 0, len(rows))
	for _, row := range rows {
		d, err := row.toModel()
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

// DeleteDeck removes only the deck row. Events keep their deck id and the
// deck name snapshot taken when they were created.
func (r *DeckSQL) DeleteDeck(ctx context.Context, ownerID, deckID string) error {
	n, err := r.exec(ctx, r.db, r.sb.Delete("decks").
		Where(squirrel.Eq{"id": deckID, "owner_id": ownerID}))
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	r.cache.Delete(ownerID, deckID)
	if n == 0 {
		return fmt.Errorf("deck %s: %w", deckID, ErrNotFound)
	}
	return nil
}
