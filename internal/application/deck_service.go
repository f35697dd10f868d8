package application

import (
	"context"
	"strings"

	"lorcana/internal/models"
	"lorcana/internal/repository"
)

type DeckServiceImpl struct {
	repo   repository.Deck
	views  *views
	logger Logger
}

func NewDeckServiceImpl(repo repository.Deck, v *views, logger Logger) *DeckServiceImpl {
	return &DeckServiceImpl{
		repo:   repo,
		views:  v,
		logger: logger,
	}
}

func (s *DeckServiceImpl) CreateDeck(ctx context.Context, ownerID, name string, inkColors []string) (*models.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("deck name is required")
	}
	inks, err := NormalizeInks(inkColors)
	if err != nil {
		return nil, err
	}

	d := models.Deck{OwnerID: ownerID, Name: name, InkColors: inks}
	id, err := s.repo.CreateDeck(ctx, d)
	if err != nil {
		return nil, storageErr("create deck", err)
	}

	created, err := s.repo.GetDeck(ctx, ownerID, id)
	if err != nil {
		return nil, storageErr("load deck", err)
	}
	s.logger.Info("deck %s created for %s", id, ownerID)
	return &created, nil
}

// DeleteDeck leaves the deck's events in place; they stay listed under the
// deck name they were created with.
func (s *DeckServiceImpl) DeleteDeck(ctx context.Context, ownerID, deckID string) error {
	if err := s.repo.DeleteDeck(ctx, ownerID, deckID); err != nil {
		return storageErr("delete deck", err)
	}
	s.logger.Info("deck %s deleted for %s", deckID, ownerID)
	return nil
}

func (s *DeckServiceImpl) ListDecks(ctx context.Context, ownerID string) ([]DeckView, error) {
	return s.views.deckList(ctx, ownerID)
}

func (s *DeckServiceImpl) GetDeckStats(ctx context.Context, ownerID, deckID string) (*DeckView, error) {
	d, err := s.repo.GetDeck(ctx, ownerID, deckID)
	if err != nil {
		return nil, storageErr("get deck", err)
	}
	dv, err := s.views.deckView(ctx, d)
	if err != nil {
		return nil, err
	}
	return &dv, nil
}
