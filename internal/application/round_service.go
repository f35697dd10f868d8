package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"lorcana/internal/models"
	"lorcana/internal/repository"
	"lorcana/internal/stats"
)

type RoundServiceImpl struct {
	repo   repository.Round
	events repository.Event
	ai     AIProvider
	rules  stats.Rules
	logger Logger
}

func NewRoundServiceImpl(repo repository.Round, events repository.Event, ai AIProvider, rules stats.Rules, logger Logger) *RoundServiceImpl {
	return &RoundServiceImpl{
		repo:   repo,
		events: events,
		ai:     ai,
		rules:  rules,
		logger: logger,
	}
}

// validate checks a submitted round against its event and returns the
// normalized opponent inks.
func (s *RoundServiceImpl) validate(ctx context.Context, ownerID, eventID string, games []models.GameResult, opponentInks []string) ([]string, error) {
	if len(games) == 0 {
		return nil, ErrEmptyRoundSubmission
	}
	if _, err := stats.DeriveOutcome(games); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	e, err := s.events.FetchEventMeta(ctx, ownerID, eventID)
	if err != nil {
		return nil, storageErr("fetch event", err)
	}
	if e.Type == models.EventTypeTournament && len(games) > maxTournamentGames {
		return nil, invalidf("tournament rounds have at most %d games, got %d", maxTournamentGames, len(games))
	}

	return NormalizeInks(opponentInks)
}

func (s *RoundServiceImpl) AddRound(ctx context.Context, ownerID, eventID string, games []models.GameResult, opponentInks []string) (*models.Round, error) {
	inks, err := s.validate(ctx, ownerID, eventID, games, opponentInks)
	if err != nil {
		return nil, err
	}

	delta, err := s.rules.AddDelta(games)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	rd := models.Round{
		EventID:           eventID,
		OwnerID:           ownerID,
		Games:             games,
		OpponentInkColors: inks,
	}
	id, err := s.repo.CreateRound(ctx, rd, delta)
	if err != nil {
		return nil, storageErr("create round", err)
	}

	s.logger.Debug("round %s added to event %s with delta %+v", id, eventID, delta)
	return s.GetRound(ctx, ownerID, eventID, id)
}

// GetRound loads a round as it is stored. Callers editing a round keep the
// returned value and pass it back to EditRound as the previous state.
func (s *RoundServiceImpl) GetRound(ctx context.Context, ownerID, eventID, roundID string) (*models.Round, error) {
	rd, err := s.repo.GetRound(ctx, ownerID, eventID, roundID)
	if err != nil {
		return nil, storageErr("get round", err)
	}
	return &rd, nil
}

// EditRound replaces the games of previous. The counter delta is taken
// between previous.Games and games, without re-reading the stored round.
func (s *RoundServiceImpl) EditRound(ctx context.Context, ownerID string, previous models.Round, games []models.GameResult, opponentInks []string) (*models.Round, error) {
	inks, err := s.validate(ctx, ownerID, previous.EventID, games, opponentInks)
	if err != nil {
		return nil, err
	}

	delta, err := s.rules.EditDelta(previous.Games, games)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	rd := models.Round{
		ID:                previous.ID,
		EventID:           previous.EventID,
		OwnerID:           ownerID,
		Games:             games,
		OpponentInkColors: inks,
	}
	if err := s.repo.ReplaceRound(ctx, rd, delta); err != nil {
		return nil, storageErr("replace round", err)
	}

	s.logger.Debug("round %s edited with delta %+v", previous.ID, delta)
	return s.GetRound(ctx, ownerID, previous.EventID, previous.ID)
}

func (s *RoundServiceImpl) DeleteRound(ctx context.Context, ownerID, eventID, roundID string) error {
	rd, err := s.repo.GetRound(ctx, ownerID, eventID, roundID)
	if err != nil {
		return storageErr("get round", err)
	}

	delta, err := s.rules.RemoveDelta(rd.Games)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRound(ctx, ownerID, eventID, roundID, delta); err != nil {
		return storageErr("delete round", err)
	}

	s.logger.Debug("round %s deleted with delta %+v", roundID, delta)
	return nil
}

func (s *RoundServiceImpl) ImportRoundFromScreenshot(ctx context.Context, ownerID, eventID string, data []byte) (*models.Round, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("screenshot import: %w", ErrNotConfigured)
	}

	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, invalidf("screenshot is not a PNG or JPEG image: %v", err)
	} else if format != "png" && format != "jpeg" {
		return nil, invalidf("screenshot must be PNG or JPEG, got %s", format)
	}

	imported, err := s.ai.ParseRoundScreenshot(ctx, data)
	if errors.Is(err, stats.ErrInvalidResult) {
		return nil, fmt.Errorf("%w: screenshot: %w", ErrInvalidInput, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot: %w", err)
	}

	s.logger.Info("screenshot for event %s parsed into %d games", eventID, len(imported.Games))
	return s.AddRound(ctx, ownerID, eventID, imported.Games, imported.OpponentInkColors)
}
