package application

import (
	"errors"
	"fmt"

	"lorcana/internal/models"
	"lorcana/internal/repository"
)

var (
	ErrEmptyRoundSubmission = errors.New("round must contain at least one game")
	ErrPersistence          = errors.New("storage operation failed")
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrConsistencyDrift     = errors.New("stored counters differ from recorded rounds")
	ErrNotConfigured        = errors.New("integration is not configured")
)

// DriftError reports stored event counters that no longer match the
// counters recomputed from the event's rounds. It is advisory only.
type DriftError struct {
	EventID  string          `json:"event_id"`
	Stored   models.Counters `json:"stored"`
	Computed models.Counters `json:"computed"`
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("event %s: stored %d-%d-%d, computed %d-%d-%d",
		e.EventID,
		e.Stored.Wins, e.Stored.Losses, e.Stored.Draws,
		e.Computed.Wins, e.Computed.Losses, e.Computed.Draws)
}

func (e *DriftError) Unwrap() error {
	return ErrConsistencyDrift
}

// Delta is the correction that brings the stored counters back in line.
func (e *DriftError) Delta() models.Counters {
	return e.Computed.Sub(e.Stored)
}

func storageErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

func invalidf(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, v...))
}
