package stats

import "lorcana/internal/models"

// Contribution is the amount a round with the given games adds to its
// event's stored counters: one in exactly one bucket, or nothing.
func (r Rules) Contribution(games []models.GameResult) (models.Counters, error) {
	t, err := DeriveOutcome(games)
	if err != nil {
		return models.Counters{}, err
	}
	return r.contribution(t), nil
}

func (r Rules) AddDelta(games []models.GameResult) (models.Counters, error) {
	return r.Contribution(games)
}

func (r Rules) RemoveDelta(games []models.GameResult) (models.Counters, error) {
	c, err := r.Contribution(games)
	if err != nil {
		return models.Counters{}, err
	}
	return c.Negate(), nil
}

// EditDelta is new minus old per bucket. oldGames must be the state captured
// when the edit was opened.
func (r Rules) EditDelta(oldGames, newGames []models.GameResult) (models.Counters, error) {
	before, err := r.Contribution(oldGames)
	if err != nil {
		return models.Counters{}, err
	}
	after, err := r.Contribution(newGames)
	if err != nil {
		return models.Counters{}, err
	}
	return after.Sub(before), nil
}

// Drift returns computed minus stored. A zero value means the stored
// counters agree with the rounds.
func Drift(stored models.Counters, computed models.Stats) models.Counters {
	return computed.MatchCounters().Sub(stored)
}
