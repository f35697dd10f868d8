package stats

import "lorcana/internal/models"

// Rules holds the policy shared by the write path (counter deltas) and the
// read path (ComputeStats) so both classify rounds the same way.
type Rules struct {
	// EmptyRoundIsDraw counts a round with zero games as a drawn match.
	// When false such a round contributes to no counter and no match total.
	EmptyRoundIsDraw bool
}

func (r Rules) counts(t Tally) bool {
	return !t.Empty() || r.EmptyRoundIsDraw
}

func (r Rules) contribution(t Tally) models.Counters {
	if !r.counts(t) {
		return models.Counters{}
	}
	switch t.Outcome {
	case models.OutcomeWin:
		return models.Counters{Wins: 1}
	case models.OutcomeLoss:
		return models.Counters{Losses: 1}
	default:
		return models.Counters{Draws: 1}
	}
}
