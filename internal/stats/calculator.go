package stats

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"lorcana/internal/models"
)

const defaultChunkSize = 256

// ComputeStats folds rounds into an aggregate. Only integer sums are
// accumulated, so the result does not depend on round order.
func (r Rules) ComputeStats(rounds []models.Round) (models.Stats, error) {
	var s models.Stats
	if err := r.fold(&s, rounds); err != nil {
		return models.Stats{}, err
	}
	finalize(&s)
	return s, nil
}

// ComputeStatsConcurrent folds chunks of rounds in parallel and merges the
// partial sums. The result equals ComputeStats over the same rounds.
func (r Rules) ComputeStatsConcurrent(ctx context.Context, rounds []models.Round, chunkSize int) (models.Stats, error) {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	chunks := (len(rounds) + chunkSize - 1) / chunkSize
	partials := make([]models.Stats, chunks)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < chunks; i++ {
		lo := i * chunkSize
		hi := min(lo+chunkSize, len(rounds))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.fold(&partials[i], rounds[lo:hi])
		})
	}
	if err := g.Wait(); err != nil {
		return models.Stats{}, err
	}

	var s models.Stats
	for _, p := range partials {
		merge(&s, p)
	}
	finalize(&s)
	return s, nil
}

// Tallies derives the outcome of every round, in input order.
func Tallies(rounds []models.Round) ([]Tally, error) {
	out := make([]Tally, 0, len(rounds))
	for _, rd := range rounds {
		t, err := DeriveOutcome(rd.Games)
		if err != nil {
			return nil, fmt.Errorf("round %s: %w", rd.ID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (r Rules) fold(s *models.Stats, rounds []models.Round) error {
	for _, rd := range rounds {
		t, err := DeriveOutcome(rd.Games)
		if err != nil {
			return fmt.Errorf("round %s: %w", rd.ID, err)
		}
		r.add(s, t)
	}
	return nil
}

func (r Rules) add(s *models.Stats, t Tally) {
	c := r.contribution(t)
	s.MatchesWon += c.Wins
	s.MatchesLost += c.Losses
	s.MatchesDrawn += c.Draws

	s.GamesWon += t.Wins
	s.GamesLost += t.Losses
	s.GamesDrawn += t.Draws

	s.GamesOnPlay += t.OnPlayWins + t.OnPlayLosses + t.OnPlayDraws
	s.GamesWonOnPlay += t.OnPlayWins
	s.GamesOnDraw += t.OnDrawWins + t.OnDrawLosses + t.OnDrawDraws
	s.GamesWonOnDraw += t.OnDrawWins
}

func merge(dst *models.Stats, src models.Stats) {
	dst.MatchesWon += src.MatchesWon
	dst.MatchesLost += src.MatchesLost
	dst.MatchesDrawn += src.MatchesDrawn
	dst.GamesWon += src.GamesWon
	dst.GamesLost += src.GamesLost
	dst.GamesDrawn += src.GamesDrawn
	dst.GamesOnPlay += src.GamesOnPlay
	dst.GamesWonOnPlay += src.GamesWonOnPlay
	dst.GamesOnDraw += src.GamesOnDraw
	dst.GamesWonOnDraw += src.GamesWonOnDraw
}

func finalize(s *models.Stats) {
	s.MatchWinRate = Percentage(s.MatchesWon, s.Matches())
	s.GameWinRate = Percentage(s.GamesWon, s.Games())
	s.OnPlayGameWinRate = Percentage(s.GamesWonOnPlay, s.GamesOnPlay)
	s.OnDrawGameWinRate = Percentage(s.GamesWonOnDraw, s.GamesOnDraw)
}
