package stats

import (
	"errors"
	"fmt"

	"lorcana/internal/models"
)

var ErrInvalidResult = errors.New("invalid game result")

// Tally is the per-round breakdown produced by DeriveOutcome.
type Tally struct {
	Outcome models.Outcome `json:"outcome"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`

	OnPlayWins   int `json:"on_play_wins"`
	OnPlayLosses int `json:"on_play_losses"`
	OnPlayDraws  int `json:"on_play_draws"`

	OnDrawWins   int `json:"on_draw_wins"`
	OnDrawLosses int `json:"on_draw_losses"`
	OnDrawDraws  int `json:"on_draw_draws"`
}

func (t Tally) Games() int {
	return t.Wins + t.Losses + t.Draws
}

// Empty reports a round with no recorded games. Its outcome is draw but it
// carries no data.
func (t Tally) Empty() bool {
	return t.Games() == 0
}

// DeriveOutcome tallies the games of a round and classifies it by majority.
// Drawn games never count toward either side of the comparison.
func DeriveOutcome(games []models.GameResult) (Tally, error) {
	var t Tally
	for i, g := range games {
		switch g.Result {
		case models.ResultWin:
			t.Wins++
			if g.OnThePlay {
				t.OnPlayWins++
			} else {
				t.OnDrawWins++
			}
		case models.ResultLoss:
			t.Losses++
			if g.OnThePlay {
				t.OnPlayLosses++
			} else {
				t.OnDrawLosses++
			}
		case models.ResultDraw:
			t.Draws++
			if g.OnThePlay {
				t.OnPlayDraws++
			} else {
				t.OnDrawDraws++
			}
		default:
			return Tally{}, fmt.Errorf("game %d: %w: %q", i+1, ErrInvalidResult, g.Result)
		}
	}

	switch {
	case t.Wins > t.Losses:
		t.Outcome = models.OutcomeWin
	case t.Losses > t.Wins:
		t.Outcome = models.OutcomeLoss
	default:
		t.Outcome = models.OutcomeDraw
	}
	return t, nil
}
