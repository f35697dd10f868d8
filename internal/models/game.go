package models

type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

func (r Result) Valid() bool {
	switch r {
	case ResultWin, ResultLoss, ResultDraw:
		return true
	}
	return false
}

// GameResult is a single game inside a round.
type GameResult struct {
	Result    Result `json:"result"`
	OnThePlay bool   `json:"on_the_play"`
}

// Outcome is the win/loss/draw classification of a whole round.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)
