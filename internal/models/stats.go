package models

// Stats is the aggregate of a set of rounds. The same shape serves a single
// event and the union of rounds behind a deck.
type Stats struct {
	MatchesWon   int `json:"matches_won"`
	MatchesLost  int `json:"matches_lost"`
	MatchesDrawn int `json:"matches_drawn"`

	GamesWon   int `json:"games_won"`
	GamesLost  int `json:"games_lost"`
	GamesDrawn int `json:"games_drawn"`

	GamesOnPlay    int `json:"games_on_play"`
	GamesWonOnPlay int `json:"games_won_on_play"`
	GamesOnDraw    int `json:"games_on_draw"`
	GamesWonOnDraw int `json:"games_won_on_draw"`

	MatchWinRate      float64 `json:"match_win_rate"`
	GameWinRate       float64 `json:"game_win_rate"`
	OnPlayGameWinRate float64 `json:"on_play_game_win_rate"`
	OnDrawGameWinRate float64 `json:"on_draw_game_win_rate"`
}

type (
	EventStats = Stats
	DeckStats  = Stats
)

func (s Stats) Matches() int {
	return s.MatchesWon + s.MatchesLost + s.MatchesDrawn
}

func (s Stats) Games() int {
	return s.GamesWon + s.GamesLost + s.GamesDrawn
}

// MatchCounters returns the round totals in the same shape as the stored
// event counters.
func (s Stats) MatchCounters() Counters {
	return Counters{Wins: s.MatchesWon, Losses: s.MatchesLost, Draws: s.MatchesDrawn}
}
