package models

import "time"

type EventType string

const (
	EventTypeTournament EventType = "Tournament"
	EventTypePlaytest   EventType = "Playtest"
)

func (t EventType) Valid() bool {
	return t == EventTypeTournament || t == EventTypePlaytest
}

// Event is a tracked session played with one deck. Wins, Losses and Draws
// count rounds, not games, and are maintained incrementally.
type Event struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"-"`
	Name       string    `json:"name"`
	Type       EventType `json:"type"`
	UserDeckID string    `json:"user_deck_id"`
	DeckName   string    `json:"deck_name"`
	Format     string    `json:"format"`
	StartDate  time.Time `json:"start_date"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	Draws      int       `json:"draws"`
	CreatedAt  time.Time `json:"created_at"`
}

func (e Event) Counters() Counters {
	return Counters{Wins: e.Wins, Losses: e.Losses, Draws: e.Draws}
}

// Counters holds the running round totals of an event, or a signed change
// to them.
type Counters struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

func (c Counters) Add(o Counters) Counters {
	return Counters{Wins: c.Wins + o.Wins, Losses: c.Losses + o.Losses, Draws: c.Draws + o.Draws}
}

func (c Counters) Sub(o Counters) Counters {
	return Counters{Wins: c.Wins - o.Wins, Losses: c.Losses - o.Losses, Draws: c.Draws - o.Draws}
}

func (c Counters) Negate() Counters {
	return Counters{Wins: -c.Wins, Losses: -c.Losses, Draws: -c.Draws}
}

func (c Counters) IsZero() bool {
	return c == Counters{}
}
