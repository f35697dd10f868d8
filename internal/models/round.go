package models

import "time"

type Round struct {
	ID                string       `json:"id"`
	EventID           string       `json:"event_id"`
	OwnerID           string       `json:"-"`
	Games             []GameResult `json:"games"`
	OpponentInkColors []string     `json:"opponent_ink_colors"`
	CreatedAt         time.Time    `json:"created_at"`
}

// RoundImport is a round read from an external source, such as a result
// screenshot, before it is attached to an event.
type RoundImport struct {
	Games             []GameResult `json:"games"`
	OpponentInkColors []string     `json:"opponent_ink_colors"`
}
