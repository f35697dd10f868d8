package models

import "time"

type Deck struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	InkColors []string  `json:"ink_colors"`
	CreatedAt time.Time `json:"created_at"`
}

// InkColors lists the six Lorcana inks in canonical spelling.
var InkColors = []string{"Amber", "Amethyst", "Emerald", "Ruby", "Sapphire", "Steel"}
