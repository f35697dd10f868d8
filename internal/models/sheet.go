package models

import "time"

// OwnerSheet records where an owner's stats are published. SheetTitle is
// empty when the owner has a spreadsheet of their own, and names the owner's
// tab inside a shared spreadsheet otherwise.
type OwnerSheet struct {
	OwnerID       string    `json:"-"`
	SpreadsheetID string    `json:"spreadsheet_id"`
	SheetTitle    string    `json:"sheet_title"`
	SheetID       int64     `json:"sheet_id"`
	CreatedAt     time.Time `json:"created_at"`
}
