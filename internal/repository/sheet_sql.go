package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lorcana/internal/models"

	"github.com/Masterminds/squirrel"
)

type ownerSheetRow struct {
	OwnerID       string `db:"owner_id"`
	SpreadsheetID string `db:"spreadsheet_id"`
	SheetTitle    string `db:"sheet_title"`
	SheetID       int64  `db:"sheet_id"`
	CreatedAt     int64  `db:"created_at"`
}

var ownerSheetColumns = []string{"owner_id", "spreadsheet_id", "sheet_title", "sheet_id", "created_at"}

type SheetSQL struct {
	store
}

func NewSheetSQL(s store) *SheetSQL {
	return &SheetSQL{store: s}
}

func (r *SheetSQL) GetOwnerSheet(ctx context.Context, ownerID string) (models.OwnerSheet, error) {
	var row ownerSheetRow
	err := r.getRow(ctx, r.db, &row, r.sb.Select(ownerSheetColumns...).
		From("owner_sheets").
		Where(squirrel.Eq{"owner_id": ownerID}))
	if errors.Is(err, sql.ErrNoRows) {
		return models.OwnerSheet{}, fmt.Errorf("sheet of %s: %w", ownerID, ErrNotFound)
	}
	if err != nil {
		return models.OwnerSheet{}, fmt.Errorf("failed to get owner sheet: %w", err)
	}

	return models.OwnerSheet{
		OwnerID:       row.OwnerID,
		SpreadsheetID: row.SpreadsheetID,
		SheetTitle:    row.SheetTitle,
		SheetID:       row.SheetID,
		CreatedAt:     fromMillis(row.CreatedAt),
	}, nil
}

// SaveOwnerSheet inserts or replaces the owner's publishing target.
func (r *SheetSQL) SaveOwnerSheet(ctx context.Context, sheet models.OwnerSheet) error {
	_, err := r.exec(ctx, r.db, r.sb.Insert("owner_sheets").
		Columns(ownerSheetColumns...).
		Values(sheet.OwnerID, sheet.SpreadsheetID, sheet.SheetTitle, sheet.SheetID, nowMillis()).
		Suffix("ON CONFLICT (owner_id) DO UPDATE SET " +
			"spreadsheet_id = excluded.spreadsheet_id, " +
			"sheet_title = excluded.sheet_title, " +
			"sheet_id = excluded.sheet_id, " +
			"created_at = excluded.created_at"))
	if err != nil {
		return fmt.Errorf("failed to save owner sheet: %w", err)
	}
	return nil
}
