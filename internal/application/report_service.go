package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"lorcana/internal/repository"
)

var (
	deckHeaders = []interface{}{
		"Deck", "Inks", "Events", "Matches", "Record", "Match Win %",
		"Games", "Game Win %", "On Play Win %", "On Draw Win %",
	}
	eventHeaders = []interface{}{
		"Event", "Type", "Deck", "Format", "Date", "Record",
		"Match Win %", "Game Win %", "On Play Win %", "On Draw Win %",
	}
)

type ReportServiceImpl struct {
	views  *views
	sheets *SheetsServiceImpl
	logger Logger
}

func NewReportServiceImpl(v *views, sheetsSvc *SheetsServiceImpl, logger Logger) *ReportServiceImpl {
	return &ReportServiceImpl{
		views:  v,
		sheets: sheetsSvc,
		logger: logger,
	}
}

func deckRow(dv DeckView) []interface{} {
	st := dv.Stats
	return []interface{}{
		dv.Deck.Name,
		strings.Join(dv.Deck.InkColors, "/"),
		dv.Events,
		st.Matches(),
		FormatRecord(st.MatchCounters()),
		st.MatchWinRate,
		st.Games(),
		st.GameWinRate,
		st.OnPlayGameWinRate,
		st.OnDrawGameWinRate,
	}
}

func eventRow(sum EventSummary) []interface{} {
	e := sum.Event
	var date string
	if !e.StartDate.IsZero() {
		date = e.StartDate.Format(dateLayout)
	}
	return []interface{}{
		e.Name,
		string(e.Type),
		e.DeckName,
		e.Format,
		date,
		FormatRecord(sum.Stats.MatchCounters()),
		sum.Stats.MatchWinRate,
		sum.Stats.GameWinRate,
		sum.Stats.OnPlayGameWinRate,
		sum.Stats.OnDrawGameWinRate,
	}
}

func writeSheet(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "J", 14)
}

func (s *ReportServiceImpl) GetExcelReport(ctx context.Context, ownerID string) ([]byte, error) {
	decks, err := s.views.deckList(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	events, err := s.views.eventList(ctx, repository.EventFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	deckRows := make([][]interface{}, 0, len(decks))
	for _, dv := range decks {
		deckRows = append(deckRows, deckRow(dv))
	}
	eventRows := make([][]interface{}, 0, len(events))
	for _, sum := range events {
		eventRows = append(eventRows, eventRow(sum))
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, excelDecksSheet, deckHeaders, deckRows); err != nil {
		return nil, fmt.Errorf("failed to write decks sheet: %w", err)
	}
	if err := writeSheet(f, excelEventsSheet, eventHeaders, eventRows); err != nil {
		return nil, fmt.Errorf("failed to write events sheet: %w", err)
	}
	if err := f.DeleteSheet(excelDefaultSheet); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportServiceImpl) SyncToGoogleSheet(ctx context.Context, ownerID string) (string, error) {
	if s.sheets == nil {
		return "", fmt.Errorf("google sheets: %w", ErrNotConfigured)
	}

	decks, err := s.views.deckList(ctx, ownerID)
	if err != nil {
		return "", err
	}

	rows := [][]interface{}{deckHeaders}
	for _, dv := range decks {
		rows = append(rows, deckRow(dv))
	}

	sheet, err := s.sheets.EnsureSheetExists(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if err := s.sheets.UpdateStats(sheet, rows); err != nil {
		return "", err
	}

	s.logger.Info("synced %d decks for %s to spreadsheet %s", len(decks), ownerID, sheet.SpreadsheetID)
	return s.sheets.GetSpreadsheetURL(sheet), nil
}
