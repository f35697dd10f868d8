package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"lorcana/internal/models"
	"lorcana/internal/repository"
	"lorcana/pkg/sheets"
)

// SheetsServiceImpl publishes each owner's stats either to a spreadsheet of
// their own or, when a shared spreadsheet id is configured, to the owner's
// tab inside it. The target is stored so restarts keep the same URL.
type SheetsServiceImpl struct {
	client     sheets.Client
	repo       repository.Sheet
	ownerEmail string
	sharedID   string
	mu         sync.Mutex
}

func NewSheetsServiceImpl(client sheets.Client, repo repository.Sheet, spreadsheetID, ownerEmail string) *SheetsServiceImpl {
	return &SheetsServiceImpl{
		client:     client,
		repo:       repo,
		ownerEmail: ownerEmail,
		sharedID:   spreadsheetID,
	}
}

func (s *SheetsServiceImpl) EnsureSheetExists(ctx context.Context, ownerID string) (models.OwnerSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.GetOwnerSheet(ctx, ownerID)
	switch {
	case err == nil:
		if s.sharedID == "" && stored.SheetTitle == "" {
			return stored, nil
		}
		if s.sharedID != "" && stored.SpreadsheetID == s.sharedID {
			return stored, nil
		}
	case !errors.Is(err, repository.ErrNotFound):
		return models.OwnerSheet{}, storageErr("get owner sheet", err)
	}

	var sheet models.OwnerSheet
	if s.sharedID != "" {
		sheet, err = s.addOwnerTab(ownerID)
	} else {
		sheet, err = s.createSpreadsheet(ownerID)
	}
	if err != nil {
		return models.OwnerSheet{}, err
	}

	if err := s.repo.SaveOwnerSheet(ctx, sheet); err != nil {
		return models.OwnerSheet{}, storageErr("save owner sheet", err)
	}
	return sheet, nil
}

func (s *SheetsServiceImpl) createSpreadsheet(ownerID string) (models.OwnerSheet, error) {
	id, _, err := s.client.CreateSpreadsheet(fmt.Sprintf("%s (%s)", defaultSheetTitle, ownerID))
	if err != nil {
		return models.OwnerSheet{}, fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	if s.ownerEmail != "" {
		if err := s.client.AddPermission(id, s.ownerEmail, sheetsPermissionOwner); err != nil {
			return models.OwnerSheet{}, fmt.Errorf("failed to add owner permission: %w", err)
		}
	}

	if err := s.client.MakePublic(id); err != nil {
		return models.OwnerSheet{}, fmt.Errorf("failed to make spreadsheet public: %w", err)
	}

	return models.OwnerSheet{OwnerID: ownerID, SpreadsheetID: id}, nil
}

func (s *SheetsServiceImpl) addOwnerTab(ownerID string) (models.OwnerSheet, error) {
	title := ownerTabTitle(ownerID)
	sheetID, err := s.client.AddSheet(s.sharedID, title)
	if err != nil {
		return models.OwnerSheet{}, fmt.Errorf("failed to add owner tab: %w", err)
	}
	return models.OwnerSheet{
		OwnerID:       ownerID,
		SpreadsheetID: s.sharedID,
		SheetTitle:    title,
		SheetID:       sheetID,
	}, nil
}

func (s *SheetsServiceImpl) UpdateStats(sheet models.OwnerSheet, data [][]interface{}) error {
	if err := s.client.ClearRange(sheet.SpreadsheetID, sheetRange(sheet, defaultClearRange)); err != nil {
		return fmt.Errorf("failed to clear spreadsheet: %w", err)
	}

	if err := s.client.UpdateValues(sheet.SpreadsheetID, sheetRange(sheet, defaultStartCell), data); err != nil {
		return fmt.Errorf("failed to update spreadsheet: %w", err)
	}

	return nil
}

func (s *SheetsServiceImpl) GetSpreadsheetURL(sheet models.OwnerSheet) string {
	url := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", sheet.SpreadsheetID)
	if sheet.SheetTitle != "" {
		url += fmt.Sprintf("/edit#gid=%d", sheet.SheetID)
	}
	return url
}

var tabTitleReplacer = strings.NewReplacer("[", "-", "]", "-", "*", "-", "?", "-", "/", "-", "\\", "-", ":", "-", "'", "-")

// ownerTabTitle turns an owner id into a tab title Sheets accepts.
func ownerTabTitle(ownerID string) string {
	title := tabTitleReplacer.Replace(ownerID)
	if r := []rune(title); len(r) > maxTabTitleLength {
		title = string(r[:maxTabTitleLength])
	}
	return title
}

func sheetRange(sheet models.OwnerSheet, cells string) string {
	if sheet.SheetTitle == "" {
		return cells
	}
	return fmt.Sprintf("'%s'!%s", sheet.SheetTitle, cells)
}
