package application

import (
	"context"

	"lorcana/internal/models"
	"lorcana/internal/repository"
	"lorcana/internal/stats"
	"lorcana/pkg/sheets"
)

type AIProvider interface {
	ParseRoundScreenshot(ctx context.Context, data []byte) (*models.RoundImport, error)
}

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type DeckService interface {
	CreateDeck(ctx context.Context, ownerID, name string, inkColors []string) (*models.Deck, error)
	DeleteDeck(ctx context.Context, ownerID, deckID string) error
	ListDecks(ctx context.Context, ownerID string) ([]DeckView, error)
	GetDeckStats(ctx context.Context, ownerID, deckID string) (*DeckView, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, ownerID string, in EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, ownerID, eventID string) error
	ListEvents(ctx context.Context, ownerID string, filter EventListFilter) ([]EventSummary, error)
	GetEventDetail(ctx context.Context, ownerID, eventID string) (*EventDetail, error)
	RepairCounters(ctx context.Context, ownerID, eventID string) (models.Counters, error)
}

type RoundService interface {
	AddRound(ctx context.Context, ownerID, eventID string, games []models.GameResult, opponentInks []string) (*models.Round, error)
	GetRound(ctx context.Context, ownerID, eventID, roundID string) (*models.Round, error)
	EditRound(ctx context.Context, ownerID string, previous models.Round, games []models.GameResult, opponentInks []string) (*models.Round, error)
	DeleteRound(ctx context.Context, ownerID, eventID, roundID string) error
	ImportRoundFromScreenshot(ctx context.Context, ownerID, eventID string, data []byte) (*models.Round, error)
}

type ReportService interface {
	GetExcelReport(ctx context.Context, ownerID string) ([]byte, error)
	SyncToGoogleSheet(ctx context.Context, ownerID string) (string, error)
}

type Service struct {
	DeckService   DeckService
	EventService  EventService
	RoundService  RoundService
	ReportService ReportService
}

type Options struct {
	Rules         stats.Rules
	SpreadsheetID string
	OwnerEmail    string
}

func NewService(repos *repository.Repository, ai AIProvider, sheetsClient sheets.Client, opts Options, logger Logger) *Service {
	v := newViews(repos.Deck, repos.Event, repos.Round, opts.Rules, logger)

	var sheetsSvc *SheetsServiceImpl
	if sheetsClient != nil {
		sheetsSvc = NewSheetsServiceImpl(sheetsClient, repos.Sheet, opts.SpreadsheetID, opts.OwnerEmail)
	}

	return &Service{
		DeckService:   NewDeckServiceImpl(repos.Deck, v, logger),
		EventService:  NewEventServiceImpl(repos.Event, repos.Deck, v, logger),
		RoundService:  NewRoundServiceImpl(repos.Round, repos.Event, ai, opts.Rules, logger),
		ReportService: NewReportServiceImpl(v, sheetsSvc, logger),
	}
}
