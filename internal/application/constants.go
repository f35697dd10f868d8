package application

const (
	// Round limits
	maxTournamentGames = 3
	maxInkColors       = 2

	// Aggregation
	deckStatsConcurrency = 4
	foldChunkSize        = 256

	dateLayout = "2006-01-02"

	// Google Sheets configuration
	defaultSheetTitle     = "Lorcana Stats"
	defaultClearRange     = "A1:Z1000"
	defaultStartCell      = "A1"
	sheetsPermissionOwner = "writer"
	maxTabTitleLength     = 100

	// Excel report configuration
	excelDecksSheet   = "Decks"
	excelEventsSheet  = "Events"
	excelDefaultSheet = "Sheet1"
)
