package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lorcana/internal/application"
	"lorcana/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxImageBytes = 10 * 1024 * 1024

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	owner := ownerID(msg)
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(chatID, helpText)

	case "decks":
		b.handleDecks(ctx, chatID, owner)
	case "deck":
		b.handleDeck(ctx, chatID, owner, args)
	case "deck_add":
		parts := splitArgs(args, 2)
		deck, err := b.services.DeckService.CreateDeck(ctx, owner, parts[0], application.ParseInks(parts[1]))
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf("Deck %s created.\nID: %s", deck.Name, deck.ID))
	case "deck_delete":
		if err := b.services.DeckService.DeleteDeck(ctx, owner, args); err != nil {
			b.sendError(chatID, err)
			return
		}
		b.sendMessage(chatID, "Deck deleted. Its events are kept.")

	case "events":
		b.handleEvents(ctx, chatID, owner, args)
	case "event":
		b.handleEvent(ctx, chatID, owner, args)
	case "event_add":
		parts := splitArgs(args, 5)
		e, err := b.services.EventService.CreateEvent(ctx, owner, application.EventInput{
			Type:      models.EventType(parts[0]),
			Name:      parts[1],
			DeckID:    parts[2],
			Format:    parts[3],
			StartDate: parts[4],
		})
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf("Event %s created.\nID: %s", e.Name, e.ID))
	case "event_delete":
		if err := b.services.EventService.DeleteEvent(ctx, owner, args); err != nil {
			b.sendError(chatID, err)
			return
		}
		b.sendMessage(chatID, "Event and its rounds deleted.")

	case "round":
		b.handleRoundAdd(ctx, chatID, owner, args)
	case "round_edit":
		b.handleRoundEdit(ctx, chatID, owner, args)
	case "round_delete":
		ids := strings.Fields(args)
		if len(ids) != 2 {
			b.sendMessage(chatID, "Use: /round_delete [event id] [round id]")
			return
		}
		if err := b.services.RoundService.DeleteRound(ctx, owner, ids[0], ids[1]); err != nil {
			b.sendError(chatID, err)
			return
		}
		b.sendMessage(chatID, "Round deleted.")
	case "repair":
		delta, err := b.services.EventService.RepairCounters(ctx, owner, args)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		if delta.IsZero() {
			b.sendMessage(chatID, "Stored record already matches the rounds.")
			return
		}
		b.sendMessage(chatID, fmt.Sprintf("Stored record corrected by %+d/%+d/%+d.", delta.Wins, delta.Losses, delta.Draws))

	case "export":
		data, err := b.services.ReportService.GetExcelReport(ctx, owner)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		fileBytes := tgbotapi.FileBytes{Name: "lorcana-stats.xlsx", Bytes: data}
		if _, err := b.bot.Send(tgbotapi.NewDocument(chatID, fileBytes)); err != nil {
			b.logger.Error("failed to send report: %v", err)
		}
	case "sync":
		url, err := b.services.ReportService.SyncToGoogleSheet(ctx, owner)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		b.sendMessage(chatID, "Spreadsheet updated!\n"+url)

	default:
		b.sendMessage(chatID, "Unknown command.\n\n"+helpText)
	}
}

func (b *Bot) handleDecks(ctx context.Context, chatID int64, owner string) {
	decks, err := b.services.DeckService.ListDecks(ctx, owner)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	if len(decks) == 0 {
		b.sendMessage(chatID, "No decks yet. Create one with /deck_add.")
		return
	}

	var sb strings.Builder
	for _, dv := range decks {
		sb.WriteString(fmt.Sprintf("%s [%s]\n%s\nID: %s\n\n",
			dv.Deck.Name, strings.Join(dv.Deck.InkColors, "/"), formatStats(dv.Stats), dv.Deck.ID))
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) handleDeck(ctx context.Context, chatID int64, owner, deckID string) {
	dv, err := b.services.DeckService.GetDeckStats(ctx, owner, deckID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("%s (%d events)\n%s", dv.Deck.Name, dv.Events, formatStatsDetail(dv.Stats)))
}

func (b *Bot) handleEvents(ctx context.Context, chatID int64, owner, deckID string) {
	events, err := b.services.EventService.ListEvents(ctx, owner, application.EventListFilter{DeckID: deckID})
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	if len(events) == 0 {
		b.sendMessage(chatID, "No events found.")
		return
	}

	var sb strings.Builder
	for _, sum := range events {
		drift := ""
		if sum.Drift != nil {
			drift = " (stored record out of sync, /repair)"
		}
		sb.WriteString(fmt.Sprintf("%s [%s] %s%s\n%s\nID: %s\n\n",
			sum.Event.Name, sum.Event.Type, sum.Event.DeckName, drift, formatStats(sum.Stats), sum.Event.ID))
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) handleEvent(ctx context.Context, chatID int64, owner, eventID string) {
	detail, err := b.services.EventService.GetEventDetail(ctx, owner, eventID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s [%s]\n%s\n\n", detail.Event.Name, detail.Event.Type, formatStatsDetail(detail.Stats)))
	for idx, rv := range detail.Rounds {
		sb.WriteString(fmt.Sprintf("%d. %s %s vs %s\n   %s\n",
			idx+1, strings.ToUpper(string(rv.Tally.Outcome)), application.FormatGames(rv.Games),
			strings.Join(rv.OpponentInkColors, "/"), rv.ID))
	}
	if detail.Drift != nil {
		sb.WriteString(fmt.Sprintf("\nStored record %s differs from rounds %s. Use /repair %s",
			application.FormatRecord(detail.Drift.Stored), application.FormatRecord(detail.Drift.Computed), detail.Event.ID))
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) handleRoundAdd(ctx context.Context, chatID int64, owner, args string) {
	ids, notation, inks, err := parseRoundArgs(args, 1)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	games, err := application.ParseGames(notation)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	rd, err := b.services.RoundService.AddRound(ctx, owner, ids[0], games, inks)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Round recorded: %s\nID: %s", application.FormatGames(rd.Games), rd.ID))
}

func (b *Bot) handleRoundEdit(ctx context.Context, chatID int64, owner, args string) {
	ids, notation, inks, err := parseRoundArgs(args, 2)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	games, err := application.ParseGames(notation)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	previous, err := b.services.RoundService.GetRound(ctx, owner, ids[0], ids[1])
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	rd, err := b.services.RoundService.EditRound(ctx, owner, *previous, games, inks)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Round updated: %s -> %s", application.FormatGames(previous.Games), application.FormatGames(rd.Games)))
}

// handlePhoto imports a round from a screenshot whose caption is the event id.
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	eventID := strings.TrimSpace(msg.Caption)
	if eventID == "" {
		b.sendMessage(chatID, "Add the event ID as the photo caption.")
		return
	}

	photoID := msg.Photo[len(msg.Photo)-1].FileID
	url, err := b.bot.GetFileDirectURL(photoID)
	if err != nil {
		b.logger.Error("failed to resolve telegram file: %v", err)
		b.sendMessage(chatID, "Could not download the image.")
		return
	}

	data, err := download(ctx, url)
	if err != nil {
		b.logger.Error("failed to download telegram file: %v", err)
		b.sendMessage(chatID, "Could not download the image.")
		return
	}

	rd, err := b.services.RoundService.ImportRoundFromScreenshot(ctx, ownerID(msg), eventID, data)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Round recorded: %s\nID: %s", application.FormatGames(rd.Games), rd.ID))
}

func formatStats(st models.Stats) string {
	return fmt.Sprintf("%s | Match WR %s | Game WR %s",
		application.FormatRecord(st.MatchCounters()),
		application.FormatRate(st.MatchWinRate),
		application.FormatRate(st.GameWinRate))
}

func formatStatsDetail(st models.Stats) string {
	return fmt.Sprintf("%s\nOn the play: %s (%d/%d)\nOn the draw: %s (%d/%d)",
		formatStats(st),
		application.FormatRate(st.OnPlayGameWinRate), st.GamesWonOnPlay, st.GamesOnPlay,
		application.FormatRate(st.OnDrawGameWinRate), st.GamesWonOnDraw, st.GamesOnDraw)
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}
