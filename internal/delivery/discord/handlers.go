package discord

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lorcana/internal/application"
	"lorcana/internal/models"

	"github.com/bwmarrin/discordgo"
)

const commandTimeout = 30 * time.Second

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

func (b *Bot) handleDeckAdd(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	opts := options(i)
	deck, err := b.services.DeckService.CreateDeck(ctx, ownerID(i), opts["name"], application.ParseInks(opts["inks"]))
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("Deck **%s** created. ID: `%s`", deck.Name, deck.ID), true)
}

func (b *Bot) handleDeckDelete(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	deckID := options(i)["deck"]
	if err := b.services.DeckService.DeleteDeck(ctx, ownerID(i), deckID); err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("Deck `%s` deleted. Its events are kept.", deckID), true)
}

func (b *Bot) handleDecks(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	decks, err := b.services.DeckService.ListDecks(ctx, ownerID(i))
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	if len(decks) == 0 {
		b.respondMessage(s, i, "No decks yet. Create one with /deck_add.", true)
		return
	}

	lines := make([]string, 0, len(decks))
	for idx, dv := range decks {
		if idx == listLimit {
			lines = append(lines, fmt.Sprintf("...and %d more", len(decks)-listLimit))
			break
		}
		lines = append(lines, formatDeckLine(dv))
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Your decks",
		Description: truncate(strings.Join(lines, "\n\n")),
		Color:       colorGold,
	})
}

func (b *Bot) handleDeck(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	dv, err := b.services.DeckService.GetDeckStats(ctx, ownerID(i), options(i)["deck"])
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       dv.Deck.Name,
		Description: fmt.Sprintf("%s | %d events", valueOrDefault(strings.Join(dv.Deck.InkColors, "/"), "no inks"), dv.Events),
		Color:       getColorByWinRate(dv.Stats.MatchWinRate, dv.Stats.Matches()),
		Fields:      statsFields(dv.Stats),
	})
}

func (b *Bot) handleEventAdd(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	opts := options(i)
	e, err := b.services.EventService.CreateEvent(ctx, ownerID(i), application.EventInput{
		Name:      opts["name"],
		Type:      models.EventType(opts["type"]),
		DeckID:    opts["deck"],
		Format:    opts["format"],
		StartDate: opts["date"],
	})
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("Event **%s** created. ID: `%s`", e.Name, e.ID), true)
}

func (b *Bot) handleEventDelete(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	eventID := options(i)["event"]
	if err := b.services.EventService.DeleteEvent(ctx, ownerID(i), eventID); err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("Event `%s` and its rounds deleted.", eventID), true)
}

func (b *Bot) handleEvents(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	opts := options(i)
	events, err := b.services.EventService.ListEvents(ctx, ownerID(i), application.EventListFilter{
		DeckID: opts["deck"],
		Type:   models.EventType(opts["type"]),
		Format: opts["format"],
	})
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	if len(events) == 0 {
		b.respondMessage(s, i, "No events found.", true)
		return
	}

	lines := make([]string, 0, len(events))
	for idx, sum := range events {
		if idx == listLimit {
			lines = append(lines, fmt.Sprintf("...and %d more", len(events)-listLimit))
			break
		}
		lines = append(lines, formatEventLine(sum))
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Your events",
		Description: truncate(strings.Join(lines, "\n\n")),
		Color:       colorBlue,
	})
}

func (b *Bot) handleEvent(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	detail, err := b.services.EventService.GetEventDetail(ctx, ownerID(i), options(i)["event"])
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	lines := make([]string, 0, len(detail.Rounds))
	for idx, rv := range detail.Rounds {
		lines = append(lines, formatRoundLine(idx+1, rv))
	}

	e := detail.Event
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s (%s)", e.Name, e.Type),
		Description: truncate(valueOrDefault(strings.Join(lines, "\n"), "No rounds yet.")),
		Color:       getColorByWinRate(detail.Stats.MatchWinRate, detail.Stats.Matches()),
		Fields:      statsFields(detail.Stats),
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s | %s | %s", valueOrDefault(e.DeckName, "no deck"), valueOrDefault(e.Format, "any format"), e.ID)},
	}
	if detail.Drift != nil {
		embed.Color = colorOrange
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Stored record out of sync",
			Value: fmt.Sprintf("Stored `%s`, rounds say `%s`. Run /repair to fix.", application.FormatRecord(detail.Drift.Stored), application.FormatRecord(detail.Drift.Computed)),
		})
	}

	b.respondEmbed(s, i, embed)
}

func (b *Bot) handleRoundAdd(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	opts := options(i)
	games, err := application.ParseGames(opts["games"])
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	rd, err := b.services.RoundService.AddRound(ctx, ownerID(i), opts["event"], games, application.ParseInks(opts["opponent"]))
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("Round recorded: %s. ID: `%s`", application.FormatGames(rd.Games), rd.ID), true)
}

func (b *Bot) handleRoundEdit(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	opts := options(i)
	games, err := application.ParseGames(opts["games"])
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	previous, err := b.services.RoundService.GetRound(ctx, ownerID(i), opts["event"], opts["round"])
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	rd, err := b.services.RoundService.EditRound(ctx, ownerID(i), *previous, games, application.ParseInks(opts["opponent"]))
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("Round updated: %s -> %s", application.FormatGames(previous.Games), application.FormatGames(rd.Games)), true)
}

func (b *Bot) handleRoundDelete(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	opts := options(i)
	if err := b.services.RoundService.DeleteRound(ctx, ownerID(i), opts["event"], opts["round"]); err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("Round `%s` deleted.", opts["round"]), true)
}

func (b *Bot) handleRepair(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := commandContext()
	defer cancel()

	delta, err := b.services.EventService.RepairCounters(ctx, ownerID(i), options(i)["event"])
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	if delta.IsZero() {
		b.respondMessage(s, i, "Stored record already matches the rounds.", true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("Stored record corrected by %+d/%+d/%+d.", delta.Wins, delta.Losses, delta.Draws), true)
}

func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i)

	ctx, cancel := commandContext()
	defer cancel()

	data, err := b.services.ReportService.GetExcelReport(ctx, ownerID(i))
	if err != nil {
		b.logger.Error("Export error: %v", err)
		b.editResponse(s, i, &discordgo.WebhookEdit{
			Content: &[]string{errorMessage(err)}[0],
		})
		return
	}

	b.editResponse(s, i, &discordgo.WebhookEdit{
		Content: &[]string{"Your report is ready!"}[0],
		Files: []*discordgo.File{
			{Name: reportFileName, Reader: bytes.NewReader(data)},
		},
	})
}

func (b *Bot) handleSyncSheet(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i)

	ctx, cancel := commandContext()
	defer cancel()

	url, err := b.services.ReportService.SyncToGoogleSheet(ctx, ownerID(i))
	if err != nil {
		b.logger.Error("Sheet sync error: %v", err)
		b.editResponse(s, i, &discordgo.WebhookEdit{
			Content: &[]string{errorMessage(err)}[0],
		})
		return
	}

	b.editResponse(s, i, &discordgo.WebhookEdit{
		Content: &[]string{fmt.Sprintf("Spreadsheet updated!\nLink: %s", url)}[0],
	})
}

// handleScreenshot imports a round from an attached result screenshot. The
// message text must be the ID of the event the round belongs to.
func (b *Bot) handleScreenshot(s *discordgo.Session, m *discordgo.MessageCreate) {
	filename := strings.ToLower(m.Attachments[0].Filename)
	if !strings.HasSuffix(filename, ".png") && !strings.HasSuffix(filename, ".jpg") && !strings.HasSuffix(filename, ".jpeg") {
		return
	}

	eventID := strings.TrimSpace(m.Content)
	if eventID == "" {
		s.ChannelMessageSend(m.ChannelID, "Send the event ID together with the screenshot.")
		return
	}

	s.ChannelTyping(m.ChannelID)

	ctx, cancel := commandContext()
	defer cancel()

	data, err := download(ctx, m.Attachments[0].URL)
	if err != nil {
		b.logger.Error("Failed to download image: %v", err)
		s.ChannelMessageSend(m.ChannelID, "Could not download the image.")
		return
	}

	rd, err := b.services.RoundService.ImportRoundFromScreenshot(ctx, ownerFromUser(m.Author.ID), eventID, data)
	if err != nil {
		b.logger.Error("Screenshot import error: %v", err)
		s.ChannelMessageSend(m.ChannelID, errorMessage(err))
		return
	}

	s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Round recorded: %s. ID: `%s`", application.FormatGames(rd.Games), rd.ID))
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
