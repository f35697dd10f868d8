package discord

import (
	"errors"
	"fmt"
	"strings"

	"lorcana/internal/application"
	"lorcana/internal/models"

	"github.com/bwmarrin/discordgo"
)

func getColorByWinRate(winRate float64, matches int) int {
	if matches == 0 {
		return colorGray
	}
	switch {
	case winRate >= winRateExcellent:
		return colorPurple
	case winRate >= winRateGood:
		return colorGreen
	case winRate < winRatePoor:
		return colorRed
	default:
		return colorGray
	}
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func truncate(msg string) string {
	if len(msg) > maxMessageLength {
		return msg[:maxMessageTruncation] + "\n..."
	}
	return msg
}

// errorMessage turns a service error into text safe to show the user.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrEmptyRoundSubmission):
		return "A round needs at least one game."
	case errors.Is(err, application.ErrInvalidInput):
		return "Invalid input: " + err.Error()
	case errors.Is(err, application.ErrNotFound):
		return "Not found. Check the ID."
	case errors.Is(err, application.ErrNotConfigured):
		return "This feature is not configured on the server."
	default:
		return "Something went wrong, try again later."
	}
}

func formatStatsLine(st models.Stats) string {
	return fmt.Sprintf("`%s` | Match WR `%s` | Game WR `%s`",
		application.FormatRecord(st.MatchCounters()),
		application.FormatRate(st.MatchWinRate),
		application.FormatRate(st.GameWinRate))
}

func formatDeckLine(dv application.DeckView) string {
	inks := valueOrDefault(strings.Join(dv.Deck.InkColors, "/"), "no inks")
	return fmt.Sprintf("**%s** (%s) `%s`\n%s", dv.Deck.Name, inks, dv.Deck.ID, formatStatsLine(dv.Stats))
}

func formatEventLine(sum application.EventSummary) string {
	e := sum.Event
	line := fmt.Sprintf("**%s** [%s] %s `%s`\n%s",
		e.Name, e.Type, valueOrDefault(e.DeckName, "no deck"), e.ID, formatStatsLine(sum.Stats))
	if sum.Drift != nil {
		line += " ⚠️"
	}
	return line
}

func formatRoundLine(n int, rv application.RoundView) string {
	inks := valueOrDefault(strings.Join(rv.OpponentInkColors, "/"), "?")
	return fmt.Sprintf("%d. **%s** %s vs %s `%s`",
		n, strings.ToUpper(string(rv.Tally.Outcome)), application.FormatGames(rv.Games), inks, rv.ID)
}

func statsFields(st models.Stats) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{Name: "Record", Value: application.FormatRecord(st.MatchCounters()), Inline: true},
		{Name: "Match WR", Value: application.FormatRate(st.MatchWinRate), Inline: true},
		{Name: "Game WR", Value: application.FormatRate(st.GameWinRate), Inline: true},
		{Name: "On the play", Value: fmt.Sprintf("%s (%d/%d)", application.FormatRate(st.OnPlayGameWinRate), st.GamesWonOnPlay, st.GamesOnPlay), Inline: true},
		{Name: "On the draw", Value: fmt.Sprintf("%s (%d/%d)", application.FormatRate(st.OnDrawGameWinRate), st.GamesWonOnDraw, st.GamesOnDraw), Inline: true},
	}
}
