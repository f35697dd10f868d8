package telegram

import (
	"errors"
	"fmt"
	"strings"

	"lorcana/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = "Lorcana match tracker\n\n" +
	"/decks - Your decks with win rates\n" +
	"/deck [deck id] - Deck stats\n" +
	"/deck_add [name] | [inks] - Create a deck\n" +
	"/deck_delete [deck id] - Delete a deck\n" +
	"/events [deck id] - Your events\n" +
	"/event [event id] - Event rounds and stats\n" +
	"/event_add [Tournament|Playtest] | [name] | [deck id] | [format] | [YYYY-MM-DD]\n" +
	"/event_delete [event id] - Delete an event\n" +
	"/round [event id] [games] vs [inks] - e.g. /round abc WP LD WP vs ruby/steel\n" +
	"/round_edit [event id] [round id] [games] vs [inks]\n" +
	"/round_delete [event id] [round id]\n" +
	"/repair [event id] - Resync the stored record\n" +
	"/export - Excel report\n" +
	"/sync - Google Sheets\n\n" +
	"Send a result screenshot with the event id as caption to import a round."

func (b *Bot) sendMessage(chatID int64, text string) {
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)

	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("failed to send telegram message: %v", err)
	}
}

func (b *Bot) sendError(chatID int64, err error) {
	b.logger.Debug("telegram command failed: %v", err)
	b.sendMessage(chatID, errorMessage(err))
}

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

// splitArgs splits pipe separated command arguments, keeping empty slots
// so optional fields stay positional.
func splitArgs(args string, n int) []string {
	out := make([]string, n)
	for i, part := range strings.SplitN(args, "|", n) {
		out[i] = strings.TrimSpace(part)
	}
	return out
}

// parseRoundArgs reads "[ids...] WP LD vs ruby/steel" where the first idCount
// fields are IDs.
func parseRoundArgs(args string, idCount int) (ids []string, games string, inks []string, err error) {
	fields := strings.Fields(args)
	if len(fields) < idCount {
		return nil, "", nil, fmt.Errorf("%w: expected %d ids before the games", application.ErrInvalidInput, idCount)
	}

	ids = fields[:idCount]
	rest := fields[idCount:]
	for i, f := range rest {
		if strings.EqualFold(f, "vs") {
			return ids, strings.Join(rest[:i], " "), application.ParseInks(strings.Join(rest[i+1:], " ")), nil
		}
	}
	return ids, strings.Join(rest, " "), nil, nil
}
