package application

import (
	"fmt"
	"slices"
	"strings"

	"lorcana/internal/models"
	"lorcana/internal/stats"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// ParseGames reads the compact game notation used by the chat bots: one
// token per game, a result letter (W, L or D) followed by P when the player
// was on the play or D when on the draw, e.g. "WP LD WP".
func ParseGames(notation string) ([]models.GameResult, error) {
	tokens := strings.FieldsFunc(notation, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})

	games := make([]models.GameResult, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.ToUpper(tok)
		if len(tok) != 2 {
			return nil, invalidf("game %d: expected two letters like WP or LD, got %q", i+1, tok)
		}

		var g models.GameResult
		switch tok[0] {
		case 'W':
			g.Result = models.ResultWin
		case 'L':
			g.Result = models.ResultLoss
		case 'D':
			g.Result = models.ResultDraw
		default:
			return nil, fmt.Errorf("%w: game %d: %w: %q", ErrInvalidInput, i+1, stats.ErrInvalidResult, tok[:1])
		}

		switch tok[1] {
		case 'P':
			g.OnThePlay = true
		case 'D':
			g.OnThePlay = false
		default:
			return nil, invalidf("game %d: play order must be P or D, got %q", i+1, tok[1:])
		}
		games = append(games, g)
	}
	return games, nil
}

func FormatGames(games []models.GameResult) string {
	parts := make([]string, 0, len(games))
	for _, g := range games {
		var b strings.Builder
		switch g.Result {
		case models.ResultWin:
			b.WriteByte('W')
		case models.ResultLoss:
			b.WriteByte('L')
		default:
			b.WriteByte('D')
		}
		if g.OnThePlay {
			b.WriteByte('P')
		} else {
			b.WriteByte('D')
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}

// ParseInks splits a free-form list such as "amber/steel" into ink names.
func ParseInks(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '+'
	})
}

// NormalizeInks title-cases ink names, drops duplicates and rejects unknown
// inks or more than two colors.
func NormalizeInks(inks []string) ([]string, error) {
	out := make([]string, 0, len(inks))
	for _, ink := range inks {
		name := titleCaser.String(strings.ToLower(strings.TrimSpace(ink)))
		if name == "" {
			continue
		}
		if !slices.Contains(models.InkColors, name) {
			return nil, invalidf("unknown ink color %q", ink)
		}
		if slices.Contains(out, name) {
			continue
		}
		out = append(out, name)
	}
	if len(out) > maxInkColors {
		return nil, invalidf("at most %d ink colors allowed, got %d", maxInkColors, len(out))
	}
	return out, nil
}

func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}

func FormatRecord(c models.Counters) string {
	return fmt.Sprintf("%d-%d-%d", c.Wins, c.Losses, c.Draws)
}
