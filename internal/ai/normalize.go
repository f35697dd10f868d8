package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"lorcana/internal/models"
	"lorcana/internal/stats"
)

type rawGame struct {
	Result    string `json:"result"`
	OnThePlay bool   `json:"on_the_play"`
}

type rawRound struct {
	Games             []rawGame `json:"games"`
	OpponentInkColors []string  `json:"opponent_ink_colors"`
}

// DecodeRound turns the model's JSON answer into a round import. Result
// spellings are normalized and ink names are snapped to the closest known
// ink.
func DecodeRound(raw string) (*models.RoundImport, error) {
	raw = stripCodeFence(raw)

	var rr rawRound
	if err := json.Unmarshal([]byte(raw), &rr); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w | raw: %s", err, raw)
	}

	out := &models.RoundImport{
		Games:             make([]models.GameResult, 0, len(rr.Games)),
		OpponentInkColors: make([]string, 0, len(rr.OpponentInkColors)),
	}
	for i, g := range rr.Games {
		res, err := NormalizeResult(g.Result)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}
		out.Games = append(out.Games, models.GameResult{Result: res, OnThePlay: g.OnThePlay})
	}
	for _, ink := range rr.OpponentInkColors {
		if name, ok := MatchInk(ink); ok {
			out.OpponentInkColors = append(out.OpponentInkColors, name)
		}
	}
	return out, nil
}

func NormalizeResult(s string) (models.Result, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "W", "WIN", "WON", "VICTORY":
		return models.ResultWin, nil
	case "L", "LOSS", "LOSE", "LOST", "DEFEAT":
		return models.ResultLoss, nil
	case "D", "DRAW", "TIE":
		return models.ResultDraw, nil
	}
	return "", fmt.Errorf("%w: %q", stats.ErrInvalidResult, s)
}

// MatchInk returns the known ink closest to name, tolerating small OCR
// mistakes such as "Amethist".
func MatchInk(name string) (string, bool) {
	best, bestScore := "", 0.0
	for _, ink := range models.InkColors {
		if score := SimilarityScore(name, ink); score > bestScore {
			best, bestScore = ink, score
		}
	}
	if bestScore < inkMatchThreshold {
		return "", false
	}
	return best, true
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

func SimilarityScore(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(a, b)
	maxLen := max(len(a), len(b))

	return 1.0 - float64(distance)/float64(maxLen)
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(a)][len(b)]
}
