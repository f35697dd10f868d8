package ai

import (
	"errors"
	"testing"

	"lorcana/internal/models"
	"lorcana/internal/stats"
)

func TestDecodeRound(t *testing.T) {
	raw := "```json\n" + `{
		"games": [
			{"result": "WIN", "on_the_play": true},
			{"result": "loss", "on_the_play": false},
			{"result": "Victory", "on_the_play": true}
		],
		"opponent_ink_colors": ["Amethist", "steel", "???"]
	}` + "\n```"

	got, err := DecodeRound(raw)
	if err != nil {
		t.Fatalf("DecodeRound: %v", err)
	}

	want := []models.GameResult{
		{Result: models.ResultWin, OnThePlay: true},
		{Result: models.ResultLoss, OnThePlay: false},
		{Result: models.ResultWin, OnThePlay: true},
	}
	if len(got.Games) != len(want) {
		t.Fatalf("games = %+v", got.Games)
	}
	for i := range want {
		if got.Games[i] != want[i] {
			t.Errorf("game %d = %+v, want %+v", i, got.Games[i], want[i])
		}
	}

	if len(got.OpponentInkColors) != 2 || got.OpponentInkColors[0] != "Amethyst" || got.OpponentInkColors[1] != "Steel" {
		t.Errorf("inks = %v", got.OpponentInkColors)
	}
}

func TestDecodeRoundErrors(t *testing.T) {
	if _, err := DecodeRound(`{"games": [{"result": "maybe"}]}`); !errors.Is(err, stats.ErrInvalidResult) {
		t.Errorf("unknown result: want ErrInvalidResult, got %v", err)
	}
	if _, err := DecodeRound("not json"); err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestMatchInk(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Amber", "Amber", true},
		{"saphire", "Sapphire", true},
		{"Rubi", "Ruby", true},
		{"Purple", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := MatchInk(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MatchInk(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSimilarityScore(t *testing.T) {
	if s := SimilarityScore("Steel", "steel"); s != 1.0 {
		t.Errorf("case-insensitive match = %v", s)
	}
	if s := SimilarityScore("abc", ""); s != 0.0 {
		t.Errorf("empty = %v", s)
	}
}
