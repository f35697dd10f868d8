package repository

import (
	"encoding/json"
	"fmt"
)

func encodeColors(colors []string) (string, error) {
	if colors == nil {
		colors = []string{}
	}
	b, err := json.Marshal(colors)
	if err != nil {
		return "", fmt.Errorf("failed to encode ink colors: %w", err)
	}
	return string(b), nil
}

func decodeColors(raw string) ([]string, error) {
	colors := []string{}
	if raw == "" {
		return colors, nil
	}
	if err := json.Unmarshal([]byte(raw), &colors); err != nil {
		return nil, fmt.Errorf("failed to decode ink colors: %w", err)
	}
	return colors, nil
}
