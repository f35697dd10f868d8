package config

import (
	"lorcana/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo     repository.Config `envPrefix:"REPO_"`
	LogLevel string            `env:"LOGGER_LEVEL" envDefault:"debug"`

	EmptyRoundAsDraw bool `env:"STATS_EMPTY_ROUND_AS_DRAW" envDefault:"false"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:""`

	DiscordToken     string `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID   string `env:"DISCORD_GUILD_ID" envDefault:""`
	AllowedChannelID string `env:"ALLOWED_CHANNEL_ID" envDefault:""`

	TelegramToken string `env:"TELEGRAM_TOKEN" envDefault:""`

	GeminiKey string `env:"GEMINI_KEY" envDefault:""`

	GoogleCredentialsPath string `env:"GOOGLE_CREDENTIALS_PATH" envDefault:""`
	GoogleSpreadsheetID   string `env:"GOOGLE_SPREADSHEET_ID" envDefault:""`
	GoogleOwnerEmail      string `env:"GOOGLE_OWNER_EMAIL" envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
