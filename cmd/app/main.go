package main

import (
	"context"

	"lorcana/internal/ai"
	"lorcana/internal/application"
	"lorcana/internal/delivery/discord"
	"lorcana/internal/delivery/telegram"
	"lorcana/internal/delivery/web"
	"lorcana/internal/repository"
	"lorcana/internal/stats"
	"lorcana/pkg/config"
	"lorcana/pkg/logger"
	service "lorcana/pkg/services"
	"lorcana/pkg/sheets"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	db, err := repository.NewDB(&cfg.Repo)
	if err != nil {
		log.Error("failed to init db: %s", err.Error())
		return
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := repository.RunMigrations(db); err != nil {
		log.Error("failed to run migrations: %s", err.Error())
		return
	}
	log.Info("Migrations applied successfully")

	repos := repository.NewRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var provider application.AIProvider
	if cfg.GeminiKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiKey)
		if err != nil {
			log.Error("failed to init gemini: %s", err.Error())
			return
		}
		defer gemini.Close()
		provider = gemini
	} else {
		log.Warn("GEMINI_KEY is not set, screenshot import is disabled")
	}

	var sheetsClient sheets.Client
	if cfg.GoogleCredentialsPath != "" {
		client, err := sheets.NewGoogleSheetsClient(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			log.Error("failed to init google sheets: %s", err.Error())
			return
		}
		sheetsClient = client
	} else {
		log.Warn("GOOGLE_CREDENTIALS_PATH is not set, sheet sync is disabled")
	}

	services := application.NewService(repos, provider, sheetsClient, application.Options{
		Rules:         stats.Rules{EmptyRoundIsDraw: cfg.EmptyRoundAsDraw},
		SpreadsheetID: cfg.GoogleSpreadsheetID,
		OwnerEmail:    cfg.GoogleOwnerEmail,
	}, log.With("component", "application"))

	manager := service.NewManager(log)

	if cfg.DiscordToken != "" {
		bot, err := discord.NewBot(&cfg, services, log.With("surface", "discord"))
		if err != nil {
			log.Error("failed to create discord bot: %s", err.Error())
			return
		}
		manager.AddService(bot)
	}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, services, log.With("surface", "telegram"))
		if err != nil {
			log.Error("failed to create telegram bot: %s", err.Error())
			return
		}
		manager.AddService(bot)
	}

	if cfg.HTTPAddr != "" {
		manager.AddService(web.NewServer(cfg.HTTPAddr, services, log.With("surface", "http")))
	}

	if err := manager.Run(ctx); err != nil {
		log.Error("failed to run services: %s", err.Error())
		return
	}
	log.Info("Stopped")
}
