package discord

import (
	"context"
	"fmt"

	"lorcana/internal/application"
	"lorcana/pkg/config"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger

	guildID          string
	allowedChannelID string
	commands         []*discordgo.ApplicationCommand
	handlers         map[string]func(*discordgo.Session, *discordgo.Interaction)
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &Bot{
		session:          s,
		services:         services,
		logger:           logger,
		guildID:          cfg.DiscordGuildID,
		allowedChannelID: cfg.AllowedChannelID,
	}, nil
}

func (b *Bot) Init() error {
	b.addCommands(
		b.newDeckAddCommand(),
		b.newDeckDeleteCommand(),
		b.newDecksCommand(),
		b.newDeckCommand(),
		b.newEventAddCommand(),
		b.newEventDeleteCommand(),
		b.newEventsCommand(),
		b.newEventCommand(),
		b.newRoundAddCommand(),
		b.newRoundEditCommand(),
		b.newRoundDeleteCommand(),
		b.newRepairCommand(),
		b.newExportCommand(),
		b.newSyncSheetCommand(),
	)

	b.handlers = map[string]func(*discordgo.Session, *discordgo.Interaction){
		"deck_add":     b.handleDeckAdd,
		"deck_delete":  b.handleDeckDelete,
		"decks":        b.handleDecks,
		"deck":         b.handleDeck,
		"event_add":    b.handleEventAdd,
		"event_delete": b.handleEventDelete,
		"events":       b.handleEvents,
		"event":        b.handleEvent,
		"round_add":    b.handleRoundAdd,
		"round_edit":   b.handleRoundEdit,
		"round_delete": b.handleRoundDelete,
		"repair":       b.handleRepair,
		"export":       b.handleExport,
		"sync_sheet":   b.handleSyncSheet,
	}

	b.session.AddHandler(b.onInteraction)
	b.session.AddHandler(b.onMessage)
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	if err := b.session.Open(); err != nil {
		b.logger.Error("failed to open discord session: %v", err)
		return
	}

	b.logger.Info("Discord bot started. Registering %d slash commands...", len(b.commands))

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, b.commands)
	if err != nil {
		b.logger.Error("Failed to register commands: %v", err)
	} else {
		b.logger.Info("Slash commands registered successfully")
	}
}

func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		b.logger.Error("failed to close discord session: %v", err)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	if b.allowedChannelID != "" && i.ChannelID != b.allowedChannelID {
		b.respondMessage(s, i.Interaction, "This bot is not enabled in this channel.", true)
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := b.handlers[name]
	if !ok {
		b.logger.Warn("unknown command %q", name)
		return
	}
	handler(s, i.Interaction)
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	if b.allowedChannelID != "" && m.ChannelID != b.allowedChannelID {
		return
	}

	if len(m.Attachments) > 0 {
		b.handleScreenshot(s, m)
	}
}
