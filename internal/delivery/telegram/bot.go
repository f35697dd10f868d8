package telegram

import (
	"context"
	"fmt"
	"strconv"

	"lorcana/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const ownerPrefix = "telegram:"

type Bot struct {
	bot      *tgbotapi.BotAPI
	services *application.Service
	logger   application.Logger
}

func NewBot(token string, services *application.Service, logger application.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram bot authorized on account %s", bot.Self.UserName)

	return &Bot{
		bot:      bot,
		services: services,
		logger:   logger,
	}, nil
}

func (b *Bot) Init() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "decks", Description: "Your decks with win rates"},
		tgbotapi.BotCommand{Command: "events", Description: "Your events"},
		tgbotapi.BotCommand{Command: "round", Description: "Record a round"},
		tgbotapi.BotCommand{Command: "export", Description: "Excel report"},
		tgbotapi.BotCommand{Command: "help", Description: "All commands"},
	)
	if _, err := b.bot.Request(commands); err != nil {
		b.logger.Warn("failed to set telegram commands: %v", err)
	}
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) Stop() {
	b.bot.StopReceivingUpdates()
}

func ownerID(msg *tgbotapi.Message) string {
	return ownerPrefix + strconv.FormatInt(msg.From.ID, 10)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, helpText)
		return
	}

	b.handleCommand(ctx, msg)
}
