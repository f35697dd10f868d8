package discord

import (
	"lorcana/internal/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func eventTypeOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "type",
		Description: "Event type",
		Required:    required,
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: "Tournament", Value: string(models.EventTypeTournament)},
			{Name: "Playtest", Value: string(models.EventTypePlaytest)},
		},
	}
}

func (b *Bot) newDeckAddCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "deck_add",
		Description: "Create a deck",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("name", "Deck name", true),
			stringOption("inks", "Up to two inks, e.g. amber/steel", false),
		},
	}
}

func (b *Bot) newDeckDeleteCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "deck_delete",
		Description: "Delete a deck (its events are kept)",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("deck", "Deck ID", true),
		},
	}
}

func (b *Bot) newDecksCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "decks",
		Description: "Your decks with win rates",
	}
}

func (b *Bot) newDeckCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "deck",
		Description: "Detailed stats for one deck",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("deck", "Deck ID", true),
		},
	}
}

func (b *Bot) newEventAddCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "event_add",
		Description: "Create an event",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("name", "Event name", true),
			eventTypeOption(true),
			stringOption("deck", "Deck ID", false),
			stringOption("format", "Format, e.g. Core", false),
			stringOption("date", "YYYY-MM-DD", false),
		},
	}
}

func (b *Bot) newEventDeleteCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "event_delete",
		Description: "Delete an event and all its rounds",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("event", "Event ID", true),
		},
	}
}

func (b *Bot) newEventsCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "events",
		Description: "Your events with records",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("deck", "Only events of this deck ID", false),
			eventTypeOption(false),
			stringOption("format", "Only this format", false),
		},
	}
}

func (b *Bot) newEventCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "event",
		Description: "Rounds and stats of one event",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("event", "Event ID", true),
		},
	}
}

func (b *Bot) newRoundAddCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "round_add",
		Description: "Record a round",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("event", "Event ID", true),
			stringOption("games", "Games in order, e.g. WP LD WP (W/L/D + P play / D draw)", true),
			stringOption("opponent", "Opponent inks, e.g. ruby/sapphire", false),
		},
	}
}

func (b *Bot) newRoundEditCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "round_edit",
		Description: "Replace the games of a round",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("event", "Event ID", true),
			stringOption("round", "Round ID", true),
			stringOption("games", "Games in order, e.g. WP LD WP", true),
			stringOption("opponent", "Opponent inks", false),
		},
	}
}

func (b *Bot) newRoundDeleteCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "round_delete",
		Description: "Delete a round",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("event", "Event ID", true),
			stringOption("round", "Round ID", true),
		},
	}
}

func (b *Bot) newRepairCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "repair",
		Description: "Resync an event's stored record with its rounds",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("event", "Event ID", true),
		},
	}
}

func (b *Bot) newExportCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "export",
		Description: "Export your stats to Excel",
	}
}

func (b *Bot) newSyncSheetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "sync_sheet",
		Description: "Publish your deck stats to Google Sheets",
	}
}
