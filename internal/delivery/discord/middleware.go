package discord

import (
	"github.com/bwmarrin/discordgo"
)

const ownerPrefix = "discord:"

func ownerFromUser(userID string) string {
	return ownerPrefix + userID
}

// ownerID scopes all data to the invoking Discord user, in guilds and DMs.
func ownerID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return ownerFromUser(i.Member.User.ID)
	}
	if i.User != nil {
		return ownerFromUser(i.User.ID)
	}
	return ""
}

func options(i *discordgo.Interaction) map[string]string {
	out := make(map[string]string)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			out[opt.Name] = opt.StringValue()
		}
	}
	return out
}

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: truncate(msg),
			Flags:   flags,
		},
	})
	if err != nil {
		b.logger.Error("failed to respond to interaction: %v", err)
	}
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.Interaction, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
	if err != nil {
		b.logger.Error("failed to respond to interaction: %v", err)
	}
}

func (b *Bot) respondError(s *discordgo.Session, i *discordgo.Interaction, err error) {
	b.logger.Debug("command %s failed: %v", i.ApplicationCommandData().Name, err)
	b.respondMessage(s, i, errorMessage(err), true)
}

func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.Interaction) {
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) editResponse(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) {
	if _, err := s.InteractionResponseEdit(i, edit); err != nil {
		b.logger.Error("failed to edit interaction response: %v", err)
	}
}
