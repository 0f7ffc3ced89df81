package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"levelbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// handleLevelConfig handles the /levelconfig command and its subcommands
func (b *Bot) handleLevelConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand")
		return
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	switch options[0].Name {
	case "enable":
		b.handleConfigToggle(s, i, guildID, true)
	case "disable":
		b.handleConfigToggle(s, i, guildID, false)
	case "multiplier":
		b.handleConfigMultiplier(s, i, guildID, options[0].Options)
	case "channel":
		b.handleConfigChannel(s, i, guildID, options[0].Options)
	case "show":
		b.handleConfigShow(s, i, guildID)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

func (b *Bot) handleConfigToggle(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, enabled bool) {
	ctx := context.Background()

	if _, err := b.configService.UpdateConfig(ctx, guildID, &enabled, nil, nil); err != nil {
		log.Errorf("Failed to update leveling config for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "❌ Failed to update settings")
		return
	}

	message := "✅ Leveling is now **enabled**. Members earn XP by chatting."
	if !enabled {
		message = "✅ Leveling is now **disabled**. No XP will be earned from messages."
	}
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to levelconfig command: %v", err)
	}
}

func (b *Bot) handleConfigMultiplier(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	if len(options) == 0 {
		common.RespondWithError(s, i, "❌ Please provide a multiplier value")
		return
	}
	multiplier := options[0].FloatValue()

	config, err := b.configService.UpdateConfig(ctx, guildID, nil, nil, &multiplier)
	if err != nil {
		log.Errorf("Failed to update multiplier for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "❌ Failed to update settings")
		return
	}

	// The service clamps out-of-range values, so echo what was stored
	message := fmt.Sprintf("✅ XP multiplier set to **%.2fx**", config.XPMultiplier)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to levelconfig command: %v", err)
	}
}

func (b *Bot) handleConfigChannel(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var message string
	if len(options) > 0 {
		channel := options[0].ChannelValue(s)
		channelID, err := common.ParseUserID(channel.ID)
		if err != nil {
			log.Errorf("Failed to parse channel ID %s: %v", channel.ID, err)
			common.RespondWithError(s, i, "❌ Invalid channel")
			return
		}

		if _, err := b.configService.UpdateConfig(ctx, guildID, nil, &channelID, nil); err != nil {
			log.Errorf("Failed to update level channel for guild %d: %v", guildID, err)
			common.RespondWithError(s, i, "❌ Failed to update settings")
			return
		}
		message = fmt.Sprintf("✅ Level-up announcements will be posted in <#%d>", channelID)
	} else {
		if err := b.configService.ClearLevelChannel(ctx, guildID); err != nil {
			log.Errorf("Failed to clear level channel for guild %d: %v", guildID, err)
			common.RespondWithError(s, i, "❌ Failed to update settings")
			return
		}
		message = "✅ Level-up announcements will be posted where the user leveled up"
	}

	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to levelconfig command: %v", err)
	}
}

func (b *Bot) handleConfigShow(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	ctx := context.Background()

	config, err := b.configService.GetOrCreateConfig(ctx, guildID)
	if err != nil {
		log.Errorf("Failed to get leveling config for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "❌ Failed to retrieve settings")
		return
	}

	status := "disabled"
	if config.Enabled {
		status = "enabled"
	}
	channel := "where the user leveled up"
	if config.LevelChannelID != nil {
		channel = fmt.Sprintf("<#%d>", *config.LevelChannelID)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Leveling Configuration",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: status, Inline: true},
			{Name: "XP Multiplier", Value: fmt.Sprintf("%.2fx", config.XPMultiplier), Inline: true},
			{Name: "Announcements", Value: channel, Inline: true},
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Failed to respond to levelconfig command: %v", err)
	}
}
