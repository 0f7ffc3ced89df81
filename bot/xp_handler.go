package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"levelbot/bot/common"
	"levelbot/service"

	"github.com/bwmarrin/discordgo"
)

// handleAddXP handles the /addxp command
func (b *Bot) handleAddXP(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	var amount int64
	var targetUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			targetUser = opt.UserValue(s)
		}
	}

	if targetUser == nil {
		common.RespondWithError(s, i, "❌ Invalid user")
		return
	}
	if targetUser.Bot {
		common.RespondWithError(s, i, "❌ Bots cannot earn XP")
		return
	}
	// The grant ceiling lives here so the engine stays free of command policy
	if amount < 1 || amount > service.MaxXPGrant {
		common.RespondWithError(s, i, fmt.Sprintf("❌ Amount must be between 1 and %d", service.MaxXPGrant))
		return
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}
	userID, err := common.ParseUserID(targetUser.ID)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", targetUser.ID, err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}
	channelID, err := common.ParseUserID(i.ChannelID)
	if err != nil {
		log.Errorf("Failed to parse channel ID %s: %v", i.ChannelID, err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	result, err := b.levelingService.GrantXP(ctx, guildID, userID, channelID, amount)
	if err != nil {
		log.Errorf("Failed to grant %d XP to user %d in guild %d: %v", amount, userID, guildID, err)
		common.RespondWithError(s, i, "❌ Failed to grant XP. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, targetUser.ID)
	message := fmt.Sprintf("✅ Granted **%s XP** to **%s** (level %d, %s total XP)",
		common.FormatXP(result.Gained), displayName, result.Level, common.FormatXP(result.TotalXP))
	if result.LeveledUp {
		message += " 🎉"
	}

	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Failed to respond to addxp command: %v", err)
	}
}
