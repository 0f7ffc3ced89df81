package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"levelbot/bot/common"
	"levelbot/models"

	"github.com/bwmarrin/discordgo"
)

// handleRank handles the /rank command
func (b *Bot) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	targetUser := i.Member.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			targetUser = opt.UserValue(s)
		}
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	userID, err := common.ParseUserID(targetUser.ID)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", targetUser.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	record, err := b.levelingService.GetUserRecord(ctx, guildID, userID)
	if err != nil {
		log.Errorf("Failed to get level record for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve rank. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, targetUser.ID)

	if record == nil {
		common.RespondWithError(s, i, fmt.Sprintf("**%s** hasn't earned any XP yet.", displayName))
		return
	}

	rank, err := b.levelingService.GetUserRank(ctx, guildID, userID)
	if err != nil {
		log.Errorf("Failed to get rank for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve rank. Please try again.")
		return
	}

	required := models.XPForNextLevel(record.Level)
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Rank for %s", displayName),
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Level",
				Value:  fmt.Sprintf("%d", record.Level),
				Inline: true,
			},
			{
				Name:   "Rank",
				Value:  fmt.Sprintf("#%d", rank),
				Inline: true,
			},
			{
				Name:   "Total XP",
				Value:  common.FormatXP(record.TotalXP),
				Inline: true,
			},
			{
				Name: "Progress",
				Value: fmt.Sprintf("%s\n%s", common.FormatProgressBar(record.XP, required),
					common.FormatLevelProgress(record.XP, required)),
				Inline: false,
			},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: targetUser.AvatarURL(""),
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Failed to respond to rank command: %v", err)
	}
}
