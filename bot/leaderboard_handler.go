package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"levelbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// LeaderboardPageSize is the number of entries shown per leaderboard page
const LeaderboardPageSize = 10

// handleLeaderboard handles the /leaderboard command
func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	page := 1
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "page" {
			page = int(opt.IntValue())
		}
	}
	if page < 1 {
		page = 1
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	offset := (page - 1) * LeaderboardPageSize
	entries, total, err := b.levelingService.GetLeaderboard(ctx, guildID, LeaderboardPageSize, offset)
	if err != nil {
		log.Errorf("Failed to get leaderboard for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to retrieve leaderboard. Please try again.")
		return
	}

	if len(entries) == 0 {
		common.RespondWithError(s, i, "No one has earned XP yet.")
		return
	}

	var sb strings.Builder
	for _, entry := range entries {
		medal := ""
		switch entry.Rank {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
		sb.WriteString(fmt.Sprintf("%s**#%d** %s — Level %d (%s XP)\n",
			medal, entry.Rank, common.GetUserMention(entry.UserID), entry.Level, common.FormatXP(entry.TotalXP)))
	}

	totalPages := (total + LeaderboardPageSize - 1) / LeaderboardPageSize
	embed := &discordgo.MessageEmbed{
		Title:       "🏆 XP Leaderboard",
		Description: sb.String(),
		Color:       0xFFD700,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d • %d members ranked", page, totalPages, total),
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Failed to respond to leaderboard command: %v", err)
	}
}
