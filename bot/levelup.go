package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"levelbot/bot/common"
	"levelbot/events"
)

// handleLevelUp runs the side effects of a level-up: the channel announcement
// and the role reward for the reached level. Each effect is independent; a
// failure in one never blocks the other, and no failure is fatal.
func (b *Bot) handleLevelUp(ctx context.Context, event events.LevelUpEvent) {
	b.announceLevelUp(event)
	b.grantLevelRole(ctx, event)
}

func (b *Bot) announceLevelUp(event events.LevelUpEvent) {
	message := fmt.Sprintf("🎉 GG %s, you just advanced to **level %d**!",
		common.GetUserMention(event.UserID), event.Level)

	channelID := common.FormatUserID(event.ChannelID)
	if _, err := b.session.ChannelMessageSend(channelID, message); err != nil {
		log.Errorf("Failed to announce level-up for user %d in channel %d: %v",
			event.UserID, event.ChannelID, err)
	}
}

func (b *Bot) grantLevelRole(ctx context.Context, event events.LevelUpEvent) {
	levelRole, err := b.configService.GetLevelRole(ctx, event.GuildID, event.Level)
	if err != nil {
		log.Errorf("Failed to look up role reward for level %d in guild %d: %v",
			event.Level, event.GuildID, err)
		return
	}
	if levelRole == nil {
		return
	}

	guildID := common.FormatUserID(event.GuildID)
	userID := common.FormatUserID(event.UserID)
	roleID := common.FormatUserID(levelRole.RoleID)

	member, err := b.session.GuildMember(guildID, userID)
	if err != nil {
		log.Errorf("Failed to get member %d in guild %d: %v", event.UserID, event.GuildID, err)
		return
	}
	for _, existing := range member.Roles {
		if existing == roleID {
			return
		}
	}

	if err := b.session.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		log.Errorf("Failed to grant role %d to user %d for reaching level %d: %v",
			levelRole.RoleID, event.UserID, event.Level, err)
		return
	}

	log.WithFields(log.Fields{
		"guildID": event.GuildID,
		"userID":  event.UserID,
		"level":   event.Level,
		"roleID":  levelRole.RoleID,
	}).Info("Granted level role reward")

	b.notifyRoleReward(event, levelRole.RoleID)
}

// notifyRoleReward tells the member about their new role, by DM first. Users
// can block DMs, so on failure the notice goes to the announcement channel.
func (b *Bot) notifyRoleReward(event events.LevelUpEvent, roleID int64) {
	message := fmt.Sprintf("You reached **level %d** and earned a new role! 🏅", event.Level)

	dmChannel, err := b.session.UserChannelCreate(common.FormatUserID(event.UserID))
	if err == nil {
		if _, err := b.session.ChannelMessageSend(dmChannel.ID, message); err == nil {
			return
		}
	}

	// DM failed, fall back to the announcement channel
	fallback := fmt.Sprintf("%s reached **level %d** and earned <@&%d>! 🏅",
		common.GetUserMention(event.UserID), event.Level, roleID)
	channelID := common.FormatUserID(event.ChannelID)
	if _, err := b.session.ChannelMessageSend(channelID, fallback); err != nil {
		log.Errorf("Failed to post role reward notice for user %d in channel %d: %v",
			event.UserID, event.ChannelID, err)
	}
}
