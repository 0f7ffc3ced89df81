package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"levelbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// handleLevelRole handles the /levelrole command and its subcommands
func (b *Bot) handleLevelRole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "❌ You need administrator permissions to use this command")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand: set, remove or list")
		return
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "❌ Failed to process command")
		return
	}

	switch options[0].Name {
	case "set":
		b.handleLevelRoleSet(s, i, guildID, options[0].Options)
	case "remove":
		b.handleLevelRoleRemove(s, i, guildID, options[0].Options)
	case "list":
		b.handleLevelRoleList(s, i, guildID)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

func (b *Bot) handleLevelRoleSet(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var level int64
	var role *discordgo.Role
	for _, opt := range options {
		switch opt.Name {
		case "level":
			level = opt.IntValue()
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		}
	}

	if role == nil {
		common.RespondWithError(s, i, "❌ Invalid role selected")
		return
	}
	// @everyone shares its ID with the guild
	if role.ID == i.GuildID {
		common.RespondWithError(s, i, "❌ The @everyone role cannot be used as a reward")
		return
	}
	if role.Managed {
		common.RespondWithError(s, i, "❌ Managed roles (bots, integrations) cannot be used as rewards")
		return
	}
	if !b.canAssignRole(s, i.GuildID, role) {
		common.RespondWithError(s, i, "❌ That role is above my highest role, so I cannot assign it")
		return
	}
	roleID, err := common.ParseUserID(role.ID)
	if err != nil {
		log.Errorf("Failed to parse role ID %s: %v", role.ID, err)
		common.RespondWithError(s, i, "❌ Invalid role selected")
		return
	}

	if err := b.configService.SetLevelRole(ctx, guildID, level, roleID); err != nil {
		log.Errorf("Failed to set level role for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, fmt.Sprintf("❌ %v", err))
		return
	}

	message := fmt.Sprintf("✅ Members reaching level %d will receive <@&%d>", level, roleID)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to levelrole command: %v", err)
	}
}

// canAssignRole reports whether the bot's highest role sits above the given
// role. Discord rejects role grants for roles at or above the granter's own.
func (b *Bot) canAssignRole(s *discordgo.Session, guildID string, role *discordgo.Role) bool {
	botMember, err := s.GuildMember(guildID, s.State.User.ID)
	if err != nil {
		log.Errorf("Failed to get bot member in guild %s: %v", guildID, err)
		return false
	}

	highest := 0
	for _, roleID := range botMember.Roles {
		botRole, err := s.State.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if botRole.Position > highest {
			highest = botRole.Position
		}
	}

	return highest > role.Position
}

func (b *Bot) handleLevelRoleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var level int64
	for _, opt := range options {
		if opt.Name == "level" {
			level = opt.IntValue()
		}
	}

	removed, err := b.configService.RemoveLevelRole(ctx, guildID, level)
	if err != nil {
		log.Errorf("Failed to remove level role for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "❌ Failed to remove role reward")
		return
	}
	if !removed {
		common.RespondWithError(s, i, fmt.Sprintf("❌ No role reward is configured for level %d", level))
		return
	}

	message := fmt.Sprintf("✅ Removed the role reward for level %d", level)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to levelrole command: %v", err)
	}
}

func (b *Bot) handleLevelRoleList(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	ctx := context.Background()

	roles, err := b.configService.ListLevelRoles(ctx, guildID)
	if err != nil {
		log.Errorf("Failed to list level roles for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "❌ Failed to retrieve role rewards")
		return
	}

	if len(roles) == 0 {
		common.RespondWithError(s, i, "No role rewards are configured")
		return
	}

	var sb strings.Builder
	for _, role := range roles {
		sb.WriteString(fmt.Sprintf("Level %d → <@&%d>\n", role.Level, role.RoleID))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Role Rewards",
		Description: sb.String(),
		Color:       0x5865F2,
	}

	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Failed to respond to levelrole command: %v", err)
	}
}
