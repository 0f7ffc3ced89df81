package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"levelbot/bot/common"
	"levelbot/events"
	"levelbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

type Bot struct {
	config          Config
	session         *discordgo.Session
	levelingService service.LevelingService
	configService   service.LevelingConfigService
	eventBus        *events.Bus
}

func New(config Config, levelingService service.LevelingService, configService service.LevelingConfigService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:          config,
		session:         dg,
		levelingService: levelingService,
		configService:   configService,
		eventBus:        eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Every guild message feeds the XP engine
	dg.AddHandler(bot.handleMessageCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Subscribe to level-up events for announcements, role rewards and DMs
	eventBus.Subscribe(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		if levelUp, ok := event.(events.LevelUpEvent); ok {
			bot.handleLevelUp(ctx, levelUp)
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleMessageCreate forwards guild chat messages to the leveling engine.
// Grants happen silently; level-up side effects arrive through the event bus.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore DMs
	if m.GuildID == "" {
		return
	}

	guildID, err := common.ParseUserID(m.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", m.GuildID, err)
		return
	}
	channelID, err := common.ParseUserID(m.ChannelID)
	if err != nil {
		log.Errorf("Failed to parse channel ID %s: %v", m.ChannelID, err)
		return
	}
	userID, err := common.ParseUserID(m.Author.ID)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", m.Author.ID, err)
		return
	}

	ctx := context.Background()
	if _, err := b.levelingService.HandleMessage(ctx, guildID, channelID, userID, m.Content, m.Author.Bot); err != nil {
		log.Errorf("Failed to process message XP for user %d in guild %d: %v", userID, guildID, err)
	}
}
