package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
	"unicode/utf8"

	"levelbot/events"
	"levelbot/metrics"
	"levelbot/models"
)

const (
	// XPPerMessage is the base XP awarded for a qualifying chat message
	XPPerMessage = 15

	// RandomXPRange is the upper bound of the random per-message bonus,
	// inclusive: messages earn XPPerMessage + [0, RandomXPRange]
	RandomXPRange = 10

	// MinMessageLength is the minimum message length (in runes) that earns XP
	MinMessageLength = 5

	// XPCooldown is the minimum time between XP-earning messages per user
	XPCooldown = 60 * time.Second

	// MaxXPGrant is the ceiling for a single admin-issued grant, enforced by
	// the command layer rather than the engine
	MaxXPGrant = 10000
)

// levelingService implements the LevelingService interface
type levelingService struct {
	uowFactory UnitOfWorkFactory
	cooldowns  *CooldownTracker

	// grant serializes the whole load-mutate-save sequence; two concurrent
	// grants for the same guild would otherwise race on the record row
	grantMu sync.Mutex

	now     func() time.Time
	randInt func(n int) int
}

// NewLevelingService creates a new leveling service
func NewLevelingService(uowFactory UnitOfWorkFactory, cooldowns *CooldownTracker) LevelingService {
	return &levelingService{
		uowFactory: uowFactory,
		cooldowns:  cooldowns,
		now:        time.Now,
		randInt:    rand.Intn,
	}
}

// GrantXP awards a raw XP amount to a user. Admin grants go through here and
// are not gated by the guild's enabled flag.
func (s *levelingService) GrantXP(ctx context.Context, guildID, userID, sourceChannelID, amount int64) (*models.GrantResult, error) {
	return s.grant(ctx, guildID, userID, sourceChannelID, amount, false, "admin")
}

// HandleMessage runs the message-driven grant path
func (s *levelingService) HandleMessage(ctx context.Context, guildID, channelID, userID int64, content string, isBot bool) (*models.GrantResult, error) {
	if isBot || utf8.RuneCountInString(content) < MinMessageLength {
		return nil, nil
	}

	now := s.now()
	if !s.cooldowns.IsEligible(guildID, userID, now) {
		metrics.MessagesThrottled.Inc()
		return nil, nil
	}
	// The stamp is written before the enabled check, so a disabled guild
	// still consumes the cooldown slot
	s.cooldowns.Record(guildID, userID, now)

	amount := int64(XPPerMessage + s.randInt(RandomXPRange+1))
	return s.grant(ctx, guildID, userID, channelID, amount, true, "message")
}

// grant applies a single XP grant inside one transaction: load or create the
// record, apply the floored multiplier once, run the level-up loop to
// convergence, persist, and publish one LevelUpEvent per level crossed.
func (s *levelingService) grant(ctx context.Context, guildID, userID, sourceChannelID, amount int64, requireEnabled bool, source string) (*models.GrantResult, error) {
	s.grantMu.Lock()
	defer s.grantMu.Unlock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	config, err := uow.LevelingConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leveling config: %w", err)
	}

	if requireEnabled && !config.Enabled {
		// Commit anyway so a freshly created default config row sticks
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil, nil
	}

	record, err := uow.LevelRecordRepository().GetOrCreate(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get level record: %w", err)
	}

	// The multiplier is applied and floored once per grant; repeated small
	// grants lose fractional XP
	gained := int64(float64(amount) * config.XPMultiplier)

	record.XP += gained
	record.TotalXP += gained

	oldLevel := record.Level
	for record.XP >= models.XPForNextLevel(record.Level) {
		record.XP -= models.XPForNextLevel(record.Level)
		record.Level++
	}

	if err := uow.LevelRecordRepository().Update(ctx, record); err != nil {
		metrics.GrantFailures.Inc()
		return nil, fmt.Errorf("failed to update level record: %w", err)
	}

	announceChannelID := sourceChannelID
	if config.LevelChannelID != nil {
		announceChannelID = *config.LevelChannelID
	}

	uow.EventBus().Publish(events.XPGrantedEvent{
		GuildID: guildID,
		UserID:  userID,
		Amount:  gained,
		TotalXP: record.TotalXP,
	})
	for level := oldLevel + 1; level <= record.Level; level++ {
		uow.EventBus().Publish(events.LevelUpEvent{
			GuildID:   guildID,
			UserID:    userID,
			Level:     level,
			ChannelID: announceChannelID,
		})
	}

	if err := uow.Commit(); err != nil {
		metrics.GrantFailures.Inc()
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.XPGrants.WithLabelValues(source).Inc()
	metrics.XPGranted.Add(float64(gained))
	metrics.LevelUps.Add(float64(record.Level - oldLevel))

	return &models.GrantResult{
		Level:     record.Level,
		XP:        record.XP,
		TotalXP:   record.TotalXP,
		Gained:    gained,
		LeveledUp: record.Level > oldLevel,
	}, nil
}

// GetUserRecord returns a user's level record, or nil if they have no XP yet
func (s *levelingService) GetUserRecord(ctx context.Context, guildID, userID int64) (*models.LevelRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	record, err := uow.LevelRecordRepository().GetByUser(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get level record: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return record, nil
}

// GetLeaderboard returns a page of the guild leaderboard plus the total record count
func (s *levelingService) GetLeaderboard(ctx context.Context, guildID int64, limit, offset int) ([]*models.LeaderboardEntry, int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.LevelRecordRepository().GetLeaderboard(ctx, guildID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	total, err := uow.LevelRecordRepository().Count(ctx, guildID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count level records: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entries, total, nil
}

// GetUserRank returns a user's 1-based rank, or 0 if they have no record
func (s *levelingService) GetUserRank(ctx context.Context, guildID, userID int64) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rank, err := uow.LevelRecordRepository().GetRank(ctx, guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get rank: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rank, nil
}
