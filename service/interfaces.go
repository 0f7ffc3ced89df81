package service

import (
	"context"

	"levelbot/events"
	"levelbot/models"
)

// LevelRecordRepository defines the interface for level record data access
type LevelRecordRepository interface {
	// GetByUser retrieves a user's level record, or nil if the user has never earned XP
	GetByUser(ctx context.Context, guildID, userID int64) (*models.LevelRecord, error)

	// GetOrCreate retrieves a user's level record, creating a default one if absent
	GetOrCreate(ctx context.Context, guildID, userID int64) (*models.LevelRecord, error)

	// Update persists a record's level, xp and total_xp
	Update(ctx context.Context, record *models.LevelRecord) error

	// GetLeaderboard returns users ordered by total XP descending, ties by ascending user ID
	GetLeaderboard(ctx context.Context, guildID int64, limit, offset int) ([]*models.LeaderboardEntry, error)

	// GetRank returns a user's 1-based leaderboard position, or 0 if absent
	GetRank(ctx context.Context, guildID, userID int64) (int, error)

	// Count returns the number of level records in a guild
	Count(ctx context.Context, guildID int64) (int, error)
}

// LevelingConfigRepository defines the interface for leveling config data access
type LevelingConfigRepository interface {
	// GetOrCreate retrieves a guild's leveling config or creates the default one
	GetOrCreate(ctx context.Context, guildID int64) (*models.LevelingConfig, error)

	// Update updates a guild's leveling config
	Update(ctx context.Context, config *models.LevelingConfig) error
}

// LevelRoleRepository defines the interface for level role data access
type LevelRoleRepository interface {
	// Set assigns the role awarded at a level, replacing any previous assignment
	Set(ctx context.Context, guildID, level, roleID int64) error

	// Remove deletes the role reward for a level; false when none was configured
	Remove(ctx context.Context, guildID, level int64) (bool, error)

	// GetByLevel returns the role reward for a specific level, or nil
	GetByLevel(ctx context.Context, guildID, level int64) (*models.LevelRole, error)

	// GetByGuild returns all role rewards for a guild ordered by level
	GetByGuild(ctx context.Context, guildID int64) ([]*models.LevelRole, error)
}

// LevelingService defines the interface for XP and leveling operations
type LevelingService interface {
	// GrantXP awards a raw XP amount to a user, applying the guild multiplier
	// and running level-ups to convergence. Callers validate that the amount
	// is positive; the engine accepts any non-negative value.
	GrantXP(ctx context.Context, guildID, userID, sourceChannelID, amount int64) (*models.GrantResult, error)

	// HandleMessage runs the message-driven grant path: bot and short messages
	// are ignored, the per-user cooldown is enforced, and a randomized
	// 15-25 XP amount is granted when the guild has leveling enabled.
	// Returns (nil, nil) when no XP was awarded.
	HandleMessage(ctx context.Context, guildID, channelID, userID int64, content string, isBot bool) (*models.GrantResult, error)

	// GetUserRecord returns a user's level record, or nil if they have no XP yet
	GetUserRecord(ctx context.Context, guildID, userID int64) (*models.LevelRecord, error)

	// GetLeaderboard returns a page of the guild leaderboard plus the total record count
	GetLeaderboard(ctx context.Context, guildID int64, limit, offset int) ([]*models.LeaderboardEntry, int, error)

	// GetUserRank returns a user's 1-based rank, or 0 if they have no record
	GetUserRank(ctx context.Context, guildID, userID int64) (int, error)
}

// LevelingConfigService defines the interface for leveling configuration operations
type LevelingConfigService interface {
	// GetOrCreateConfig retrieves a guild's leveling config or creates the default one
	GetOrCreateConfig(ctx context.Context, guildID int64) (*models.LevelingConfig, error)

	// UpdateConfig applies the non-nil fields to a guild's config. The
	// multiplier is clamped to [0.1, 5.0].
	UpdateConfig(ctx context.Context, guildID int64, enabled *bool, levelChannelID *int64, xpMultiplier *float64) (*models.LevelingConfig, error)

	// ClearLevelChannel resets the announcement channel so level-ups are
	// announced in the channel where they happened
	ClearLevelChannel(ctx context.Context, guildID int64) error

	// SetLevelRole configures the role awarded at a level (level must be in [1, 100])
	SetLevelRole(ctx context.Context, guildID, level, roleID int64) error

	// RemoveLevelRole removes a level's role reward; false when none was configured
	RemoveLevelRole(ctx context.Context, guildID, level int64) (bool, error)

	// GetLevelRole returns the role reward for a level, or nil
	GetLevelRole(ctx context.Context, guildID, level int64) (*models.LevelRole, error)

	// ListLevelRoles returns all role rewards for a guild ordered by level
	ListLevelRoles(ctx context.Context, guildID int64) ([]*models.LevelRole, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	LevelRecordRepository() LevelRecordRepository
	LevelingConfigRepository() LevelingConfigRepository
	LevelRoleRepository() LevelRoleRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
