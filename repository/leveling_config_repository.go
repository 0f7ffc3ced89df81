package repository

import (
	"context"
	"fmt"

	"levelbot/database"
	"levelbot/models"

	"github.com/jackc/pgx/v5"
)

// LevelingConfigRepository implements the LevelingConfigRepository interface
type LevelingConfigRepository struct {
	q queryable
}

// NewLevelingConfigRepository creates a new leveling config repository
func NewLevelingConfigRepository(db *database.DB) *LevelingConfigRepository {
	return &LevelingConfigRepository{q: db.Pool}
}

// newLevelingConfigRepositoryWithTx creates a new leveling config repository with a transaction
func newLevelingConfigRepositoryWithTx(tx queryable) *LevelingConfigRepository {
	return &LevelingConfigRepository{q: tx}
}

// GetOrCreate retrieves a guild's leveling config or creates the default one
// (disabled, multiplier 1.0, no level channel) if not found
func (r *LevelingConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.LevelingConfig, error) {
	query := `
		SELECT guild_id, enabled, xp_multiplier, level_channel_id, created_at, updated_at
		FROM leveling_configs
		WHERE guild_id = $1
	`

	var config models.LevelingConfig
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&config.GuildID,
		&config.Enabled,
		&config.XPMultiplier,
		&config.LevelChannelID,
		&config.CreatedAt,
		&config.UpdatedAt,
	)

	if err == nil {
		return &config, nil
	}

	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get leveling config for guild %d: %w", guildID, err)
	}

	// If not found, create default config
	insertQuery := `
		INSERT INTO leveling_configs (guild_id)
		VALUES ($1)
		RETURNING guild_id, enabled, xp_multiplier, level_channel_id, created_at, updated_at
	`

	err = r.q.QueryRow(ctx, insertQuery, guildID).Scan(
		&config.GuildID,
		&config.Enabled,
		&config.XPMultiplier,
		&config.LevelChannelID,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create leveling config for guild %d: %w", guildID, err)
	}

	return &config, nil
}

// Update updates a guild's leveling config
func (r *LevelingConfigRepository) Update(ctx context.Context, config *models.LevelingConfig) error {
	query := `
		UPDATE leveling_configs
		SET enabled = $2,
		    xp_multiplier = $3,
		    level_channel_id = $4,
		    updated_at = NOW()
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query, config.GuildID, config.Enabled, config.XPMultiplier, config.LevelChannelID)
	if err != nil {
		return fmt.Errorf("failed to update leveling config for guild %d: %w", config.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("leveling config for guild %d not found", config.GuildID)
	}

	return nil
}
