package service

import (
	"context"
	"fmt"

	"levelbot/models"
)

const (
	// MinXPMultiplier and MaxXPMultiplier bound the configurable multiplier;
	// out-of-range values are clamped, not rejected
	MinXPMultiplier = 0.1
	MaxXPMultiplier = 5.0

	// MaxRewardLevel is the highest level a role reward can be attached to
	MaxRewardLevel = 100
)

// levelingConfigService implements the LevelingConfigService interface
type levelingConfigService struct {
	uowFactory UnitOfWorkFactory
}

// NewLevelingConfigService creates a new leveling config service
func NewLevelingConfigService(uowFactory UnitOfWorkFactory) LevelingConfigService {
	return &levelingConfigService{
		uowFactory: uowFactory,
	}
}

// GetOrCreateConfig retrieves a guild's leveling config or creates the default one
func (s *levelingConfigService) GetOrCreateConfig(ctx context.Context, guildID int64) (*models.LevelingConfig, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	config, err := uow.LevelingConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create leveling config: %w", err)
	}

	// Commit the transaction (in case a new config was created)
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return config, nil
}

// UpdateConfig applies the non-nil fields to a guild's config
func (s *levelingConfigService) UpdateConfig(ctx context.Context, guildID int64, enabled *bool, levelChannelID *int64, xpMultiplier *float64) (*models.LevelingConfig, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	config, err := uow.LevelingConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leveling config: %w", err)
	}

	if enabled != nil {
		config.Enabled = *enabled
	}
	if levelChannelID != nil {
		config.LevelChannelID = levelChannelID
	}
	if xpMultiplier != nil {
		multiplier := *xpMultiplier
		if multiplier < MinXPMultiplier {
			multiplier = MinXPMultiplier
		} else if multiplier > MaxXPMultiplier {
			multiplier = MaxXPMultiplier
		}
		config.XPMultiplier = multiplier
	}

	if err := uow.LevelingConfigRepository().Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to update leveling config: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return config, nil
}

// ClearLevelChannel resets the announcement channel override
func (s *levelingConfigService) ClearLevelChannel(ctx context.Context, guildID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	config, err := uow.LevelingConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get leveling config: %w", err)
	}

	config.LevelChannelID = nil
	if err := uow.LevelingConfigRepository().Update(ctx, config); err != nil {
		return fmt.Errorf("failed to update leveling config: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetLevelRole configures the role awarded at a level
func (s *levelingConfigService) SetLevelRole(ctx context.Context, guildID, level, roleID int64) error {
	if level < 1 || level > MaxRewardLevel {
		return fmt.Errorf("level must be between 1 and %d", MaxRewardLevel)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.LevelRoleRepository().Set(ctx, guildID, level, roleID); err != nil {
		return fmt.Errorf("failed to set level role: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveLevelRole removes a level's role reward
func (s *levelingConfigService) RemoveLevelRole(ctx context.Context, guildID, level int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	removed, err := uow.LevelRoleRepository().Remove(ctx, guildID, level)
	if err != nil {
		return false, fmt.Errorf("failed to remove level role: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return removed, nil
}

// GetLevelRole returns the role reward for a level, or nil
func (s *levelingConfigService) GetLevelRole(ctx context.Context, guildID, level int64) (*models.LevelRole, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	role, err := uow.LevelRoleRepository().GetByLevel(ctx, guildID, level)
	if err != nil {
		return nil, fmt.Errorf("failed to get level role: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return role, nil
}

// ListLevelRoles returns all role rewards for a guild ordered by level
func (s *levelingConfigService) ListLevelRoles(ctx context.Context, guildID int64) ([]*models.LevelRole, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	roles, err := uow.LevelRoleRepository().GetByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list level roles: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return roles, nil
}
