package repository

import (
	"context"
	"fmt"

	"levelbot/database"
	"levelbot/models"

	"github.com/jackc/pgx/v5"
)

// LevelRoleRepository implements the LevelRoleRepository interface
type LevelRoleRepository struct {
	q queryable
}

// NewLevelRoleRepository creates a new level role repository
func NewLevelRoleRepository(db *database.DB) *LevelRoleRepository {
	return &LevelRoleRepository{q: db.Pool}
}

// newLevelRoleRepositoryWithTx creates a new level role repository with a transaction
func newLevelRoleRepositoryWithTx(tx queryable) *LevelRoleRepository {
	return &LevelRoleRepository{q: tx}
}

// Set assigns the role awarded at a level, replacing any previous assignment
func (r *LevelRoleRepository) Set(ctx context.Context, guildID, level, roleID int64) error {
	query := `
		INSERT INTO level_roles (guild_id, level, role_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, level) DO UPDATE SET role_id = EXCLUDED.role_id
	`

	if _, err := r.q.Exec(ctx, query, guildID, level, roleID); err != nil {
		return fmt.Errorf("failed to set level role for level %d in guild %d: %w", level, guildID, err)
	}

	return nil
}

// Remove deletes the role reward for a level. Returns false when no reward
// was configured for that level.
func (r *LevelRoleRepository) Remove(ctx context.Context, guildID, level int64) (bool, error) {
	query := `
		DELETE FROM level_roles WHERE guild_id = $1 AND level = $2
	`

	result, err := r.q.Exec(ctx, query, guildID, level)
	if err != nil {
		return false, fmt.Errorf("failed to remove level role for level %d in guild %d: %w", level, guildID, err)
	}

	return result.RowsAffected() > 0, nil
}

// GetByLevel returns the role reward for a specific level, or nil if none is set
func (r *LevelRoleRepository) GetByLevel(ctx context.Context, guildID, level int64) (*models.LevelRole, error) {
	query := `
		SELECT guild_id, level, role_id, created_at
		FROM level_roles
		WHERE guild_id = $1 AND level = $2
	`

	var role models.LevelRole
	err := r.q.QueryRow(ctx, query, guildID, level).Scan(
		&role.GuildID,
		&role.Level,
		&role.RoleID,
		&role.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level role for level %d in guild %d: %w", level, guildID, err)
	}

	return &role, nil
}

// GetByGuild returns all role rewards for a guild ordered by level
func (r *LevelRoleRepository) GetByGuild(ctx context.Context, guildID int64) ([]*models.LevelRole, error) {
	query := `
		SELECT guild_id, level, role_id, created_at
		FROM level_roles
		WHERE guild_id = $1
		ORDER BY level ASC
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get level roles for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var roles []*models.LevelRole
	for rows.Next() {
		var role models.LevelRole
		err := rows.Scan(
			&role.GuildID,
			&role.Level,
			&role.RoleID,
			&role.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan level role: %w", err)
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate level roles: %w", err)
	}

	return roles, nil
}
