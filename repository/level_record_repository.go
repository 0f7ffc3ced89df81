package repository

import (
	"context"
	"fmt"

	"levelbot/database"
	"levelbot/models"

	"github.com/jackc/pgx/v5"
)

// LevelRecordRepository implements the LevelRecordRepository interface
type LevelRecordRepository struct {
	q queryable
}

// NewLevelRecordRepository creates a new level record repository
func NewLevelRecordRepository(db *database.DB) *LevelRecordRepository {
	return &LevelRecordRepository{q: db.Pool}
}

// newLevelRecordRepositoryWithTx creates a new level record repository with a transaction
func newLevelRecordRepositoryWithTx(tx queryable) *LevelRecordRepository {
	return &LevelRecordRepository{q: tx}
}

// GetByUser retrieves a user's level record, or nil if the user has never earned XP
func (r *LevelRecordRepository) GetByUser(ctx context.Context, guildID, userID int64) (*models.LevelRecord, error) {
	query := `
		SELECT guild_id, user_id, level, xp, total_xp, created_at, updated_at
		FROM level_records
		WHERE guild_id = $1 AND user_id = $2
	`

	var record models.LevelRecord
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(
		&record.GuildID,
		&record.UserID,
		&record.Level,
		&record.XP,
		&record.TotalXP,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level record for user %d in guild %d: %w", userID, guildID, err)
	}

	return &record, nil
}

// GetOrCreate retrieves a user's level record, creating a default one
// (level 1, xp 0, total_xp 0) if the user has none yet
func (r *LevelRecordRepository) GetOrCreate(ctx context.Context, guildID, userID int64) (*models.LevelRecord, error) {
	record, err := r.GetByUser(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	insertQuery := `
		INSERT INTO level_records (guild_id, user_id)
		VALUES ($1, $2)
		RETURNING guild_id, user_id, level, xp, total_xp, created_at, updated_at
	`

	record = &models.LevelRecord{}
	err = r.q.QueryRow(ctx, insertQuery, guildID, userID).Scan(
		&record.GuildID,
		&record.UserID,
		&record.Level,
		&record.XP,
		&record.TotalXP,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create level record for user %d in guild %d: %w", userID, guildID, err)
	}

	return record, nil
}

// Update persists a record's level, xp and total_xp
func (r *LevelRecordRepository) Update(ctx context.Context, record *models.LevelRecord) error {
	query := `
		UPDATE level_records
		SET level = $3, xp = $4, total_xp = $5, updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2
	`

	result, err := r.q.Exec(ctx, query, record.GuildID, record.UserID, record.Level, record.XP, record.TotalXP)
	if err != nil {
		return fmt.Errorf("failed to update level record for user %d in guild %d: %w", record.UserID, record.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("level record for user %d in guild %d not found", record.UserID, record.GuildID)
	}

	return nil
}

// GetLeaderboard returns the guild's users ordered by total XP descending.
// Ties are broken by ascending user ID so the order is stable across reloads.
func (r *LevelRecordRepository) GetLeaderboard(ctx context.Context, guildID int64, limit, offset int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT user_id, level, xp, total_xp
		FROM level_records
		WHERE guild_id = $1
		ORDER BY total_xp DESC, user_id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, guildID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	rank := offset
	for rows.Next() {
		var entry models.LeaderboardEntry
		err := rows.Scan(
			&entry.UserID,
			&entry.Level,
			&entry.XP,
			&entry.TotalXP,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		rank++
		entry.Rank = rank
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard entries: %w", err)
	}

	return entries, nil
}

// GetRank returns a user's 1-based leaderboard position, or 0 if the user
// has no record in the guild
func (r *LevelRecordRepository) GetRank(ctx context.Context, guildID, userID int64) (int, error) {
	query := `
		SELECT rank FROM (
			SELECT user_id, ROW_NUMBER() OVER (ORDER BY total_xp DESC, user_id ASC) AS rank
			FROM level_records
			WHERE guild_id = $1
		) ranked
		WHERE user_id = $2
	`

	var rank int
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(&rank)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get rank for user %d in guild %d: %w", userID, guildID, err)
	}

	return rank, nil
}

// Count returns the number of level records in a guild
func (r *LevelRecordRepository) Count(ctx context.Context, guildID int64) (int, error) {
	query := `
		SELECT COUNT(*) FROM level_records WHERE guild_id = $1
	`

	var count int
	if err := r.q.QueryRow(ctx, query, guildID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count level records for guild %d: %w", guildID, err)
	}

	return count, nil
}
