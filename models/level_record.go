package models

import (
	"time"
)

// BaseXP is the base amount used when computing per-level XP requirements
const BaseXP = 100

// LevelRecord represents a user's leveling progress within a guild
type LevelRecord struct {
	GuildID   int64     `db:"guild_id"`
	UserID    int64     `db:"user_id"`
	Level     int64     `db:"level"`
	XP        int64     `db:"xp"`
	TotalXP   int64     `db:"total_xp"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GrantResult is the outcome of a single XP grant
type GrantResult struct {
	Level     int64
	XP        int64
	TotalXP   int64
	Gained    int64
	LeveledUp bool
}

// XPForNextLevel returns the XP required to advance from the given level,
// truncated to an integer. Thresholds grow linearly: level 1 needs 150,
// level 2 needs 300, and so on.
func XPForNextLevel(level int64) int64 {
	return int64(BaseXP * float64(level) * 1.5)
}
