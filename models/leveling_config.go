package models

import (
	"time"
)

// LevelingConfig holds per-guild leveling system settings
type LevelingConfig struct {
	GuildID        int64     `db:"guild_id"`
	Enabled        bool      `db:"enabled"`
	XPMultiplier   float64   `db:"xp_multiplier"`
	LevelChannelID *int64    `db:"level_channel_id"` // nil means announce in the triggering channel
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
