package models

import (
	"time"
)

// LevelRole maps a level to the role awarded when a user reaches it
type LevelRole struct {
	GuildID   int64     `db:"guild_id"`
	Level     int64     `db:"level"`
	RoleID    int64     `db:"role_id"`
	CreatedAt time.Time `db:"created_at"`
}
