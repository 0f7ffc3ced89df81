package testutil

import (
	"time"

	"levelbot/models"
)

// CreateTestLevelRecord creates a test level record with default values
func CreateTestLevelRecord(guildID, userID int64) *models.LevelRecord {
	now := time.Now()
	return &models.LevelRecord{
		GuildID:   guildID,
		UserID:    userID,
		Level:     1,
		XP:        0,
		TotalXP:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestLevelRecordWithProgress creates a test level record at a specific level
func CreateTestLevelRecordWithProgress(guildID, userID, level, xp, totalXP int64) *models.LevelRecord {
	record := CreateTestLevelRecord(guildID, userID)
	record.Level = level
	record.XP = xp
	record.TotalXP = totalXP
	return record
}

// CreateTestLevelingConfig creates an enabled test config with default values
func CreateTestLevelingConfig(guildID int64) *models.LevelingConfig {
	now := time.Now()
	return &models.LevelingConfig{
		GuildID:      guildID,
		Enabled:      true,
		XPMultiplier: 1.0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateTestLevelRole creates a test level role reward
func CreateTestLevelRole(guildID, level, roleID int64) *models.LevelRole {
	return &models.LevelRole{
		GuildID:   guildID,
		Level:     level,
		RoleID:    roleID,
		CreatedAt: time.Now(),
	}
}
