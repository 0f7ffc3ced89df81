package models

// LeaderboardEntry represents a user's entry in the level leaderboard
type LeaderboardEntry struct {
	Rank    int
	UserID  int64
	Level   int64
	XP      int64
	TotalXP int64
}
