package service

import (
	"sync"
	"time"
)

type cooldownKey struct {
	guildID int64
	userID  int64
}

// CooldownTracker throttles XP-earning actions to one per user per window.
// State is process-memory only; a restart resets every user to eligible.
type CooldownTracker struct {
	mu     sync.Mutex
	window time.Duration
	stamps map[cooldownKey]time.Time
}

// NewCooldownTracker creates a tracker with the given throttle window
func NewCooldownTracker(window time.Duration) *CooldownTracker {
	return &CooldownTracker{
		window: window,
		stamps: make(map[cooldownKey]time.Time),
	}
}

// IsEligible reports whether the user may earn XP: true when no timestamp is
// recorded, or when at least the full window has passed since the last one
func (c *CooldownTracker) IsEligible(guildID, userID int64, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.stamps[cooldownKey{guildID, userID}]
	if !ok {
		return true
	}
	return now.Sub(last) >= c.window
}

// Record unconditionally overwrites the user's last-action timestamp
func (c *CooldownTracker) Record(guildID, userID int64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stamps[cooldownKey{guildID, userID}] = now
}

// Reset clears all recorded timestamps
func (c *CooldownTracker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stamps = make(map[cooldownKey]time.Time)
}
