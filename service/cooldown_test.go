package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownTracker_FirstActionEligible(t *testing.T) {
	tracker := NewCooldownTracker(time.Minute)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, tracker.IsEligible(1, 100, now))
}

func TestCooldownTracker_WindowBoundary(t *testing.T) {
	tracker := NewCooldownTracker(time.Minute)
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tracker.Record(1, 100, start)

	assert.False(t, tracker.IsEligible(1, 100, start.Add(59*time.Second)))
	// Exactly the full window counts as eligible
	assert.True(t, tracker.IsEligible(1, 100, start.Add(60*time.Second)))
	assert.True(t, tracker.IsEligible(1, 100, start.Add(61*time.Second)))
}

func TestCooldownTracker_PerUserPerGuild(t *testing.T) {
	tracker := NewCooldownTracker(time.Minute)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tracker.Record(1, 100, now)

	// Different user, same guild
	assert.True(t, tracker.IsEligible(1, 200, now))
	// Same user, different guild
	assert.True(t, tracker.IsEligible(2, 100, now))
	assert.False(t, tracker.IsEligible(1, 100, now))
}

func TestCooldownTracker_RecordOverwrites(t *testing.T) {
	tracker := NewCooldownTracker(time.Minute)
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tracker.Record(1, 100, start)
	tracker.Record(1, 100, start.Add(30*time.Second))

	// The window restarts from the newest stamp
	assert.False(t, tracker.IsEligible(1, 100, start.Add(60*time.Second)))
	assert.True(t, tracker.IsEligible(1, 100, start.Add(90*time.Second)))
}

func TestCooldownTracker_Reset(t *testing.T) {
	tracker := NewCooldownTracker(time.Minute)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tracker.Record(1, 100, now)
	tracker.Reset()

	assert.True(t, tracker.IsEligible(1, 100, now))
}
