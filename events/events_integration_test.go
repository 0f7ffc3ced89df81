package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	// Create main event bus
	mainBus := NewBus()

	// Create transactional bus that wraps the main bus
	transactionalBus := NewTransactionalBus(mainBus)

	// Set up a channel to capture received events
	eventReceived := make(chan LevelUpEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	// Subscribe to level-up events on the main bus
	mainBus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
		defer wg.Done()
		if levelUpEvent, ok := event.(LevelUpEvent); ok {
			select {
			case eventReceived <- levelUpEvent:
			case <-time.After(1 * time.Second):
				t.Error("Timeout sending event to channel")
			}
		} else {
			t.Errorf("Expected LevelUpEvent, got %T", event)
		}
	})

	// Create a test event
	testEvent := LevelUpEvent{
		GuildID:   789,
		UserID:    123456,
		Level:     5,
		ChannelID: 555,
	}

	// Publish event to transactional bus (simulating service layer)
	transactionalBus.Publish(testEvent)

	// Flush events (simulating successful transaction commit)
	ctx := context.Background()
	err := transactionalBus.Flush(ctx)
	assert.NoError(t, err)

	// Wait for event to be processed
	wg.Wait()

	// Verify the event was received
	select {
	case receivedEvent := <-eventReceived:
		assert.Equal(t, testEvent.GuildID, receivedEvent.GuildID)
		assert.Equal(t, testEvent.UserID, receivedEvent.UserID)
		assert.Equal(t, testEvent.Level, receivedEvent.Level)
		assert.Equal(t, testEvent.ChannelID, receivedEvent.ChannelID)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering multiple events in sequence
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventsReceived := make(chan LevelUpEvent, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
		defer wg.Done()
		if levelUpEvent, ok := event.(LevelUpEvent); ok {
			eventsReceived <- levelUpEvent
		}
	})

	// A single grant crossing three levels publishes one event per level
	pending := []LevelUpEvent{
		{GuildID: 100, UserID: 1, Level: 2, ChannelID: 555},
		{GuildID: 100, UserID: 1, Level: 3, ChannelID: 555},
		{GuildID: 100, UserID: 1, Level: 4, ChannelID: 555},
	}

	for _, event := range pending {
		transactionalBus.Publish(event)
	}

	// Flush all events
	ctx := context.Background()
	err := transactionalBus.Flush(ctx)
	assert.NoError(t, err)

	// Wait for all events to be processed
	wg.Wait()

	// Verify all events were received
	receivedEvents := make([]LevelUpEvent, 0, 3)
	for i := 0; i < 3; i++ {
		select {
		case event := <-eventsReceived:
			receivedEvents = append(receivedEvents, event)
		case <-time.After(2 * time.Second):
			t.Fatalf("Only received %d out of 3 events", len(receivedEvents))
		}
	}

	assert.Len(t, receivedEvents, 3)

	// Check that all levels were delivered (order may vary due to goroutines)
	levels := make(map[int64]bool)
	for _, received := range receivedEvents {
		levels[received.Level] = true
	}

	assert.True(t, levels[2])
	assert.True(t, levels[3])
	assert.True(t, levels[4])
}

// TestTransactionalBusDiscard tests that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)

	mainBus.Subscribe(EventTypeXPGranted, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	// Publish event
	testEvent := XPGrantedEvent{
		GuildID: 789,
		UserID:  123456,
		Amount:  20,
		TotalXP: 120,
	}
	transactionalBus.Publish(testEvent)

	// Discard instead of flush (simulating transaction rollback)
	transactionalBus.Discard()

	// Verify no event was received
	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
		// Expected - no event should be received
	}
}
