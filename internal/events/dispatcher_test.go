package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher(t *testing.T) {
	ctx := context.Background()
	dispatcher := NewInMemoryDispatcher()

	var seen []Event
	dispatcher.Subscribe(EventPickupScheduled, func(_ context.Context, event Event) error {
		seen = append(seen, event)
		return nil
	})

	require.NoError(t, dispatcher.Publish(ctx, Event{Type: EventPickupScheduled, UserID: "u1"}))
	require.NoError(t, dispatcher.Publish(ctx, Event{Type: EventPickupCancelled, UserID: "u1"}))

	require.Len(t, seen, 1)
	assert.Equal(t, "u1", seen[0].UserID)
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	ctx := context.Background()
	dispatcher := NewInMemoryDispatcher()

	var called bool
	dispatcher.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(ctx, Event{Type: EventUserRegistered}))
	assert.True(t, called)
}
