package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/config"
	"github.com/cleancity/pickup-service/internal/events"
	"github.com/cleancity/pickup-service/internal/notify"
)

func TestNotificationWorker(t *testing.T) {
	ctx := context.Background()
	center := notify.NewCenter(zap.NewNop(), nil)
	defer center.Close()

	dispatcher := events.NewInMemoryDispatcher()
	StartNotificationWorker(NewNotificationWorker(center, zap.NewNop(), config.NotificationConfig{}), dispatcher)

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:    events.EventPickupScheduled,
		Payload: events.PickupScheduledPayload{PickupID: 1, Date: "2025-12-01", TimeSlot: "morning"},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:    events.EventPickupCancelled,
		Payload: events.PickupCancelledPayload{PickupID: 1},
	}))

	active := center.Active()
	require.Len(t, active, 2)
	messages := map[string]bool{}
	for _, n := range active {
		messages[n.Message] = true
	}
	assert.Contains(t, messages, "Pickup scheduled for 2025-12-01 (morning)")
	assert.Contains(t, messages, "Pickup #1 cancelled")
}

func TestWorkerIgnoresMalformedPayloads(t *testing.T) {
	ctx := context.Background()
	center := notify.NewCenter(zap.NewNop(), nil)
	defer center.Close()

	dispatcher := events.NewInMemoryDispatcher()
	StartNotificationWorker(NewNotificationWorker(center, zap.NewNop(), config.NotificationConfig{}), dispatcher)

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:    events.EventPickupScheduled,
		Payload: "not a payload",
	}))
	assert.Empty(t, center.Active())
}
