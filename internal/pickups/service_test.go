package pickups

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/domain"
	"github.com/cleancity/pickup-service/internal/events"
	"github.com/cleancity/pickup-service/internal/pickups/mockapi"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

func newTestService(t *testing.T) (*Service, *mockapi.Client) {
	t.Helper()
	client := mockapi.New(0)
	svc := NewService(client, events.NewInMemoryDispatcher(), zap.NewNop())
	// pin the clock so date comparisons are stable
	svc.now = func() time.Time {
		return time.Date(2025, time.November, 1, 12, 30, 0, 0, time.UTC)
	}
	return svc, client
}

func validInput() ScheduleInput {
	return ScheduleInput{
		UserID:    "user123",
		Address:   "123 Test St",
		Date:      "2025-12-01",
		TimeSlot:  domain.TimeSlotMorning,
		WasteType: "general",
	}
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request", func(t *testing.T) {
		svc, _ := newTestService(t)
		pickup, err := svc.Schedule(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, domain.PickupStatusScheduled, pickup.Status)
		assert.Equal(t, "user123", pickup.UserID)

		list, err := svc.ListForUser(ctx, "user123")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "123 Test St", list[0].Address)
	})

	t.Run("missing fields reported by name", func(t *testing.T) {
		svc, client := newTestService(t)
		_, err := svc.Schedule(ctx, ScheduleInput{UserID: "user123", Date: "2025-12-01"})
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Contains(t, domainErr.Message, "address")
		assert.Contains(t, domainErr.Message, "timeSlot")
		assert.Contains(t, domainErr.Message, "wasteType")
		assert.Equal(t, 0, client.Count())
	})

	t.Run("past date rejected, store unchanged", func(t *testing.T) {
		svc, client := newTestService(t)
		input := validInput()
		input.Date = "2025-10-31"
		_, err := svc.Schedule(ctx, input)
		require.Error(t, err)
		assert.Contains(t, apperrors.ToDomainError(err).Message, "past")
		assert.Equal(t, 0, client.Count())
	})

	t.Run("same-day pickup allowed", func(t *testing.T) {
		svc, _ := newTestService(t)
		input := validInput()
		input.Date = "2025-11-01"
		_, err := svc.Schedule(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("unparseable date", func(t *testing.T) {
		svc, _ := newTestService(t)
		input := validInput()
		input.Date = "not-a-date"
		_, err := svc.Schedule(ctx, input)
		require.Error(t, err)
		assert.Contains(t, apperrors.ToDomainError(err).Message, "Invalid pickup date")
	})
}

func TestDetailsRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Schedule(ctx, validInput())
	require.NoError(t, err)

	details, err := svc.Details(ctx, created.ID, "user123")
	require.NoError(t, err)
	assert.Equal(t, created, details)

	t.Run("other owner denied", func(t *testing.T) {
		_, err := svc.Details(ctx, created.ID, "intruder")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	})

	t.Run("ids required", func(t *testing.T) {
		_, err := svc.Details(ctx, 0, "user123")
		assert.Error(t, err)
		_, err = svc.Details(ctx, created.ID, "")
		assert.Error(t, err)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owned scheduled pickup", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Schedule(ctx, validInput())
		require.NoError(t, err)

		cancelled, err := svc.Cancel(ctx, created.ID, "user123")
		require.NoError(t, err)
		assert.Equal(t, domain.PickupStatusCancelled, cancelled.Status)
	})

	t.Run("double cancellation fails deterministically", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Schedule(ctx, validInput())
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, created.ID, "user123")
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, created.ID, "user123")
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Contains(t, domainErr.Message, "already cancelled")

		// status untouched by the failed attempt
		details, err := svc.Details(ctx, created.ID, "user123")
		require.NoError(t, err)
		assert.Equal(t, domain.PickupStatusCancelled, details.Status)
	})

	t.Run("not owned", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Schedule(ctx, validInput())
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, created.ID, "intruder")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	})
}

func TestAvailability(t *testing.T) {
	svc, _ := newTestService(t)

	assert.False(t, svc.IsTimeSlotAvailable("2025-11-20", domain.TimeSlotMorning))
	assert.True(t, svc.IsTimeSlotAvailable("2025-11-20", domain.TimeSlotAfternoon))
	assert.False(t, svc.IsTimeSlotAvailable("2025-11-21", domain.TimeSlotAfternoon))
	assert.True(t, svc.IsTimeSlotAvailable("2025-11-22", domain.TimeSlotMorning))

	assert.Equal(t,
		[]domain.TimeSlot{domain.TimeSlotAfternoon, domain.TimeSlotEvening},
		svc.AvailableTimeSlots("2025-11-20"))
	assert.Equal(t,
		[]domain.TimeSlot{domain.TimeSlotMorning, domain.TimeSlotAfternoon, domain.TimeSlotEvening},
		svc.AvailableTimeSlots("2025-11-22"))
}
