package pickups

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/domain"
	"github.com/cleancity/pickup-service/internal/events"
	"github.com/cleancity/pickup-service/internal/pickups/mockapi"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

// Service layers business rules over the pickup backend: required fields,
// date-in-future enforcement, ownership checks and slot availability.
type Service struct {
	api        *mockapi.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ScheduleInput describes a pickup scheduling request.
type ScheduleInput struct {
	UserID    string
	Address   string
	Date      string
	TimeSlot  domain.TimeSlot
	WasteType string
	Notes     string
}

// NewService constructs the service.
func NewService(api *mockapi.Client, dispatcher events.Dispatcher, logger *zap.Logger) *Service {
	return &Service{api: api, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// Schedule validates the request and delegates creation to the backend.
// Backend errors propagate unchanged.
func (s *Service) Schedule(ctx context.Context, input ScheduleInput) (*domain.PickupRequest, error) {
	missing := missingFields(input)
	if len(missing) > 0 {
		details := map[string]any{"fields": missing}
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")), details)
	}

	pickupDate, err := time.Parse(domain.DateLayout, input.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid pickup date", map[string]any{"date": input.Date})
	}
	today := s.today()
	if pickupDate.Before(today) {
		return nil, apperrors.NewValidationError("Pickup date cannot be in the past", nil)
	}

	pickup, err := s.api.Create(ctx, mockapi.CreateInput{
		UserID:    input.UserID,
		Address:   input.Address,
		Date:      input.Date,
		TimeSlot:  input.TimeSlot,
		WasteType: input.WasteType,
		Notes:     input.Notes,
	})
	if err != nil {
		s.logger.Error("schedule pickup", zap.Error(err))
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventPickupScheduled,
		UserID: pickup.UserID,
		Payload: events.PickupScheduledPayload{
			PickupID:  pickup.ID,
			Address:   pickup.Address,
			Date:      pickup.Date,
			TimeSlot:  pickup.TimeSlot,
			WasteType: pickup.WasteType,
		},
	})
	return pickup, nil
}

// ListForUser returns all pickups owned by the user.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("User ID is required", nil)
	}
	pickups, err := s.api.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("list pickups", zap.Error(err))
		return nil, err
	}
	return pickups, nil
}

// Details returns a single pickup, enforcing ownership.
func (s *Service) Details(ctx context.Context, pickupID int64, userID string) (*domain.PickupRequest, error) {
	if pickupID == 0 || userID == "" {
		return nil, apperrors.NewValidationError("Pickup ID and User ID are required", nil)
	}
	pickup, err := s.api.GetByIDAndOwner(ctx, pickupID, userID)
	if err != nil {
		s.logger.Error("get pickup", zap.Int64("pickup_id", pickupID), zap.Error(err))
		return nil, err
	}
	return pickup, nil
}

// Cancel transitions an owned pickup to cancelled. A pickup already in a
// terminal status cannot be cancelled again; the second attempt fails with
// a conflict so the outcome is deterministic.
func (s *Service) Cancel(ctx context.Context, pickupID int64, userID string) (*domain.PickupRequest, error) {
	if pickupID == 0 || userID == "" {
		return nil, apperrors.NewValidationError("Pickup ID and User ID are required", nil)
	}

	pickup, err := s.api.GetByIDAndOwner(ctx, pickupID, userID)
	if err != nil {
		s.logger.Error("cancel pickup lookup", zap.Int64("pickup_id", pickupID), zap.Error(err))
		return nil, err
	}
	if pickup.Status.Terminal() {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("Pickup is already %s", pickup.Status),
			map[string]any{"status": pickup.Status})
	}

	oldStatus := pickup.Status
	updated, err := s.api.UpdateStatus(ctx, pickupID, domain.PickupStatusCancelled, userID)
	if err != nil {
		s.logger.Error("cancel pickup update", zap.Int64("pickup_id", pickupID), zap.Error(err))
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventPickupCancelled,
		UserID: updated.UserID,
		Payload: events.PickupCancelledPayload{
			PickupID:  updated.ID,
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Service) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func missingFields(input ScheduleInput) []string {
	var missing []string
	if input.UserID == "" {
		missing = append(missing, "userId")
	}
	if strings.TrimSpace(input.Address) == "" {
		missing = append(missing, "address")
	}
	if input.Date == "" {
		missing = append(missing, "date")
	}
	if input.TimeSlot == "" {
		missing = append(missing, "timeSlot")
	}
	if strings.TrimSpace(input.WasteType) == "" {
		missing = append(missing, "wasteType")
	}
	return missing
}
