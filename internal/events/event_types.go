package events

import (
	"time"

	"github.com/cleancity/pickup-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventPickupScheduled  EventType = "pickup_scheduled"
	EventPickupCancelled  EventType = "pickup_cancelled"
	EventFeedbackReceived EventType = "feedback_received"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PickupScheduledPayload payload.
type PickupScheduledPayload struct {
	PickupID  int64           `json:"pickup_id"`
	Address   string          `json:"address"`
	Date      string          `json:"date"`
	TimeSlot  domain.TimeSlot `json:"time_slot"`
	WasteType string          `json:"waste_type"`
}

// PickupCancelledPayload payload.
type PickupCancelledPayload struct {
	PickupID  int64               `json:"pickup_id"`
	OldStatus domain.PickupStatus `json:"old_status"`
	NewStatus domain.PickupStatus `json:"new_status"`
}

// FeedbackReceivedPayload payload.
type FeedbackReceivedPayload struct {
	FeedbackID string `json:"feedback_id"`
	Subject    string `json:"subject"`
	Category   string `json:"category"`
}
