package dto

import (
	"time"

	"github.com/cleancity/pickup-service/internal/domain"
)

// SchedulePickupRequest payload.
type SchedulePickupRequest struct {
	Address   string          `json:"address"`
	Date      string          `json:"date"`
	TimeSlot  domain.TimeSlot `json:"timeSlot"`
	WasteType string          `json:"wasteType"`
	Notes     string          `json:"notes"`
}

// PickupResponse describes a stored pickup.
type PickupResponse struct {
	ID        int64               `json:"id"`
	UserID    string              `json:"user_id"`
	Address   string              `json:"address"`
	Date      string              `json:"date"`
	TimeSlot  domain.TimeSlot     `json:"time_slot"`
	WasteType string              `json:"waste_type"`
	Notes     string              `json:"notes,omitempty"`
	Status    domain.PickupStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// AvailabilityResponse lists bookable slots for a date.
type AvailabilityResponse struct {
	Date  string            `json:"date"`
	Slots []domain.TimeSlot `json:"slots"`
}
