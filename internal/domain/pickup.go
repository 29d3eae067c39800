package domain

import "time"

// DateLayout is the calendar-day format used for pickup dates and the
// availability blackout table.
const DateLayout = "2006-01-02"

// PickupStatus enumerates lifecycle states for pickup requests.
type PickupStatus string

const (
	PickupStatusScheduled  PickupStatus = "scheduled"
	PickupStatusInProgress PickupStatus = "in_progress"
	PickupStatusCancelled  PickupStatus = "cancelled"
	PickupStatusCompleted  PickupStatus = "completed"
)

// Terminal reports whether no further transition is expected from the status.
func (s PickupStatus) Terminal() bool {
	return s == PickupStatusCancelled || s == PickupStatusCompleted
}

// TimeSlot enumerates the pickup windows offered per day.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
)

// AllTimeSlots lists the canonical slots in day order.
func AllTimeSlots() []TimeSlot {
	return []TimeSlot{TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening}
}

// PickupRequest is the aggregate for scheduled waste pickups.
type PickupRequest struct {
	ID        int64        `json:"id"`
	UserID    string       `json:"user_id"`
	Address   string       `json:"address"`
	Date      string       `json:"date"`
	TimeSlot  TimeSlot     `json:"time_slot"`
	WasteType string       `json:"waste_type"`
	Notes     string       `json:"notes,omitempty"`
	Status    PickupStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
