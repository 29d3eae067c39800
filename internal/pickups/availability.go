package pickups

import "github.com/cleancity/pickup-service/internal/domain"

// blackoutTable lists slots that cannot be booked on specific dates. Fixed
// data; a real deployment would source this from the backend.
var blackoutTable = map[string][]domain.TimeSlot{
	"2025-11-20": {domain.TimeSlotMorning},
	"2025-11-21": {domain.TimeSlotAfternoon},
}

// IsTimeSlotAvailable reports whether the slot can be booked on the date.
func (s *Service) IsTimeSlotAvailable(date string, slot domain.TimeSlot) bool {
	for _, blocked := range blackoutTable[date] {
		if blocked == slot {
			return false
		}
	}
	return true
}

// AvailableTimeSlots returns the canonical slots still bookable on the date.
func (s *Service) AvailableTimeSlots(date string) []domain.TimeSlot {
	available := make([]domain.TimeSlot, 0, 3)
	for _, slot := range domain.AllTimeSlots() {
		if s.IsTimeSlotAvailable(date, slot) {
			available = append(available, slot)
		}
	}
	return available
}
