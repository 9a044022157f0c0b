package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// buildSlots накладывает счётчики бронирований на сетку слотов.
// Бронирования вне сетки (например, 00:00) в выдачу не попадают
func buildSlots(times []types.TimeString, counts []domain.TimeCount) []Slot {
	booked := make(map[types.TimeString]int, len(counts))
	for _, c := range counts {
		booked[c.Time] += c.Count
	}

	result := make([]Slot, len(times))
	for i, t := range times {
		result[i] = Slot{
			Time:   t,
			Booked: booked[t],
		}
	}

	return result
}
