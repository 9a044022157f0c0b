package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// parseDate разбирает дату запроса
func parseDate(req *Request) (types.Date, error) {
	if req.Date == "" {
		return types.Date{}, &domain.SlotError{Field: "date", Reason: "date is required"}
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		return types.Date{}, &domain.SlotError{Field: "date", Reason: "date must be YYYY-MM-DD"}
	}

	return date, nil
}
