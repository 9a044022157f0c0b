package get_day_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getDaySlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate = "некорректная дата"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/calendar/slots?date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), &getDaySlots.Request{Date: date})
	if err != nil {
		var slotErr *domain.SlotError

		switch {
		case errors.As(err, &slotErr):
			h.logger.Warn("GET /calendar/slots - Invalid date: %q", date)
			handlers.RespondValidationError(w, msgInvalidDate, map[string]string{slotErr.Field: slotErr.Reason})

		default:
			h.logger.Error("GET /calendar/slots - Failed to get slots: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar/slots - Slots retrieved successfully: date=%s, open=%t, count=%d",
		date, result.Open, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
