package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные дата или время"
	msgUnauthorized       = "требуется авторизация"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/bookings/cancel
// Отменяет все активные бронирования владельца на указанные дату и время
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /bookings/cancel - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgInvalidData, fields)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())

	result, err := h.service.CancelByIdentity(r.Context(), identity, req.ToServiceRequest())
	if err != nil {
		var slotErr *domain.SlotError

		switch {
		case errors.As(err, &slotErr):
			h.logger.Warn("POST /bookings/cancel - Invalid %s: %v", slotErr.Field, slotErr)
			handlers.RespondValidationError(w, msgInvalidData, map[string]string{slotErr.Field: slotErr.Reason})

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/cancel - No identity email")
			handlers.RespondUnauthorized(w, msgUnauthorized)

		default:
			h.logger.Error("POST /bookings/cancel - Failed to cancel bookings: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/cancel - Bookings cancelled: user_id=%d, updated=%d", identity.ID, result.Updated)
	handlers.RespondJSON(w, http.StatusOK, result)
}
