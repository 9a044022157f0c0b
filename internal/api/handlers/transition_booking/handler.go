package transition_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgBookingNotFound   = "бронирование не найдено"
	msgInvalidTransition = "недопустимая смена статуса"
	msgUpdated           = "updated"
)

// Handler переводит бронирование в фиксированный целевой статус
type Handler struct {
	service BookingService
	target  domain.BookingStatus
	logger  Logger
}

func NewHandler(service BookingService, target domain.BookingStatus, logger Logger) *Handler {
	return &Handler{
		service: service,
		target:  target,
		logger:  logger,
	}
}

// Handle POST /api/bookings/{bookingId}/done|confirm|cancel|reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/%s - Invalid booking ID: %q", h.target, mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Transition(r.Context(), bookingID, h.target); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/%s - Booking not found: booking_id=%d", h.target, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/%s - Invalid transition: booking_id=%d, error=%v", h.target, bookingID, err)
			handlers.RespondValidationError(w, msgInvalidTransition, map[string]string{"status": err.Error()})

		default:
			h.logger.Error("POST /bookings/{id}/%s - Failed to update booking: booking_id=%d, error=%v",
				h.target, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/%s - Booking updated: booking_id=%d", h.target, bookingID)
	handlers.RespondMessage(w, msgUpdated)
}
