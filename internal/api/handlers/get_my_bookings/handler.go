package get_my_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
)

const (
	msgUnauthorized = "требуется авторизация"
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

// Handle GET /api/bookings/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	result, err := h.service.ListMine(r.Context(), identity)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/me - No identity email")
			handlers.RespondUnauthorized(w, msgUnauthorized)

		default:
			h.logger.Error("GET /bookings/me - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/me - Bookings retrieved successfully: user_id=%d, count=%d",
		identity.ID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
