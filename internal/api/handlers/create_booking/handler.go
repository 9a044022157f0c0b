package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBooking     = "некорректные данные бронирования"
	msgSlotRejected       = "выбранный слот недоступен для записи"
	msgEmailRequired      = "укажите email для гостевой записи"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgInvalidBooking, fields)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity))
	if err != nil {
		var slotErr *domain.SlotError
		var fieldErr *createBooking.FieldError

		switch {
		case errors.As(err, &slotErr):
			h.logger.Warn("POST /bookings - Slot rejected: date=%s, time=%s, reason=%v", req.Date, req.Time, slotErr)
			handlers.RespondValidationError(w, msgSlotRejected, map[string]string{slotErr.Field: slotErr.Reason})

		case errors.As(err, &fieldErr):
			h.logger.Warn("POST /bookings - Invalid field: %v", fieldErr)
			handlers.RespondValidationError(w, msgInvalidBooking, map[string]string{fieldErr.Field: fieldErr.Reason})

		case errors.Is(err, createBooking.ErrEmailRequired):
			h.logger.Warn("POST /bookings - Email required for guest booking")
			handlers.RespondValidationError(w, msgEmailRequired, map[string]string{"email": "is required"})

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
