package list_bookings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidRange  = "начало периода позже конца"
)

// Handler админские выборки бронирований
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

// HandleAll GET /api/bookings
func (h *Handler) HandleAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAll(r.Context())
	h.respond(w, "GET /bookings", result, err)
}

// HandleToday GET /api/bookings/today
func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListToday(r.Context())
	h.respond(w, "GET /bookings/today", result, err)
}

// HandleSearch GET /api/bookings/search?q=
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := SearchQuery{Q: strings.TrimSpace(r.URL.Query().Get("q"))}
	if fields := handlers.Validate(&query); fields != nil {
		h.logger.Warn("GET /bookings/search - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgInvalidParams, fields)
		return
	}

	result, err := h.service.SearchByName(r.Context(), query.Q)
	h.respond(w, "GET /bookings/search", result, err)
}

// HandleByDate GET /api/bookings/date/{date}
func (h *Handler) HandleByDate(w http.ResponseWriter, r *http.Request) {
	date, err := types.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /bookings/date/{date} - Invalid date: %v", err)
		handlers.RespondFieldError(w, "date", "must be in YYYY-MM-DD format")
		return
	}

	result, err := h.service.ListByDate(r.Context(), date)
	h.respond(w, "GET /bookings/date/{date}", result, err)
}

// HandleRange GET /api/bookings/range?start=&end=
func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	query := RangeQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
	if fields := handlers.Validate(&query); fields != nil {
		h.logger.Warn("GET /bookings/range - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgInvalidParams, fields)
		return
	}

	// Формат уже проверен валидатором
	start, _ := types.ParseDate(query.Start)
	end, _ := types.ParseDate(query.End)

	result, err := h.service.ListByDateRange(r.Context(), start, end)
	h.respond(w, "GET /bookings/range", result, err)
}

func (h *Handler) respond(w http.ResponseWriter, route string, result *models.BookingListResponse, err error) {
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidRange):
			h.logger.Warn("%s - Invalid range: %v", route, err)
			handlers.RespondValidationError(w, msgInvalidRange, map[string]string{"start": "must not be after end"})

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("%s - Failed to get bookings: error=%v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Bookings retrieved successfully: count=%d", route, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
