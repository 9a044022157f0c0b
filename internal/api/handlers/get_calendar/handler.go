package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/calendar"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const (
	msgInvalidParams = "некорректные параметры календаря"
)

// Handler публичные представления календаря
type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCounts GET /api/calendar?year=&month=
func (h *Handler) HandleCounts(w http.ResponseWriter, r *http.Request) {
	year, month, field := parseYearMonth(r.URL.Query())
	if field != "" {
		h.logger.Warn("GET /calendar - Invalid %s", field)
		handlers.RespondFieldError(w, field, "must be an integer")
		return
	}

	result, err := h.service.CountsForMonth(r.Context(), year, month)
	if err != nil {
		h.respondError(w, "GET /calendar", err)
		return
	}

	h.logger.Info("GET /calendar - Counts retrieved: %04d-%02d, days=%d", result.Year, result.Month, len(result.Counts))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleEvents GET /api/calendar/events?date=
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	date, err := types.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /calendar/events - Invalid date: %v", err)
		handlers.RespondFieldError(w, "date", "must be in YYYY-MM-DD format")
		return
	}

	result, err := h.service.EventsForDate(r.Context(), date)
	if err != nil {
		h.respondError(w, "GET /calendar/events", err)
		return
	}

	h.logger.Info("GET /calendar/events - Events retrieved: date=%s, count=%d", date, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleMonthly GET /api/calendar/monthly?year=&month=
func (h *Handler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	year, month, field := parseYearMonth(r.URL.Query())
	if field != "" {
		h.logger.Warn("GET /calendar/monthly - Invalid %s", field)
		handlers.RespondFieldError(w, field, "must be an integer")
		return
	}

	result, err := h.service.MonthlyEvents(r.Context(), year, month)
	if err != nil {
		h.respondError(w, "GET /calendar/monthly", err)
		return
	}

	h.logger.Info("GET /calendar/monthly - Events retrieved: count=%d", len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidMonth):
		h.logger.Warn("%s - Invalid month: %v", route, err)
		handlers.RespondValidationError(w, msgInvalidParams, map[string]string{"month": "must be between 1 and 12"})

	case errors.Is(err, calendar.ErrInvalidYear):
		h.logger.Warn("%s - Invalid year: %v", route, err)
		handlers.RespondValidationError(w, msgInvalidParams, map[string]string{"year": "must be between 1 and 9999"})

	default:
		h.logger.Error("%s - Failed to build calendar: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
