package get_calendar

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/calendar/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type CalendarService interface {
	CountsForMonth(ctx context.Context, year, month *int) (*models.MonthCountsResponse, error)
	EventsForDate(ctx context.Context, date types.Date) (*models.EventListResponse, error)
	MonthlyEvents(ctx context.Context, year, month *int) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
