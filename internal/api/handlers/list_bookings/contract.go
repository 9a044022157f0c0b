package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type BookingService interface {
	ListAll(ctx context.Context) (*models.BookingListResponse, error)
	ListToday(ctx context.Context) (*models.BookingListResponse, error)
	SearchByName(ctx context.Context, query string) (*models.BookingListResponse, error)
	ListByDate(ctx context.Context, date types.Date) (*models.BookingListResponse, error)
	ListByDateRange(ctx context.Context, start, end types.Date) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
