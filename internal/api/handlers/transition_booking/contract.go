package transition_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type BookingService interface {
	Transition(ctx context.Context, id int64, target domain.BookingStatus) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
