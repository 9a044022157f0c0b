package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

type BookingService interface {
	CancelByIdentity(ctx context.Context, identity *domain.Identity, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
