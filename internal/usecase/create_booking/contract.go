package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// PolicyProvider возвращает действующую политику слотов
type PolicyProvider interface {
	Active(ctx context.Context) (domain.SlotPolicy, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserEmailWithGracefulDegradation(ctx context.Context, userID int64) (string, error)
}

// CalendarInvalidator сбрасывает кэш календаря для месяца даты
type CalendarInvalidator interface {
	Invalidate(ctx context.Context, date types.Date)
}

// MetricsRecorder бизнес-метрики создания бронирований
type MetricsRecorder interface {
	IncBookingsCreated()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
