package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	CancelByIdentity(ctx context.Context, email string, date types.Date, t types.TimeString, remarks string) (int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, remarks string) error
}

// CalendarInvalidator сбрасывает кэш календаря для месяца даты
type CalendarInvalidator interface {
	Invalidate(ctx context.Context, date types.Date)
}

// MetricsRecorder бизнес-метрики жизненного цикла
type MetricsRecorder interface {
	AddBookingsCancelled(n int64)
	IncTransition(status string)
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
