package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	CountsByDate(ctx context.Context, start, end types.Date) ([]domain.DayCount, error)
}

// CountsCache кэш помесячных счётчиков.
// SetCounts пишет, только если поколение месяца не менялось с вызова Generation
type CountsCache interface {
	GetCounts(ctx context.Context, year int, month time.Month) ([]domain.DayCount, bool)
	Generation(ctx context.Context, year int, month time.Month) int64
	SetCounts(ctx context.Context, year int, month time.Month, gen int64, counts []domain.DayCount)
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
