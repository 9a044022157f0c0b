package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/calendar/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const (
	minYear = 1
	maxYear = 9999
)

// Service агрегирует бронирования в календарные представления
type Service struct {
	bookingRepo  BookingRepository
	cache        CountsCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(bookingRepo BookingRepository, cache CountsCache, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CountsForMonth возвращает количество неотменённых бронирований по дням месяца.
// Без year/month используется текущий месяц
func (s *Service) CountsForMonth(ctx context.Context, year, month *int) (*models.MonthCountsResponse, error) {
	y, m, err := s.resolveMonth(year, month)
	if err != nil {
		s.logger.Warn("CountsForMonth: %v", err)
		return nil, err
	}

	s.logger.Info("CountsForMonth: year=%d, month=%d", y, m)

	if counts, ok := s.cache.GetCounts(ctx, y, m); ok {
		s.logger.Info("CountsForMonth: cache hit for %04d-%02d", y, int(m))
		return models.FromDomainCounts(y, int(m), counts), nil
	}

	gen := s.cache.Generation(ctx, y, m)

	first, last := types.MonthBounds(y, m)
	counts, err := s.bookingRepo.CountsByDate(ctx, first, last)
	if err != nil {
		s.logger.Error("CountsForMonth: repository error for %04d-%02d: %v", y, int(m), err)
		return nil, fmt.Errorf("%w: CountsForMonth - repository error: %v", ErrInternal, err)
	}

	s.cache.SetCounts(ctx, y, m, gen, counts)

	s.logger.Info("CountsForMonth: %d days with bookings in %04d-%02d", len(counts), y, int(m))
	return models.FromDomainCounts(y, int(m), counts), nil
}

// EventsForDate возвращает неотменённые бронирования даты, по возрастанию времени
func (s *Service) EventsForDate(ctx context.Context, date types.Date) (*models.EventListResponse, error) {
	s.logger.Info("EventsForDate: date=%s", date)

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{StartDate: &date, EndDate: &date})
	if err != nil {
		s.logger.Error("EventsForDate: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: EventsForDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EventsForDate: %d events on %s", len(bookings), date)
	return models.FromDomainEvents(bookings, false), nil
}

// MonthlyEvents возвращает неотменённые бронирования месяца с датой, по (дата, время)
func (s *Service) MonthlyEvents(ctx context.Context, year, month *int) (*models.EventListResponse, error) {
	y, m, err := s.resolveMonth(year, month)
	if err != nil {
		s.logger.Warn("MonthlyEvents: %v", err)
		return nil, err
	}

	s.logger.Info("MonthlyEvents: year=%d, month=%d", y, m)

	first, last := types.MonthBounds(y, m)
	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{StartDate: &first, EndDate: &last})
	if err != nil {
		s.logger.Error("MonthlyEvents: repository error for %04d-%02d: %v", y, int(m), err)
		return nil, fmt.Errorf("%w: MonthlyEvents - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MonthlyEvents: %d events in %04d-%02d", len(bookings), y, int(m))
	return models.FromDomainEvents(bookings, true), nil
}

// resolveMonth подставляет текущие год и месяц и проверяет диапазоны
func (s *Service) resolveMonth(year, month *int) (int, time.Month, error) {
	now := s.timeProvider.Now()
	y, m := now.Year(), now.Month()

	if year != nil {
		if *year < minYear || *year > maxYear {
			return 0, 0, fmt.Errorf("%w: %d", ErrInvalidYear, *year)
		}
		y = *year
	}
	if month != nil {
		if *month < 1 || *month > 12 {
			return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidMonth, *month)
		}
		m = time.Month(*month)
	}

	return y, m, nil
}
