package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	calendar     CalendarInvalidator
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	calendar CalendarInvalidator,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		calendar:     calendar,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// ListMine возвращает все бронирования владельца, включая отменённые
func (s *Service) ListMine(ctx context.Context, identity *domain.Identity) (*models.BookingListResponse, error) {
	if identity == nil || identity.Email == "" {
		s.logger.Warn("ListMine: no identity email")
		return nil, ErrAccessDenied
	}

	s.logger.Info("ListMine: fetching bookings for user=%d", identity.ID)

	return s.list(ctx, "ListMine", domain.BookingsFilter{
		Email:            ptr.Ptr(identity.Email),
		IncludeCancelled: true,
	})
}

// CancelByIdentity отменяет активные бронирования владельца на указанный слот.
// Совпадений может быть несколько или ни одного
func (s *Service) CancelByIdentity(ctx context.Context, identity *domain.Identity, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	if identity == nil || identity.Email == "" {
		s.logger.Warn("CancelByIdentity: no identity email")
		return nil, ErrAccessDenied
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("CancelByIdentity: invalid date=%q: %v", req.Date, err)
		return nil, &domain.SlotError{Field: "date", Reason: "must be in YYYY-MM-DD format"}
	}
	t, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		s.logger.Warn("CancelByIdentity: invalid time=%q: %v", req.Time, err)
		return nil, &domain.SlotError{Field: "time", Reason: "must be in HH:MM format"}
	}

	remarks := domain.DefaultCancelNotes
	if req.Remarks != nil && strings.TrimSpace(*req.Remarks) != "" {
		remarks = strings.TrimSpace(*req.Remarks)
	}

	s.logger.Info("CancelByIdentity: cancelling bookings of user=%d at %s %s", identity.ID, date, t)

	updated, err := s.bookingRepo.CancelByIdentity(ctx, identity.Email, date, t, remarks)
	if err != nil {
		s.logger.Error("CancelByIdentity: repository error for user=%d: %v", identity.ID, err)
		return nil, fmt.Errorf("%w: CancelByIdentity - repository error: %v", ErrInternal, err)
	}

	if updated > 0 {
		s.metrics.AddBookingsCancelled(updated)
		s.calendar.Invalidate(ctx, date)
	}

	s.logger.Info("CancelByIdentity: cancelled %d bookings of user=%d", updated, identity.ID)
	return &models.CancelBookingResponse{Updated: updated}, nil
}

// Transition переводит бронирование в целевой статус.
// Повторный перевод в текущий статус завершается успешно без записи
func (s *Service) Transition(ctx context.Context, id int64, target domain.BookingStatus) error {
	s.logger.Info("Transition: moving booking id=%d to status=%s", id, target)

	booking, err := s.load(ctx, "Transition", id)
	if err != nil {
		return err
	}

	if booking.Status == target {
		s.logger.Info("Transition: booking id=%d already has status=%s", id, target)
		return nil
	}

	if !booking.Status.CanTransitionTo(target) {
		s.logger.Warn("Transition: booking id=%d cannot move from %s to %s", id, booking.Status, target)
		return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, booking.Status, target)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, target, target.RemarksLabel()); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Transition: booking id=%d changed status concurrently, expected %s", id, booking.Status)
			return fmt.Errorf("%w: booking left status %s before update", ErrInvalidTransition, booking.Status)
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Transition: booking id=%d not found during update", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Transition: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncTransition(string(target))
	s.calendar.Invalidate(ctx, booking.Date)

	s.logger.Info("Transition: booking id=%d moved from %s to %s", id, booking.Status, target)
	return nil
}

// SearchByName ищет активные бронирования по подстроке имени без учёта регистра
func (s *Service) SearchByName(ctx context.Context, query string) (*models.BookingListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" || utf8.RuneCountInString(query) > domain.MaxSearchQueryLen {
		s.logger.Warn("SearchByName: invalid query length=%d", utf8.RuneCountInString(query))
		return nil, fmt.Errorf("%w: query must be 1..%d characters", ErrInvalidInput, domain.MaxSearchQueryLen)
	}

	s.logger.Info("SearchByName: query=%q", query)

	return s.list(ctx, "SearchByName", domain.BookingsFilter{NameQuery: &query})
}

// ListToday возвращает активные бронирования на сегодня
func (s *Service) ListToday(ctx context.Context) (*models.BookingListResponse, error) {
	today := types.DateOf(s.timeProvider.Now())
	s.logger.Info("ListToday: date=%s", today)

	return s.list(ctx, "ListToday", domain.BookingsFilter{StartDate: &today, EndDate: &today})
}

// ListByDate возвращает активные бронирования на дату
func (s *Service) ListByDate(ctx context.Context, date types.Date) (*models.BookingListResponse, error) {
	s.logger.Info("ListByDate: date=%s", date)

	return s.list(ctx, "ListByDate", domain.BookingsFilter{StartDate: &date, EndDate: &date})
}

// ListByDateRange возвращает активные бронирования за период включительно
func (s *Service) ListByDateRange(ctx context.Context, start, end types.Date) (*models.BookingListResponse, error) {
	if start.After(end) {
		s.logger.Warn("ListByDateRange: start=%s is after end=%s", start, end)
		return nil, ErrInvalidRange
	}

	s.logger.Info("ListByDateRange: period=%s to %s", start, end)

	return s.list(ctx, "ListByDateRange", domain.BookingsFilter{StartDate: &start, EndDate: &end})
}

// ListAll возвращает все бронирования, включая отменённые
func (s *Service) ListAll(ctx context.Context) (*models.BookingListResponse, error) {
	s.logger.Info("ListAll: fetching all bookings")

	return s.list(ctx, "ListAll", domain.BookingsFilter{IncludeCancelled: true})
}

// Вспомогательные методы

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.BookingsFilter) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully fetched %d bookings", op, len(bookings))
	return models.FromDomainBookingList(bookings), nil
}
