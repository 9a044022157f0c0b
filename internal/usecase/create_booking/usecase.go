package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	userClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	policy       PolicyProvider
	userClient   UserServiceClient
	calendar     CalendarInvalidator
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policy PolicyProvider,
	userClient UserServiceClient,
	calendar CalendarInvalidator,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		policy:       policy,
		userClient:   userClient,
		calendar:     calendar,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Ничего не сохраняется, если слот или поля не прошли проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s, service1=%q, authenticated=%t",
		req.Date, req.Time, req.Service1, req.Identity != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбираем дату, формат времени проверяет политика
	date, err := types.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid date=%q", req.Date)
		return nil, &domain.SlotError{Field: "date", Reason: "date must be YYYY-MM-DD"}
	}
	slotTime := types.TimeString(req.Time)

	// 3. Получаем действующую политику слотов
	policy, err := uc.policy.Active(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get slot policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot policy: %v", ErrInternal, err)
	}

	// 4. Проверяем слот
	today := types.DateOf(uc.timeProvider.Now())
	if err := policy.Validate(date, slotTime, today); err != nil {
		uc.logger.Warn("CreateBooking: slot %s %s rejected: %v", date, slotTime, err)
		return nil, err
	}

	// 5. Определяем email владельца
	email, userID, err := uc.resolveEmail(ctx, req)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 6. Формируем бронирование
	booking := &domain.Booking{
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    email,
		UserID:   userID,
		Date:     date,
		Time:     slotTime,
		Service1: strings.TrimSpace(req.Service1),
		Service2: req.Service2,
		Status:   domain.StatusPending,
	}

	booking.TotalPrice = req.TotalPrice
	if len(req.SelectedServices) > 0 {
		lines, total := servicesSummary(req.SelectedServices, req.TotalPrice)
		booking.SelectedServices = ptr.Ptr(strings.Join(lines, "\n"))
		booking.TotalPrice = total
		booking.Remarks = ptr.Ptr(buildRemarks(lines, total))
	}

	// 7. Сохраняем бронирование
	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingsCreated()
	uc.calendar.Invalidate(ctx, created.Date)

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	return &Response{
		ID:               created.ID,
		Name:             created.Name,
		Phone:            created.Phone,
		Email:            created.Email,
		UserID:           created.UserID,
		Date:             created.Date.String(),
		Time:             created.Time.String(),
		Service1:         created.Service1,
		Service2:         created.Service2,
		SelectedServices: created.SelectedServices,
		TotalPrice:       created.TotalPrice,
		Status:           string(created.Status),
		Remarks:          created.Remarks,
		CreatedAt:        created.CreatedAt,
		UpdatedAt:        created.UpdatedAt,
	}, nil
}

// resolveEmail выбирает email: из токена, затем из UserService, затем гостевой
func (uc *UseCase) resolveEmail(ctx context.Context, req *Request) (string, *int64, error) {
	var userID *int64

	if id := req.Identity; id != nil {
		userID = ptr.Ptr(id.ID)

		if id.Email != "" {
			return id.Email, userID, nil
		}

		if id.ID > 0 {
			email, err := uc.userClient.GetUserEmailWithGracefulDegradation(ctx, id.ID)
			switch {
			case err == nil:
				return email, userID, nil
			case errors.Is(err, userClient.ErrServiceDegraded):
				uc.logger.Warn("CreateBooking: user service degraded for user=%d, falling back to guest email", id.ID)
			default:
				uc.logger.Warn("CreateBooking: no email for user=%d: %v", id.ID, err)
			}
		}
	}

	if req.GuestEmail != nil {
		if email := strings.TrimSpace(*req.GuestEmail); email != "" {
			return email, userID, nil
		}
	}

	return "", nil, ErrEmailRequired
}
