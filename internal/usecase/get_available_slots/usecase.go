package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// UseCase use case для получения сетки слотов дня с занятостью
type UseCase struct {
	bookingRepo  BookingRepository
	policy       PolicyProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policy PolicyProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: date=%s", req.Date)

	// 1. Валидация входных данных
	date, err := parseDate(req)
	if err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем действующую политику слотов
	policy, err := uc.policy.Active(ctx)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get slot policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot policy: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:               date,
		GranularityMinutes: policy.GranularityMinutes,
		Slots:              []Slot{},
	}

	// 3. Закрытый день: прошедшая дата или выходной
	today := types.DateOf(uc.timeProvider.Now())
	if !policy.AcceptsDate(date, today) {
		uc.logger.Info("GetDaySlots: salon does not accept bookings on %s", date)
		return resp, nil
	}
	resp.Open = true

	// 4. Получаем количество бронирований по времени
	counts, err := uc.bookingRepo.CountsByTime(ctx, date)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to count bookings on %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 5. Накладываем занятость на сетку
	resp.Slots = buildSlots(policy.Times(), counts)

	uc.logger.Info("GetDaySlots: %d slots on %s, %d booked times", len(resp.Slots), date, len(counts))
	return resp, nil
}
