package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// TodayBookingsJobName имя задачи в логах
const TodayBookingsJobName = "today_bookings"

const todayBookingsTimeout = 30 * time.Second

// TodayBookingsJob пересчитывает число неотменённых бронирований на сегодня
type TodayBookingsJob struct {
	repo         BookingRepository
	gauge        TodayGauge
	timeProvider TimeProvider
	logger       Logger
}

func NewTodayBookingsJob(repo BookingRepository, gauge TodayGauge, logger Logger) *TodayBookingsJob {
	return &TodayBookingsJob{
		repo:         repo,
		gauge:        gauge,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run реализует cron.Job
func (j *TodayBookingsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), todayBookingsTimeout)
	defer cancel()

	if _, err := j.Refresh(ctx); err != nil {
		j.logger.Error("Job %s failed: %v", TodayBookingsJobName, err)
	}
}

// Refresh считает бронирования и обновляет метрику
func (j *TodayBookingsJob) Refresh(ctx context.Context) (int, error) {
	today := types.DateOf(j.timeProvider.Now())

	bookings, err := j.repo.List(ctx, domain.BookingsFilter{StartDate: &today, EndDate: &today})
	if err != nil {
		return 0, fmt.Errorf("list bookings for %s: %w", today, err)
	}

	active := 0
	for _, b := range bookings {
		if b.IsActive() {
			active++
		}
	}

	j.gauge.SetTodayActive(active)
	j.logger.Info("Job %s: %d active bookings on %s", TodayBookingsJobName, active, today)
	return active, nil
}
