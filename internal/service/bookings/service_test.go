package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *repoMock) CancelByIdentity(ctx context.Context, email string, date types.Date, t types.TimeString, remarks string) (int64, error) {
	args := m.Called(ctx, email, date, t, remarks)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, remarks string) error {
	args := m.Called(ctx, id, from, to, remarks)
	return args.Error(0)
}

type invalidatorMock struct {
	dates []types.Date
}

func (m *invalidatorMock) Invalidate(_ context.Context, date types.Date) {
	m.dates = append(m.dates, date)
}

type metricsMock struct {
	cancelled   int64
	transitions []string
}

func (m *metricsMock) AddBookingsCancelled(n int64) { m.cancelled += n }
func (m *metricsMock) IncTransition(status string)  { m.transitions = append(m.transitions, status) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	repo    *repoMock
	cache   *invalidatorMock
	metrics *metricsMock
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{repo: &repoMock{}, cache: &invalidatorMock{}, metrics: &metricsMock{}}
	f.svc = NewService(f.repo, f.cache, f.metrics, logger.NewNop())
	f.svc.timeProvider = fixedTime{now: time.Date(2025, time.March, 12, 15, 4, 0, 0, time.UTC)}
	return f
}

var alice = &domain.Identity{ID: 7, Email: "alice@example.com", Role: "customer"}

func TestListMine_AllStatuses(t *testing.T) {
	f := newFixture()
	f.repo.On("List", mock.Anything, domain.BookingsFilter{Email: ptr.Ptr("alice@example.com"), IncludeCancelled: true}).
		Return([]*domain.Booking{
			{ID: 1, Email: "alice@example.com", Date: types.NewDate(2025, time.March, 3), Time: "10:00", Status: domain.StatusCancelled},
			{ID: 2, Email: "alice@example.com", Date: types.NewDate(2025, time.March, 14), Time: "09:30", Status: domain.StatusPending},
		}, nil)

	resp, err := f.svc.ListMine(context.Background(), alice)
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "cancelled", resp.Bookings[0].Status)
	assert.Equal(t, "2025-03-14", resp.Bookings[1].Date)
	assert.Equal(t, "09:30", resp.Bookings[1].Time)
}

func TestListMine_NoIdentity(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ListMine(context.Background(), nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancelByIdentity_DefaultRemarks(t *testing.T) {
	f := newFixture()
	date := types.NewDate(2025, time.March, 14)
	f.repo.On("CancelByIdentity", mock.Anything, "alice@example.com", date, types.TimeString("10:00"), "cancelled").
		Return(int64(2), nil)

	resp, err := f.svc.CancelByIdentity(context.Background(), alice, &models.CancelBookingRequest{Date: "2025-03-14", Time: "10:00"})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Updated)
	assert.Equal(t, int64(2), f.metrics.cancelled)
	assert.Equal(t, []types.Date{date}, f.cache.dates)
}

func TestCancelByIdentity_CustomRemarksAndNoMatch(t *testing.T) {
	f := newFixture()
	f.repo.On("CancelByIdentity", mock.Anything, "alice@example.com", types.NewDate(2025, time.March, 14), types.TimeString("11:00"), "sick").
		Return(int64(0), nil)

	resp, err := f.svc.CancelByIdentity(context.Background(), alice,
		&models.CancelBookingRequest{Date: "2025-03-14", Time: "11:00", Remarks: ptr.Ptr(" sick ")})
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.Updated)
	assert.Zero(t, f.metrics.cancelled)
	assert.Empty(t, f.cache.dates)
}

func TestCancelByIdentity_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CancelByIdentity(context.Background(), alice, &models.CancelBookingRequest{Date: "14.03.2025", Time: "10:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = f.svc.CancelByIdentity(context.Background(), alice, &models.CancelBookingRequest{Date: "2025-03-14", Time: "25:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidTime)

	f.repo.AssertNotCalled(t, "CancelByIdentity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelByIdentity_RepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.On("CancelByIdentity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("db down"))

	_, err := f.svc.CancelByIdentity(context.Background(), alice, &models.CancelBookingRequest{Date: "2025-03-14", Time: "10:00"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestTransition(t *testing.T) {
	date := types.NewDate(2025, time.March, 20)

	tests := []struct {
		name        string
		current     domain.BookingStatus
		target      domain.BookingStatus
		wantRemarks string
		wantErr     error
		wantWrite   bool
	}{
		{name: "pending to confirmed", current: domain.StatusPending, target: domain.StatusConfirmed, wantRemarks: "confirmed", wantWrite: true},
		{name: "pending to completed", current: domain.StatusPending, target: domain.StatusCompleted, wantRemarks: "done", wantWrite: true},
		{name: "confirmed to rescheduled", current: domain.StatusConfirmed, target: domain.StatusRescheduled, wantRemarks: "rescheduled", wantWrite: true},
		{name: "confirmed to cancelled", current: domain.StatusConfirmed, target: domain.StatusCancelled, wantRemarks: "cancelled", wantWrite: true},
		{name: "same status is a no-op", current: domain.StatusConfirmed, target: domain.StatusConfirmed},
		{name: "cancelled is final", current: domain.StatusCancelled, target: domain.StatusConfirmed, wantErr: ErrInvalidTransition},
		{name: "completed is final", current: domain.StatusCompleted, target: domain.StatusCancelled, wantErr: ErrInvalidTransition},
		{name: "confirmed cannot go back", current: domain.StatusConfirmed, target: domain.StatusPending, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("GetByID", mock.Anything, int64(5)).
				Return(&domain.Booking{ID: 5, Date: date, Time: "10:00", Status: tt.current}, nil)
			if tt.wantWrite {
				f.repo.On("UpdateStatus", mock.Anything, int64(5), tt.current, tt.target, tt.wantRemarks).Return(nil)
			}

			err := f.svc.Transition(context.Background(), 5, tt.target)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantWrite {
				f.repo.AssertExpectations(t)
				assert.Equal(t, []string{string(tt.target)}, f.metrics.transitions)
				assert.Equal(t, []types.Date{date}, f.cache.dates)
			} else {
				f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				assert.Empty(t, f.metrics.transitions)
			}
		})
	}
}

func TestTransition_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(99)).Return(nil, bookingRepo.ErrBookingNotFound)

	err := f.svc.Transition(context.Background(), 99, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransition_RowVanishedDuringUpdate(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Booking{ID: 5, Status: domain.StatusPending}, nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusPending, domain.StatusConfirmed, "confirmed").
		Return(bookingRepo.ErrBookingNotFound)

	err := f.svc.Transition(context.Background(), 5, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransition_CancelledConcurrentlyIsNotResurrected(t *testing.T) {
	f := newFixture()
	// прочитали pending, но владелец отменил запись до обновления
	f.repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Booking{ID: 5, Date: types.NewDate(2025, time.March, 20), Status: domain.StatusPending}, nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusPending, domain.StatusConfirmed, "confirmed").
		Return(bookingRepo.ErrStatusConflict)

	err := f.svc.Transition(context.Background(), 5, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, f.metrics.transitions)
	assert.Empty(t, f.cache.dates)
}

func TestTransition_CancelTwice(t *testing.T) {
	f := newFixture()
	date := types.NewDate(2025, time.March, 20)
	f.repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Booking{ID: 5, Date: date, Time: "10:00", Status: domain.StatusPending}, nil).Once()
	f.repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusPending, domain.StatusCancelled, "cancelled").
		Return(nil).Once()
	f.repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Booking{ID: 5, Date: date, Time: "10:00", Status: domain.StatusCancelled}, nil).Once()

	require.NoError(t, f.svc.Transition(context.Background(), 5, domain.StatusCancelled))
	require.NoError(t, f.svc.Transition(context.Background(), 5, domain.StatusCancelled))

	f.repo.AssertExpectations(t)
	f.repo.AssertNumberOfCalls(t, "UpdateStatus", 1)
	assert.Equal(t, []string{"cancelled"}, f.metrics.transitions)
	assert.Equal(t, []types.Date{date}, f.cache.dates)
}

func TestSearchByName(t *testing.T) {
	f := newFixture()
	f.repo.On("List", mock.Anything, domain.BookingsFilter{NameQuery: ptr.Ptr("ann")}).
		Return([]*domain.Booking{{ID: 1, Name: "Joanna"}}, nil)

	resp, err := f.svc.SearchByName(context.Background(), "  ann ")
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Joanna", resp.Bookings[0].Name)
}

func TestSearchByName_EmptyQuery(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SearchByName(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListToday(t *testing.T) {
	f := newFixture()
	today := types.NewDate(2025, time.March, 12)
	f.repo.On("List", mock.Anything, domain.BookingsFilter{StartDate: &today, EndDate: &today}).
		Return([]*domain.Booking{}, nil)

	resp, err := f.svc.ListToday(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestListByDateRange(t *testing.T) {
	f := newFixture()
	start, end := types.NewDate(2025, time.March, 1), types.NewDate(2025, time.March, 7)
	f.repo.On("List", mock.Anything, domain.BookingsFilter{StartDate: &start, EndDate: &end}).
		Return([]*domain.Booking{{ID: 4}}, nil)

	resp, err := f.svc.ListByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.ListByDateRange(context.Background(), end, start)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestListAll_IncludesCancelled(t *testing.T) {
	f := newFixture()
	f.repo.On("List", mock.Anything, domain.BookingsFilter{IncludeCancelled: true}).
		Return(nil, errors.New("timeout"))

	_, err := f.svc.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Booking{ID: 3, Name: "Ann", Date: types.NewDate(2025, time.March, 14), Time: "10:00", Status: domain.StatusPending}, nil)

	resp, err := f.svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Ann", resp.Name)
	assert.Equal(t, "pending", resp.Status)
}
