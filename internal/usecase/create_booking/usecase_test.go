package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	userClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type bookingRepoMock struct {
	mock.Mock
}

func (m *bookingRepoMock) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	booking.ID = 42
	booking.CreatedAt = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	booking.UpdatedAt = booking.CreatedAt
	return booking, nil
}

type policyStub struct {
	policy domain.SlotPolicy
	err    error
}

func (p policyStub) Active(context.Context) (domain.SlotPolicy, error) {
	return p.policy, p.err
}

type userClientMock struct {
	mock.Mock
}

func (m *userClientMock) GetUserEmailWithGracefulDegradation(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type invalidatorMock struct {
	dates []types.Date
}

func (m *invalidatorMock) Invalidate(_ context.Context, date types.Date) {
	m.dates = append(m.dates, date)
}

type metricsMock struct {
	created int
}

func (m *metricsMock) IncBookingsCreated() { m.created++ }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	repo    *bookingRepoMock
	users   *userClientMock
	cache   *invalidatorMock
	metrics *metricsMock
	uc      *UseCase
}

// Сегодня среда 2025-03-12
func newFixture(policy policyStub) *fixture {
	f := &fixture{
		repo:    &bookingRepoMock{},
		users:   &userClientMock{},
		cache:   &invalidatorMock{},
		metrics: &metricsMock{},
	}
	f.uc = NewUseCase(f.repo, policy, f.users, f.cache, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)}
	return f
}

func defaultPolicy() policyStub {
	return policyStub{policy: domain.DefaultSlotPolicy()}
}

func guestRequest() *Request {
	return &Request{
		Name:       "Ann",
		Phone:      "0712345678",
		Date:       "2025-03-14",
		Time:       "10:30",
		Service1:   "Haircut",
		GuestEmail: ptr.Ptr("ann@example.com"),
	}
}

func TestExecute_GuestBooking(t *testing.T) {
	f := newFixture(defaultPolicy())
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Email == "ann@example.com" &&
			b.UserID == nil &&
			b.Status == domain.StatusPending &&
			b.Date == types.NewDate(2025, time.March, 14) &&
			b.Time == "10:30" &&
			b.Remarks == nil
	})).Return(nil, nil)

	resp, err := f.uc.Execute(context.Background(), guestRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2025-03-14", resp.Date)
	assert.Equal(t, 1, f.metrics.created)
	assert.Equal(t, []types.Date{types.NewDate(2025, time.March, 14)}, f.cache.dates)
	f.repo.AssertExpectations(t)
}

func TestExecute_IdentityEmailWins(t *testing.T) {
	f := newFixture(defaultPolicy())
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Email == "bob@example.com" && b.UserID != nil && *b.UserID == 7
	})).Return(nil, nil)

	req := guestRequest()
	req.Identity = &domain.Identity{ID: 7, Email: "bob@example.com"}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", resp.Email)
	f.users.AssertNotCalled(t, "GetUserEmailWithGracefulDegradation", mock.Anything, mock.Anything)
}

func TestExecute_EmailFromUserService(t *testing.T) {
	f := newFixture(defaultPolicy())
	f.users.On("GetUserEmailWithGracefulDegradation", mock.Anything, int64(7)).Return("carol@example.com", nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Email == "carol@example.com"
	})).Return(nil, nil)

	req := guestRequest()
	req.GuestEmail = nil
	req.Identity = &domain.Identity{ID: 7}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_UserServiceDegradedFallsBackToGuestEmail(t *testing.T) {
	f := newFixture(defaultPolicy())
	f.users.On("GetUserEmailWithGracefulDegradation", mock.Anything, int64(7)).
		Return("", userClient.ErrServiceDegraded)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Email == "ann@example.com"
	})).Return(nil, nil)

	req := guestRequest()
	req.Identity = &domain.Identity{ID: 7}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_EmailRequired(t *testing.T) {
	f := newFixture(defaultPolicy())

	req := guestRequest()
	req.GuestEmail = ptr.Ptr("  ")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailRequired)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_SlotRejected(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		wantErr error
	}{
		{name: "past date", date: "2025-03-11", time: "10:00", wantErr: domain.ErrInvalidDate},
		{name: "saturday", date: "2025-03-15", time: "10:00", wantErr: domain.ErrInvalidDate},
		{name: "malformed date", date: "15/03/2025", time: "10:00", wantErr: domain.ErrInvalidDate},
		{name: "date checked before time", date: "2025-03-11", time: "10:17", wantErr: domain.ErrInvalidDate},
		{name: "not on boundary", date: "2025-03-14", time: "10:15", wantErr: domain.ErrInvalidTime},
		{name: "before opening", date: "2025-03-14", time: "08:30", wantErr: domain.ErrInvalidTime},
		{name: "malformed time", date: "2025-03-14", time: "9am", wantErr: domain.ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(defaultPolicy())

			req := guestRequest()
			req.Date = tt.date
			req.Time = tt.time

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.Zero(t, f.metrics.created)
		})
	}
}

func TestExecute_MidnightAndTodayAccepted(t *testing.T) {
	for _, tc := range []struct{ date, time string }{
		{"2025-03-12", "00:00"},
		{"2025-03-12", "09:00"},
		{"2025-03-14", "23:30"},
	} {
		f := newFixture(defaultPolicy())
		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil, nil)

		req := guestRequest()
		req.Date, req.Time = tc.date, tc.time

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err, "%s %s", tc.date, tc.time)
	}
}

func TestExecute_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{name: "empty name", mutate: func(r *Request) { r.Name = " " }, field: "name"},
		{name: "short phone", mutate: func(r *Request) { r.Phone = "123" }, field: "phone"},
		{name: "no service", mutate: func(r *Request) { r.Service1 = "" }, field: "service1"},
		{name: "negative total", mutate: func(r *Request) { r.TotalPrice = ptr.Ptr(-1.0) }, field: "totalPrice"},
		{name: "unnamed item", mutate: func(r *Request) { r.SelectedServices = []SelectedService{{Category: "Hair"}} }, field: "selectedServices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(defaultPolicy())
			req := guestRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SelectedServicesSummary(t *testing.T) {
	f := newFixture(defaultPolicy())

	var saved *domain.Booking
	f.repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Booking)
	}).Return(nil, nil)

	req := guestRequest()
	req.TotalPrice = ptr.Ptr(999.0)
	req.SelectedServices = []SelectedService{
		{Name: "Haircut", Category: "Hair", Price: ptr.Ptr(25.0)},
		{Name: "Manicure", Category: "Nails", Price: ptr.Ptr(15.5)},
	}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "Haircut (Hair) - 25.00\nManicure (Nails) - 15.50", *saved.SelectedServices)
	assert.Equal(t, "Haircut (Hair) - 25.00\nManicure (Nails) - 15.50\nTotal: 40.50", *saved.Remarks)
	assert.Equal(t, 40.5, *saved.TotalPrice)
}

func TestExecute_SuppliedTotalWhenItemsUnpriced(t *testing.T) {
	f := newFixture(defaultPolicy())

	var saved *domain.Booking
	f.repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Booking)
	}).Return(nil, nil)

	req := guestRequest()
	req.TotalPrice = ptr.Ptr(30.0)
	req.SelectedServices = []SelectedService{{Name: "Braids"}}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Braids\nTotal: 30.00", *saved.Remarks)
	assert.Equal(t, 30.0, *saved.TotalPrice)
}

func TestExecute_PolicyError(t *testing.T) {
	f := newFixture(policyStub{err: errors.New("db down")})

	_, err := f.uc.Execute(context.Background(), guestRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_RepositoryError(t *testing.T) {
	f := newFixture(defaultPolicy())
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed"))

	_, err := f.uc.Execute(context.Background(), guestRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.metrics.created)
	assert.Empty(t, f.cache.dates)
}
