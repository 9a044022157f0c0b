package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ErrUnknownStatus is returned when a string is not one of the booking statuses.
var ErrUnknownStatus = errors.New("domain: unknown booking status")

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// transitions lists the statuses reachable from each non-final status.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusRescheduled},
}

// ParseBookingStatus converts a string into a known BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// IsFinal returns true if no further transition is allowed
func (s BookingStatus) IsFinal() bool {
	_, ok := transitions[s]
	return !ok
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
// Staying in the same status is handled by the caller as a no-op.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// RemarksLabel returns the remark written when an admin moves a booking to s
func (s BookingStatus) RemarksLabel() string {
	switch s {
	case StatusCompleted:
		return "done"
	default:
		return string(s)
	}
}

// Booking represents a salon appointment (a row of the events table)
type Booking struct {
	ID    int64
	Name  string
	Phone string
	Email string // owning identity key

	UserID *int64 // weak reference to the authenticated account

	Date types.Date
	Time types.TimeString

	Service1 string
	Service2 *string

	SelectedServices *string  // human-readable itemisation
	TotalPrice       *float64 // nil when unknown

	Status  BookingStatus
	Remarks *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the owner may still cancel the booking
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BookingsFilter selects bookings for listings. Results are always ordered by date, time ascending.
type BookingsFilter struct {
	Email            *string     // exact owner email
	StartDate        *types.Date // inclusive
	EndDate          *types.Date // inclusive
	NameQuery        *string     // case-insensitive substring of the name
	IncludeCancelled bool
}

// Identity is the authenticated caller extracted from the bearer token
type Identity struct {
	ID    int64
	Email string
	Role  string
}

// IsAdmin returns true if the caller has the admin role
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
