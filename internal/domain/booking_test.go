package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	all := []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled}

	allowed := map[BookingStatus]map[BookingStatus]bool{
		StatusPending: {
			StatusConfirmed: true, StatusCompleted: true, StatusCancelled: true, StatusRescheduled: true,
		},
		StatusConfirmed: {
			StatusCompleted: true, StatusCancelled: true, StatusRescheduled: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_IsFinal(t *testing.T) {
	assert.False(t, StatusPending.IsFinal())
	assert.False(t, StatusConfirmed.IsFinal())
	assert.True(t, StatusCompleted.IsFinal())
	assert.True(t, StatusCancelled.IsFinal())
	assert.True(t, StatusRescheduled.IsFinal())
}

func TestBookingStatus_RemarksLabel(t *testing.T) {
	assert.Equal(t, "done", StatusCompleted.RemarksLabel())
	assert.Equal(t, "cancelled", StatusCancelled.RemarksLabel())
	assert.Equal(t, "rescheduled", StatusRescheduled.RemarksLabel())
	assert.Equal(t, "confirmed", StatusConfirmed.RemarksLabel())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("rescheduled")
	require.NoError(t, err)
	assert.Equal(t, StatusRescheduled, s)

	_, err = ParseBookingStatus("done")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestBooking_Helpers(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeCancelled())

	b.Status = StatusCompleted
	assert.True(t, b.IsActive())
	assert.False(t, b.CanBeCancelled())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
}

func TestIdentity_IsAdmin(t *testing.T) {
	var nilIdentity *Identity
	assert.False(t, nilIdentity.IsAdmin())
	assert.False(t, (&Identity{Role: "customer"}).IsAdmin())
	assert.True(t, (&Identity{Role: RoleAdmin}).IsAdmin())
}
