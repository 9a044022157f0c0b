package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// 2025-03-12 is a Wednesday.
var today = types.NewDate(2025, time.March, 12)

func TestSlotPolicy_Validate(t *testing.T) {
	policy := DefaultSlotPolicy()

	cases := []struct {
		name      string
		date      types.Date
		time      types.TimeString
		wantField string
	}{
		{name: "weekday opening slot", date: today, time: "09:00"},
		{name: "half past", date: today.AddDays(1), time: "14:30"},
		{name: "midnight boundary", date: today, time: "00:00"},
		{name: "late evening", date: today, time: "23:30"},
		{name: "past date", date: today.AddDays(-1), time: "10:00", wantField: "date"},
		{name: "saturday", date: today.AddDays(3), time: "10:00", wantField: "date"},
		{name: "sunday", date: today.AddDays(4), time: "10:00", wantField: "date"},
		{name: "minute not aligned", date: today, time: "10:15", wantField: "time"},
		{name: "before opening", date: today, time: "08:30", wantField: "time"},
		{name: "early morning", date: today, time: "01:00", wantField: "time"},
		{name: "malformed time", date: today, time: "9:00", wantField: "time"},
		{name: "date checked before time", date: today.AddDays(-7), time: "07:15", wantField: "date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Validate(tc.date, tc.time, today)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var slotErr *SlotError
			require.True(t, errors.As(err, &slotErr))
			assert.Equal(t, tc.wantField, slotErr.Field)
			assert.NotEmpty(t, slotErr.Reason)

			if tc.wantField == "date" {
				assert.ErrorIs(t, err, ErrInvalidDate)
				assert.False(t, errors.Is(err, ErrInvalidTime))
			} else {
				assert.ErrorIs(t, err, ErrInvalidTime)
				assert.False(t, errors.Is(err, ErrInvalidDate))
			}
		})
	}
}

func TestSlotPolicy_ValidateWeekendsAllowed(t *testing.T) {
	policy := SlotPolicy{OpenHour: 10, GranularityMinutes: 15, WeekdaysOnly: false}

	assert.NoError(t, policy.Validate(today.AddDays(3), "10:45", today))
	assert.ErrorIs(t, policy.Validate(today, "09:45", today), ErrInvalidTime)
	assert.ErrorIs(t, policy.Validate(today, "10:50", today), ErrInvalidTime)
}

func TestSlotPolicy_Check(t *testing.T) {
	assert.NoError(t, DefaultSlotPolicy().Check())
	assert.NoError(t, SlotPolicy{OpenHour: 0, GranularityMinutes: 60}.Check())

	assert.ErrorIs(t, SlotPolicy{OpenHour: 24, GranularityMinutes: 30}.Check(), ErrInvalidPolicy)
	assert.ErrorIs(t, SlotPolicy{OpenHour: -1, GranularityMinutes: 30}.Check(), ErrInvalidPolicy)
	assert.ErrorIs(t, SlotPolicy{OpenHour: 9, GranularityMinutes: 25}.Check(), ErrInvalidPolicy)
}

func TestSlotPolicy_Times(t *testing.T) {
	times := SlotPolicy{OpenHour: 21, GranularityMinutes: 60}.Times()
	assert.Equal(t, []types.TimeString{"21:00", "22:00", "23:00"}, times)

	times = DefaultSlotPolicy().Times()
	require.Len(t, times, 30)
	assert.Equal(t, types.TimeString("09:00"), times[0])
	assert.Equal(t, types.TimeString("23:30"), times[len(times)-1])

	for _, ts := range times {
		assert.NoError(t, DefaultSlotPolicy().Validate(today, ts, today), ts)
	}
}

func TestSlotPolicy_AcceptsDate(t *testing.T) {
	policy := DefaultSlotPolicy()

	assert.True(t, policy.AcceptsDate(today, today))
	assert.False(t, policy.AcceptsDate(today.AddDays(-1), today))
	assert.False(t, policy.AcceptsDate(today.AddDays(3), today))
}
