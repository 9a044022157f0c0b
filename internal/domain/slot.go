package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var (
	// ErrInvalidDate matches every date rejection of the slot policy
	ErrInvalidDate = errors.New("domain: invalid booking date")

	// ErrInvalidTime matches every time rejection of the slot policy
	ErrInvalidTime = errors.New("domain: invalid booking time")

	// ErrInvalidPolicy is returned when policy values are out of range
	ErrInvalidPolicy = errors.New("domain: invalid slot policy")
)

// SlotError describes why a date/time pair was rejected
type SlotError struct {
	Field  string // "date" or "time"
	Reason string
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is match ErrInvalidDate / ErrInvalidTime by field
func (e *SlotError) Is(target error) bool {
	switch target {
	case ErrInvalidDate:
		return e.Field == "date"
	case ErrInvalidTime:
		return e.Field == "time"
	}
	return false
}

// SlotPolicy holds the rules a booking slot has to satisfy.
// Hour 0 is the closing boundary and is always accepted.
type SlotPolicy struct {
	OpenHour           int
	GranularityMinutes int
	WeekdaysOnly       bool
	UpdatedAt          time.Time // zero when the policy comes from config defaults
}

// DefaultSlotPolicy returns the built-in policy
func DefaultSlotPolicy() SlotPolicy {
	return SlotPolicy{
		OpenHour:           DefaultOpenHour,
		GranularityMinutes: DefaultGranularityMinutes,
		WeekdaysOnly:       DefaultWeekdaysOnly,
	}
}

// Check validates the policy values themselves
func (p SlotPolicy) Check() error {
	if p.OpenHour < MinOpenHour || p.OpenHour > MaxOpenHour {
		return fmt.Errorf("%w: open hour must be between %d and %d", ErrInvalidPolicy, MinOpenHour, MaxOpenHour)
	}
	for _, g := range AllowedGranularities {
		if p.GranularityMinutes == g {
			return nil
		}
	}
	return fmt.Errorf("%w: granularity %d is not one of %v", ErrInvalidPolicy, p.GranularityMinutes, AllowedGranularities)
}

// Validate checks a requested slot against the policy. today is the caller's wall-clock date.
// Date problems are reported before time problems.
func (p SlotPolicy) Validate(date types.Date, t types.TimeString, today types.Date) error {
	if date.Before(today) {
		return &SlotError{Field: "date", Reason: "date is in the past"}
	}
	if p.WeekdaysOnly && isWeekend(date.Weekday()) {
		return &SlotError{Field: "date", Reason: "bookings are only accepted Monday to Friday"}
	}
	if err := t.Validate(); err != nil {
		return &SlotError{Field: "time", Reason: "time must be HH:MM"}
	}
	if p.GranularityMinutes > 0 && t.Minute()%p.GranularityMinutes != 0 {
		return &SlotError{Field: "time", Reason: fmt.Sprintf("time must be on a %d-minute boundary", p.GranularityMinutes)}
	}
	if t.Hour() > 0 && t.Hour() < p.OpenHour {
		return &SlotError{Field: "time", Reason: fmt.Sprintf("salon opens at %02d:00", p.OpenHour)}
	}
	return nil
}

// AcceptsDate reports whether any slot can be booked on date
func (p SlotPolicy) AcceptsDate(date, today types.Date) bool {
	if date.Before(today) {
		return false
	}
	return !(p.WeekdaysOnly && isWeekend(date.Weekday()))
}

// Times lists the slot start times of a business day, from the opening hour to the end of the day.
// The midnight closing boundary is accepted by Validate but is not offered as a slot.
func (p SlotPolicy) Times() []types.TimeString {
	if p.GranularityMinutes <= 0 {
		return nil
	}
	times := make([]types.TimeString, 0, (24-p.OpenHour)*60/p.GranularityMinutes)
	for m := p.OpenHour * 60; m < 24*60; m += p.GranularityMinutes {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		times = append(times, ts)
	}
	return times
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
