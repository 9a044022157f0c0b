package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeStringLayout is the wall-clock layout stored in TimeString.
const TimeStringLayout = "15:04"

var (
	// ErrInvalidTimeString is returned when a value is not a valid "HH:MM" time.
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the 00:00-23:59 range.
	ErrTimeOverflow = errors.New("time string overflow")
)

// TimeString is a naive wall-clock time of day in "HH:MM" form.
// It maps to the SQL `time` type.
type TimeString string

// NewTimeString builds a TimeString from the hour and minute of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses a strict "HH:MM" value.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate checks the "HH:MM" shape and the hour/minute ranges.
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	for i, c := range s {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}
	if t.Hour() > 23 || t.Minute() > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Hour returns the hour part. The value must be valid.
func (t TimeString) Hour() int {
	s := string(t)
	if len(s) < 5 {
		return 0
	}
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

// Minute returns the minute part. The value must be valid.
func (t TimeString) Minute() int {
	s := string(t)
	if len(s) < 5 {
		return 0
	}
	return int(s[3]-'0')*10 + int(s[4]-'0')
}

// Minutes returns minutes since midnight.
func (t TimeString) Minutes() int {
	return t.Hour()*60 + t.Minute()
}

// AddMinutes shifts the time; crossing midnight is an error.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(t.Minutes() + minutes)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

func (t TimeString) String() string {
	return string(t)
}

// Scan implements sql.Scanner. lib/pq returns `time` columns as time.Time
// on 0000-01-01, or as text depending on the query.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		return t.scanText(v)
	case []byte:
		return t.scanText(string(v))
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// scanText accepts "HH:MM" and "HH:MM:SS[.ffffff]".
func (t *TimeString) scanText(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
