package domain

import "github.com/m04kA/SMC-SalonBookingService/pkg/types"

// DayCount number of non-cancelled bookings on one date
type DayCount struct {
	Date  types.Date
	Count int
}

// TimeCount number of non-cancelled bookings at one time of a date
type TimeCount struct {
	Time  types.TimeString
	Count int
}
