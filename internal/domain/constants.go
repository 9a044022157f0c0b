package domain

// Default slot policy values, used when neither config nor the database override them
const (
	DefaultOpenHour           = 9
	DefaultGranularityMinutes = 30
	DefaultWeekdaysOnly       = true
)

// Business validation constants
const (
	MinOpenHour        = 0
	MaxOpenHour        = 23
	MinPhoneLength     = 5
	MaxNameLength      = 200
	MaxRemarksLength   = 500
	MaxSearchQueryLen  = 100
	DefaultCancelNotes = "cancelled"
)

// AllowedGranularities slot step sizes accepted by the policy (minutes)
var AllowedGranularities = []int{5, 10, 15, 20, 30, 60}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RoleAdmin value of the user_type claim that grants admin access
const RoleAdmin = "admin"

// CancellableStatuses statuses an owner cancellation may touch
var CancellableStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
