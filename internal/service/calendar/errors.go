package calendar

import "errors"

var (
	// ErrInvalidMonth возвращается, когда месяц вне диапазона 1..12
	ErrInvalidMonth = errors.New("calendar: month must be between 1 and 12")

	// ErrInvalidYear возвращается при недопустимом годе
	ErrInvalidYear = errors.New("calendar: invalid year")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar: internal error")
)
