package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrEmailRequired возвращается, когда гость не указал email и нет идентичности
	ErrEmailRequired = errors.New("create_booking: email is required for guest bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// FieldError ошибка валидации конкретного поля запроса
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrInvalidInput)
func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}
