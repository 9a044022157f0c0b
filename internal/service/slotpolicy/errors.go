package slotpolicy

import "errors"

var (
	// ErrInvalidInput возвращается при недопустимых значениях политики
	ErrInvalidInput = errors.New("slotpolicy: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slotpolicy: internal error")
)
