package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrEmailMissing возвращается, когда у пользователя не указан email
	ErrEmailMissing = errors.New("userservice client: user has no email")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен и вызывающий должен использовать запасной email
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
