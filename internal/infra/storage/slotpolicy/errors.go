package slotpolicy

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика ещё не сохранялась
	ErrPolicyNotFound = errors.New("slotpolicy.repository: policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slotpolicy.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slotpolicy.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slotpolicy.repository: failed to scan row")
)
