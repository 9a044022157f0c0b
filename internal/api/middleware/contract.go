package middleware

import "time"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPRecorder принимает HTTP метрики
type HTTPRecorder interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}
