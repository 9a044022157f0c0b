package slotpolicy

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// PolicyRepository интерфейс репозитория политики слотов
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.SlotPolicy, error)
	Save(ctx context.Context, policy *domain.SlotPolicy) (*domain.SlotPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
