package get_slot_policy

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/slotpolicy/models"
)

type SlotPolicyService interface {
	Get(ctx context.Context) (*models.SlotPolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
