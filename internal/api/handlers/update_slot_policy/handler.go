package update_slot_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/slotpolicy"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные политики слотов"
	msgNothingToUpdate    = "нет полей для обновления"
)

type Handler struct {
	service SlotPolicyService
	logger  Logger
}

func NewHandler(service SlotPolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/settings/slot-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateSlotPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/slot-policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.IsEmpty() {
		h.logger.Warn("PUT /settings/slot-policy - Empty update")
		handlers.RespondBadRequest(w, msgNothingToUpdate)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("PUT /settings/slot-policy - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgInvalidData, fields)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, slotpolicy.ErrInvalidInput):
			h.logger.Warn("PUT /settings/slot-policy - Invalid data: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /settings/slot-policy - Failed to update slot policy: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings/slot-policy - Slot policy updated: open_hour=%d, granularity=%d, weekdays_only=%t",
		result.OpenHour, result.GranularityMinutes, result.WeekdaysOnly)
	handlers.RespondJSON(w, http.StatusOK, result)
}
