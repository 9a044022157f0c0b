package get_slot_policy

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
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

// Handle GET /api/settings/slot-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/slot-policy - Failed to get slot policy: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings/slot-policy - Slot policy retrieved: default=%t", result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
