package update_slot_policy

import "github.com/m04kA/SMC-SalonBookingService/internal/service/slotpolicy/models"

// UpdateSlotPolicyRequest HTTP request model, все поля необязательны
type UpdateSlotPolicyRequest struct {
	OpenHour           *int  `json:"openHour" validate:"omitempty,gte=0,lte=23"`
	GranularityMinutes *int  `json:"granularityMinutes" validate:"omitempty,oneof=5 10 15 20 30 60"`
	WeekdaysOnly       *bool `json:"weekdaysOnly"`
}

// IsEmpty true, если не передано ни одного поля
func (r *UpdateSlotPolicyRequest) IsEmpty() bool {
	return r.OpenHour == nil && r.GranularityMinutes == nil && r.WeekdaysOnly == nil
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSlotPolicyRequest) ToServiceRequest() *models.UpdateSlotPolicyRequest {
	return &models.UpdateSlotPolicyRequest{
		OpenHour:           r.OpenHour,
		GranularityMinutes: r.GranularityMinutes,
		WeekdaysOnly:       r.WeekdaysOnly,
	}
}
