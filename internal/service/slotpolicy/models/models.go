package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// UpdateSlotPolicyRequest частичное обновление политики: nil-поля не меняются
type UpdateSlotPolicyRequest struct {
	OpenHour           *int  `json:"openHour,omitempty"`
	GranularityMinutes *int  `json:"granularityMinutes,omitempty"`
	WeekdaysOnly       *bool `json:"weekdaysOnly,omitempty"`
}

// Apply накладывает изменения на текущую политику
func (r *UpdateSlotPolicyRequest) Apply(current domain.SlotPolicy) domain.SlotPolicy {
	updated := current
	if r.OpenHour != nil {
		updated.OpenHour = *r.OpenHour
	}
	if r.GranularityMinutes != nil {
		updated.GranularityMinutes = *r.GranularityMinutes
	}
	if r.WeekdaysOnly != nil {
		updated.WeekdaysOnly = *r.WeekdaysOnly
	}
	return updated
}

// SlotPolicyResponse действующая политика слотов
type SlotPolicyResponse struct {
	OpenHour           int        `json:"openHour"`
	GranularityMinutes int        `json:"granularityMinutes"`
	WeekdaysOnly       bool       `json:"weekdaysOnly"`
	IsDefault          bool       `json:"isDefault"` // true, если политика взята из конфигурации
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p domain.SlotPolicy, isDefault bool) *SlotPolicyResponse {
	resp := &SlotPolicyResponse{
		OpenHour:           p.OpenHour,
		GranularityMinutes: p.GranularityMinutes,
		WeekdaysOnly:       p.WeekdaysOnly,
		IsDefault:          isDefault,
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
