package get_day_slots

import (
	getDaySlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date               string         `json:"date"`
	Open               bool           `json:"open"`
	GranularityMinutes int            `json:"granularityMinutes"`
	Slots              []SlotResponse `json:"slots"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	Time   string `json:"time"`   // "10:00"
	Booked int    `json:"booked"` // неотменённые бронирования на это время
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Time:   s.Time.String(),
			Booked: s.Booked,
		}
	}

	return &DaySlotsResponse{
		Date:               resp.Date.String(),
		Open:               resp.Open,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}
