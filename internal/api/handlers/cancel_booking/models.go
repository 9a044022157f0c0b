package cancel_booking

import "github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Date    string  `json:"date" validate:"required,ymd"`  // "2025-10-15"
	Time    string  `json:"time" validate:"required,hhmm"` // "10:00"
	Remarks *string `json:"remarks" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		Date:    r.Date,
		Time:    r.Time,
		Remarks: r.Remarks,
	}
}
