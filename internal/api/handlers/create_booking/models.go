package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
)

// SelectedServiceItem позиция детализации услуг
type SelectedServiceItem struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Category string   `json:"category" validate:"max=100"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name             string                `json:"name" validate:"required,max=200"`
	Phone            string                `json:"phone" validate:"required,min=5,max=32"`
	Time             string                `json:"time" validate:"required,hhmm"` // "10:00"
	Date             string                `json:"date" validate:"required,ymd"`  // "2025-10-15"
	Service1         string                `json:"service1" validate:"required,max=200"`
	Service2         *string               `json:"service2" validate:"omitempty,max=200"`
	Email            *string               `json:"email" validate:"omitempty,email"`
	SelectedServices []SelectedServiceItem `json:"selectedServices" validate:"omitempty,dive"`
	TotalPrice       *float64              `json:"totalPrice" validate:"omitempty,gte=0"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email"`
	UserID           *int64   `json:"userId,omitempty"`
	Date             string   `json:"date"`
	Time             string   `json:"time"`
	Service1         string   `json:"service1"`
	Service2         *string  `json:"service2"`
	SelectedServices *string  `json:"selectedServices,omitempty"`
	TotalPrice       *float64 `json:"totalPrice,omitempty"`
	Status           string   `json:"status"`
	Remarks          *string  `json:"remarks"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(identity *domain.Identity) *createBooking.Request {
	items := make([]createBooking.SelectedService, 0, len(r.SelectedServices))
	for _, item := range r.SelectedServices {
		items = append(items, createBooking.SelectedService{
			Name:     item.Name,
			Category: item.Category,
			Price:    item.Price,
		})
	}

	return &createBooking.Request{
		Identity:         identity,
		Name:             r.Name,
		Phone:            r.Phone,
		Date:             r.Date,
		Time:             r.Time,
		Service1:         r.Service1,
		Service2:         r.Service2,
		GuestEmail:       r.Email,
		SelectedServices: items,
		TotalPrice:       r.TotalPrice,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		Name:             resp.Name,
		Phone:            resp.Phone,
		Email:            resp.Email,
		UserID:           resp.UserID,
		Date:             resp.Date,
		Time:             resp.Time,
		Service1:         resp.Service1,
		Service2:         resp.Service2,
		SelectedServices: resp.SelectedServices,
		TotalPrice:       resp.TotalPrice,
		Status:           resp.Status,
		Remarks:          resp.Remarks,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
