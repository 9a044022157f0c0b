package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену своих бронирований слота
type CancelBookingRequest struct {
	Date    string  `json:"date"`    // "2025-10-15"
	Time    string  `json:"time"`    // "10:00"
	Remarks *string `json:"remarks"` // по умолчанию "cancelled"
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	UserID *int64 `json:"userId,omitempty"`
	Date   string `json:"date"` // "2025-10-15"
	Time   string `json:"time"` // "10:00"

	Service1         string   `json:"service1"`
	Service2         *string  `json:"service2"`
	SelectedServices *string  `json:"selectedServices,omitempty"`
	TotalPrice       *float64 `json:"totalPrice,omitempty"`

	Status  string  `json:"status"`
	Remarks *string `json:"remarks"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelBookingResponse количество отменённых бронирований
type CancelBookingResponse struct {
	Updated int64 `json:"updated"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:               b.ID,
		Name:             b.Name,
		Phone:            b.Phone,
		Email:            b.Email,
		UserID:           b.UserID,
		Date:             b.Date.String(),
		Time:             b.Time.String(),
		Service1:         b.Service1,
		Service2:         b.Service2,
		SelectedServices: b.SelectedServices,
		TotalPrice:       b.TotalPrice,
		Status:           string(b.Status),
		Remarks:          b.Remarks,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
