package models

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// DayCountResponse количество бронирований за день
type DayCountResponse struct {
	D string `json:"d"` // "2025-03-12"
	C int    `json:"c"`
}

// MonthCountsResponse разреженные счётчики месяца
type MonthCountsResponse struct {
	Year   int                `json:"year"`
	Month  int                `json:"month"`
	Counts []DayCountResponse `json:"counts"`
}

// EventResponse сокращённое представление бронирования для календаря
type EventResponse struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date,omitempty"` // только в помесячной выдаче
	Service1 string  `json:"service1"`
	Service2 *string `json:"service2"`
	Time     string  `json:"time"` // "HH:MM"
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Status   string  `json:"status"`
	Email    string  `json:"email"`
}

// EventListResponse список событий
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// FromDomainCounts конвертирует счётчики в DTO
func FromDomainCounts(year, month int, counts []domain.DayCount) *MonthCountsResponse {
	resp := &MonthCountsResponse{
		Year:   year,
		Month:  month,
		Counts: make([]DayCountResponse, len(counts)),
	}
	for i, c := range counts {
		resp.Counts[i] = DayCountResponse{D: c.Date.String(), C: c.Count}
	}
	return resp
}

// FromDomainEvents проецирует бронирования в события. withDate добавляет дату
func FromDomainEvents(bookings []*domain.Booking, withDate bool) *EventListResponse {
	resp := &EventListResponse{Events: make([]EventResponse, 0, len(bookings))}
	for _, b := range bookings {
		event := EventResponse{
			ID:       b.ID,
			Service1: b.Service1,
			Service2: b.Service2,
			Time:     b.Time.String(),
			Name:     b.Name,
			Phone:    b.Phone,
			Status:   string(b.Status),
			Email:    b.Email,
		}
		if withDate {
			event.Date = b.Date.String()
		}
		resp.Events = append(resp.Events, event)
	}
	return resp
}
