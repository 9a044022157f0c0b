package create_booking

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return &FieldError{Field: "name", Reason: "name is required"}
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return &FieldError{Field: "name", Reason: "name is too long"}
	}

	if len(strings.TrimSpace(req.Phone)) < domain.MinPhoneLength {
		return &FieldError{Field: "phone", Reason: "phone is too short"}
	}

	if strings.TrimSpace(req.Service1) == "" {
		return &FieldError{Field: "service1", Reason: "service1 is required"}
	}

	if req.TotalPrice != nil && *req.TotalPrice < 0 {
		return &FieldError{Field: "totalPrice", Reason: "totalPrice must not be negative"}
	}

	for _, item := range req.SelectedServices {
		if strings.TrimSpace(item.Name) == "" {
			return &FieldError{Field: "selectedServices", Reason: "every item needs a name"}
		}
		if item.Price != nil && *item.Price < 0 {
			return &FieldError{Field: "selectedServices", Reason: "item price must not be negative"}
		}
	}

	return nil
}

// servicesSummary собирает детализацию услуг.
// lines - строки "name (category) - price", total - сумма цен или переданная итоговая цена
func servicesSummary(items []SelectedService, supplied *float64) (lines []string, total *float64) {
	var sum float64
	priced := false

	for _, item := range items {
		line := strings.TrimSpace(item.Name)
		if category := strings.TrimSpace(item.Category); category != "" {
			line += " (" + category + ")"
		}
		if item.Price != nil {
			line += " - " + formatPrice(*item.Price)
			sum += *item.Price
			priced = true
		}
		lines = append(lines, line)
	}

	if priced {
		return lines, &sum
	}
	return lines, supplied
}

// buildRemarks склеивает строки детализации и итог
func buildRemarks(lines []string, total *float64) string {
	remarks := strings.Join(lines, "\n")
	if total != nil {
		remarks += "\nTotal: " + formatPrice(*total)
	}
	return remarks
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
