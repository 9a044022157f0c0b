package list_bookings

// SearchQuery параметры поиска по имени
type SearchQuery struct {
	Q string `json:"q" validate:"required,max=100"`
}

// RangeQuery параметры выборки за период
type RangeQuery struct {
	Start string `json:"start" validate:"required,ymd"`
	End   string `json:"end" validate:"required,ymd"`
}
