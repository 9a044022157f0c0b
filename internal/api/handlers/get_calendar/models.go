package get_calendar

import (
	"net/url"
	"strconv"
)

// parseYearMonth читает необязательные year и month. Возвращает поле с ошибкой
func parseYearMonth(q url.Values) (year, month *int, field string) {
	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"year", &year},
		{"month", &month},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, p.name
		}
		*p.dst = &v
	}
	return year, month, ""
}
