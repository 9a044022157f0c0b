package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на получение сетки слотов дня
type Request struct {
	Date string // Дата "YYYY-MM-DD"
}

// Response модель ответа с сеткой слотов
type Response struct {
	Date               types.Date // Дата, на которую запрашивались слоты
	Open               bool       // Принимает ли салон записи на эту дату
	GranularityMinutes int        // Шаг сетки
	Slots              []Slot     // Слоты дня по возрастанию времени
}

// Slot модель временного слота
type Slot struct {
	Time   types.TimeString // Время начала слота (например, "10:00")
	Booked int              // Количество неотменённых бронирований на это время
}
