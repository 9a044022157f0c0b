package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// SelectedService позиция детализации услуг
type SelectedService struct {
	Name     string   // Название услуги
	Category string   // Категория (опционально)
	Price    *float64 // Цена (опционально)
}

// Request модель запроса на создание бронирования
type Request struct {
	Identity *domain.Identity // Авторизованный пользователь (nil для гостя)

	Name  string // Имя клиента
	Phone string // Телефон
	Date  string // Дата "YYYY-MM-DD"
	Time  string // Время "HH:MM"

	Service1 string  // Основная услуга
	Service2 *string // Дополнительная услуга (опционально)

	GuestEmail       *string           // Email гостя (опционально)
	SelectedServices []SelectedService // Детализация услуг (опционально)
	TotalPrice       *float64          // Итоговая цена от клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID     int64  // ID созданного бронирования
	Name   string // Имя клиента
	Phone  string // Телефон
	Email  string // Email владельца
	UserID *int64 // ID пользователя, если бронирование создано авторизованным

	Date string // "2025-10-15"
	Time string // "10:00"

	Service1         string
	Service2         *string
	SelectedServices *string  // Детализация услуг
	TotalPrice       *float64 // Итоговая цена

	Status  string  // Статус бронирования
	Remarks *string // Сводка услуг

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
