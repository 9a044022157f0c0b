package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
)

// Routes обработчики HTTP API
type Routes struct {
	Health http.HandlerFunc

	// Бронирования клиента
	CreateBooking http.HandlerFunc
	MyBookings    http.HandlerFunc
	CancelMine    http.HandlerFunc

	// Администрирование бронирований
	ListAll       http.HandlerFunc
	ListToday     http.HandlerFunc
	Search        http.HandlerFunc
	ListByDate    http.HandlerFunc
	ListRange     http.HandlerFunc
	GetBooking    http.HandlerFunc
	MarkDone      http.HandlerFunc
	MarkConfirmed http.HandlerFunc
	MarkCancelled http.HandlerFunc
	MarkResched   http.HandlerFunc

	// Календарь
	CalendarCounts  http.HandlerFunc
	CalendarEvents  http.HandlerFunc
	CalendarMonthly http.HandlerFunc
	DaySlots        http.HandlerFunc

	// Настройки
	GetSlotPolicy    http.HandlerFunc
	UpdateSlotPolicy http.HandlerFunc
}

// Options инфраструктура роутера
type Options struct {
	Auth   *middleware.Authenticator
	Logger middleware.Logger

	// GuestLimit ограничение создания бронирований гостями, nil отключает
	GuestLimit func(http.Handler) http.Handler

	// Metrics и MetricsHandler задаются, только если метрики включены
	Metrics        middleware.HTTPRecorder
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter собирает маршруты API
func NewRouter(routes Routes, opts Options) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = handlers.NotFoundHandler()
	r.MethodNotAllowedHandler = handlers.MethodNotAllowedHandler()

	r.Use(middleware.RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	r.HandleFunc("/health", routes.Health).Methods(http.MethodGet)
	if opts.MetricsHandler != nil {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Создание бронирования: гость или авторизованный пользователь
	var create http.Handler = routes.CreateBooking
	if opts.GuestLimit != nil {
		create = opts.GuestLimit(create)
	}
	api.Handle("/bookings", opts.Auth.OptionalAuth(create)).Methods(http.MethodPost)

	api.HandleFunc("/calendar", routes.CalendarCounts).Methods(http.MethodGet)
	api.HandleFunc("/calendar/events", routes.CalendarEvents).Methods(http.MethodGet)
	api.HandleFunc("/calendar/monthly", routes.CalendarMonthly).Methods(http.MethodGet)
	api.HandleFunc("/calendar/slots", routes.DaySlots).Methods(http.MethodGet)

	api.HandleFunc("/settings/slot-policy", routes.GetSlotPolicy).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(opts.Auth.RequireAuth)

	protected.HandleFunc("/bookings/me", routes.MyBookings).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/cancel", routes.CancelMine).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (роль admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(opts.Auth.RequireAdmin)

	// Статические пути регистрируются до /bookings/{bookingId}
	admin.HandleFunc("/bookings", routes.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/today", routes.ListToday).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/search", routes.Search).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/range", routes.ListRange).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/date/{date}", routes.ListByDate).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", routes.GetBooking).Methods(http.MethodGet)

	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/done", routes.MarkDone).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/confirm", routes.MarkConfirmed).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", routes.MarkCancelled).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/reschedule", routes.MarkResched).Methods(http.MethodPost)

	admin.HandleFunc("/settings/slot-policy", routes.UpdateSlotPolicy).Methods(http.MethodPut)

	return r
}
