package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса: HTTP, БД и бизнес-метрики бронирований.
// Все методы безопасны для nil-получателя, чтобы сервис работал с выключенными метриками.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries       *prometheus.CounterVec
	dbDuration      *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec
	dbWaitDurationS *prometheus.GaugeVec

	bookingsCreated   prometheus.Counter
	bookingsCancelled prometheus.Counter
	transitions       *prometheus.CounterVec
	todayActive       prometheus.Gauge
}

// New регистрирует метрики в глобальном реестре Prometheus.
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре.
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueries: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		dbOpenConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Open connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbInUseConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Connections currently in use.",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbIdleConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Idle connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbWaitDurationS: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_wait_duration_seconds",
			Help:        "Total time blocked waiting for a connection.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		bookingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created.",
			ConstLabels: constLabels,
		}),
		bookingsCancelled: f.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Bookings cancelled by their owners.",
			ConstLabels: constLabels,
		}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Admin status transitions by target status.",
			ConstLabels: constLabels,
		}, []string{"status"}),
		todayActive: f.NewGauge(prometheus.GaugeOpts{
			Name:        "bookings_today_active",
			Help:        "Non-cancelled bookings for the current day.",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(operation, status).Inc()
	m.dbDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(db string, open, inUse, idle int, waitCount int64, waitDuration time.Duration) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(db).Set(float64(open))
	m.dbInUseConns.WithLabelValues(db).Set(float64(inUse))
	m.dbIdleConns.WithLabelValues(db).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(db).Set(float64(waitCount))
	m.dbWaitDurationS.WithLabelValues(db).Set(waitDuration.Seconds())
}

func (m *Metrics) IncBookingsCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

func (m *Metrics) AddBookingsCancelled(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bookingsCancelled.Add(float64(n))
}

func (m *Metrics) IncTransition(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

func (m *Metrics) SetTodayActive(n int) {
	if m == nil {
		return
	}
	m.todayActive.Set(float64(n))
}
