package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасно вызывать на nil-указателе (метрики выключены)
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge
	TransactionsTotal *prometheus.CounterVec

	AppointmentsCreated   prometheus.Counter
	AppointmentsCancelled *prometheus.CounterVec
	BookingConflicts      *prometheus.CounterVec
	SlotsPublished        prometheus.Counter
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "path"}),
		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: labels,
		}, []string{"operation"}),
		DBOpenConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		DBInUse: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),
		DBWaitCount: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		TransactionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_transactions_total",
			Help:        "Database transactions by isolation and result",
			ConstLabels: labels,
		}, []string{"isolation", "result"}),
		AppointmentsCreated: f.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments successfully booked",
			ConstLabels: labels,
		}),
		AppointmentsCancelled: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_cancelled_total",
			Help:        "Appointments cancelled by actor role",
			ConstLabels: labels,
		}, []string{"role"}),
		BookingConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Rejected bookings by reason",
			ConstLabels: labels,
		}, []string{"reason"}),
		SlotsPublished: f.NewCounter(prometheus.CounterOpts{
			Name:        "slots_published_total",
			Help:        "Time slots created",
			ConstLabels: labels,
		}),
	}
}

func (m *Metrics) ObserveHTTP(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func (m *Metrics) ObserveQuery(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
}

func (m *Metrics) IncTransaction(isolation, result string) {
	if m == nil {
		return
	}
	m.TransactionsTotal.WithLabelValues(isolation, result).Inc()
}

func (m *Metrics) IncAppointmentCreated() {
	if m == nil {
		return
	}
	m.AppointmentsCreated.Inc()
}

func (m *Metrics) IncAppointmentCancelled(role string) {
	if m == nil {
		return
	}
	m.AppointmentsCancelled.WithLabelValues(role).Inc()
}

func (m *Metrics) IncBookingConflict(reason string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(reason).Inc()
}

func (m *Metrics) AddSlotsPublished(n int) {
	if m == nil {
		return
	}
	m.SlotsPublished.Add(float64(n))
}
