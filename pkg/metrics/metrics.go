package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration *prometheus.HistogramVec
	DBConnsOpen     prometheus.Gauge
	DBConnsInUse    prometheus.Gauge
	DBConnsIdle     prometheus.Gauge
	DBTxRetriesTotal prometheus.Counter

	// Бизнес-метрики аллокации
	BookingsAllocatedTotal  prometheus.Counter
	BookingsQueuedTotal     prometheus.Counter
	BookingsCancelledTotal  prometheus.Counter
	WaitlistPromotionsTotal prometheus.Counter
	WaitlistRemovalsTotal   prometheus.Counter

	// Нарушения инвариантов хранилища. Ненулевое значение - повод для алерта:
	// либо гонка в аллокации, либо дыра в нумерации очереди.
	InvariantViolationsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики в default-регистре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		DBConnsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}),

		DBConnsInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}),

		DBConnsIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}),

		DBTxRetriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "db_tx_serialization_retries_total",
			Help:        "Total number of serializable transaction retries",
			ConstLabels: constLabels,
		}),

		BookingsAllocatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_allocated_total",
			Help:        "Total number of bookings allocated directly",
			ConstLabels: constLabels,
		}),

		BookingsQueuedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_queued_total",
			Help:        "Total number of booking requests diverted to the waiting list",
			ConstLabels: constLabels,
		}),

		BookingsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of cancelled bookings",
			ConstLabels: constLabels,
		}),

		WaitlistPromotionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "waitlist_promotions_total",
			Help:        "Total number of waiting list entries promoted to bookings",
			ConstLabels: constLabels,
		}),

		WaitlistRemovalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "waitlist_removals_total",
			Help:        "Total number of waiting list entries withdrawn by users",
			ConstLabels: constLabels,
		}),

		InvariantViolationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "invariant_violations_total",
			Help:        "Detected storage invariant violations (duplicate active slot, position gap)",
			ConstLabels: constLabels,
		}, []string{"entity"}),
	}
}

// Методы-обёртки, чтобы слоям не нужно было знать о типах prometheus.
// Контракты usecase/service принимают узкий Metrics-интерфейс.
// Безопасны для nil-получателя: при выключенных метриках в usecase
// попадает nil *Metrics.

func (m *Metrics) IncBookingAllocated() {
	if m != nil {
		m.BookingsAllocatedTotal.Inc()
	}
}

func (m *Metrics) IncBookingQueued() {
	if m != nil {
		m.BookingsQueuedTotal.Inc()
	}
}

func (m *Metrics) IncBookingCancelled() {
	if m != nil {
		m.BookingsCancelledTotal.Inc()
	}
}

func (m *Metrics) IncWaitlistPromotion() {
	if m != nil {
		m.WaitlistPromotionsTotal.Inc()
	}
}

func (m *Metrics) IncWaitlistRemoval() {
	if m != nil {
		m.WaitlistRemovalsTotal.Inc()
	}
}

func (m *Metrics) IncDBTxRetry() {
	if m != nil {
		m.DBTxRetriesTotal.Inc()
	}
}

func (m *Metrics) IncInvariantViolation(entity string) {
	if m != nil {
		m.InvariantViolationsTotal.WithLabelValues(entity).Inc()
	}
}
