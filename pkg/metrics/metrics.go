package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec

	ApprovalsTotal     *prometheus.CounterVec
	RejectionsTotal    *prometheus.CounterVec
	BlocksCreatedTotal *prometheus.CounterVec

	serviceName string
}

// New создает и регистрирует метрики в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registry
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		ApprovalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "event_request_approvals_total",
			Help: "Event request approval attempts by result",
		}, []string{"service", "result"}),
		RejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "event_request_rejections_total",
			Help: "Event request rejections",
		}, []string{"service"}),
		BlocksCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blocked_slots_created_total",
			Help: "Blocked slots created by scope",
		}, []string{"service", "scope"}),

		serviceName: serviceName,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.ApprovalsTotal,
		m.RejectionsTotal,
		m.BlocksCreatedTotal,
	)

	return m
}

// ObserveApproval учитывает попытку одобрения заявки (result: approved | conflict | error)
func (m *Metrics) ObserveApproval(result string) {
	if m == nil {
		return
	}
	m.ApprovalsTotal.WithLabelValues(m.serviceName, result).Inc()
}

// ObserveRejection учитывает отклонение заявки
func (m *Metrics) ObserveRejection() {
	if m == nil {
		return
	}
	m.RejectionsTotal.WithLabelValues(m.serviceName).Inc()
}

// AddBlocksCreated учитывает созданные блокировки слотов
func (m *Metrics) AddBlocksCreated(scope string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.BlocksCreatedTotal.WithLabelValues(m.serviceName, scope).Add(float64(n))
}
