package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты для счетчиков
const (
	QuoteModel    = "model"
	QuoteFallback = "fallback"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Metrics набор метрик сервиса.
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	upstreamRequests    *prometheus.CounterVec
	upstreamDuration    *prometheus.HistogramVec
	pricingQuotes       *prometheus.CounterVec
	billUpdates         *prometheus.CounterVec
	exitTransitions     *prometheus.CounterVec
	pricingModelUp      prometheus.Gauge
	activeTransactions  prometheus.Gauge
	dbQueries           *prometheus.CounterVec
	dbQueryDuration     *prometheus.HistogramVec
	dbConnections       *prometheus.GaugeVec
}

// New регистрирует метрики в reg с префиксом serviceName
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_requests_total",
			Help:        "Calls to external collaborators by outcome",
			ConstLabels: labels,
		}, []string{"upstream", "operation", "outcome"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "upstream_request_duration_seconds",
			Help:        "Duration of calls to external collaborators",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"upstream", "operation"}),
		pricingQuotes: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "pricing_quotes_total",
			Help:        "Pricing quotes by source (model or fallback)",
			ConstLabels: labels,
		}, []string{"source"}),
		billUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bill_updates_total",
			Help:        "Bill amount updates pushed to the backend by result",
			ConstLabels: labels,
		}, []string{"result"}),
		exitTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "exit_transitions_total",
			Help:        "Exit transaction state transitions",
			ConstLabels: labels,
		}, []string{"state"}),
		pricingModelUp: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "pricing_model_up",
			Help:        "1 if the pricing model reported healthy on the last probe",
			ConstLabels: labels,
		}),
		activeTransactions: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "exit_transactions_active",
			Help:        "Exit transactions kept in memory",
			ConstLabels: labels,
		}),
		dbQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Database queries by operation and outcome",
			ConstLabels: labels,
		}, []string{"operation", "outcome"}),
		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		dbConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database pool connections by state",
			ConstLabels: labels,
		}, []string{"state"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// ObserveUpstream фиксирует вызов внешнего сервиса
func (m *Metrics) ObserveUpstream(upstream, operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(upstream, operation, outcome).Inc()
	m.upstreamDuration.WithLabelValues(upstream, operation).Observe(d.Seconds())
}

// IncPricingQuote фиксирует котировку (model или fallback)
func (m *Metrics) IncPricingQuote(source string) {
	if m == nil {
		return
	}
	m.pricingQuotes.WithLabelValues(source).Inc()
}

// IncBillUpdate фиксирует результат обновления суммы счета
func (m *Metrics) IncBillUpdate(result string) {
	if m == nil {
		return
	}
	m.billUpdates.WithLabelValues(result).Inc()
}

// IncExitTransition фиксирует переход транзакции выезда в состояние state
func (m *Metrics) IncExitTransition(state string) {
	if m == nil {
		return
	}
	m.exitTransitions.WithLabelValues(state).Inc()
}

// SetPricingModelUp выставляет состояние модели ценообразования
func (m *Metrics) SetPricingModelUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.pricingModelUp.Set(1)
		return
	}
	m.pricingModelUp.Set(0)
}

// SetActiveTransactions выставляет число транзакций выезда в памяти
func (m *Metrics) SetActiveTransactions(n int) {
	if m == nil {
		return
	}
	m.activeTransactions.Set(float64(n))
}

// ObserveDBQuery фиксирует SQL запрос
func (m *Metrics) ObserveDBQuery(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.dbQueries.WithLabelValues(operation, outcome).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetDBConnections выставляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

// DBQueries возвращает счетчик SQL запросов
func (m *Metrics) DBQueries(operation, outcome string) prometheus.Counter {
	return m.dbQueries.WithLabelValues(operation, outcome)
}

// PricingQuotes возвращает счетчик котировок с источником source
func (m *Metrics) PricingQuotes(source string) prometheus.Counter {
	return m.pricingQuotes.WithLabelValues(source)
}

// BillUpdates возвращает счетчик обновлений счета с результатом result
func (m *Metrics) BillUpdates(result string) prometheus.Counter {
	return m.billUpdates.WithLabelValues(result)
}

// ExitTransitions возвращает счетчик переходов в состояние state
func (m *Metrics) ExitTransitions(state string) prometheus.Counter {
	return m.exitTransitions.WithLabelValues(state)
}

// PricingModelUp возвращает gauge доступности модели
func (m *Metrics) PricingModelUp() prometheus.Gauge {
	return m.pricingModelUp
}

// ActiveTransactions возвращает gauge числа транзакций выезда
func (m *Metrics) ActiveTransactions() prometheus.Gauge {
	return m.activeTransactions
}
