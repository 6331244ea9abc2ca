package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ChatIntents    *prometheus.CounterVec
	UpstreamErrors *prometheus.CounterVec
	OrderSummaries *prometheus.CounterVec
	Events         *prometheus.CounterVec
	LLMLatency     *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ChatIntents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_intents_total",
			Help:      "Customer chat messages by detected intent.",
		}, []string{"intent"}),
		UpstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Failed calls to external services by service.",
		}, []string{"service"}),
		OrderSummaries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_summaries_total",
			Help:      "Order summaries by decoded kind (structured or raw).",
		}, []string{"kind"}),
		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Published events by kind and result.",
		}, []string{"kind", "result"}),
		LLMLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_latency_seconds",
			Help:      "LLM completion latency by operation and status.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		}, []string{"op", "status"}),
		gatherer: reg,
	}
}

func (m *Metrics) RecordIntent(intent string) {
	m.ChatIntents.WithLabelValues(intent).Inc()
}

func (m *Metrics) RecordSummary(kind string) {
	m.OrderSummaries.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordUpstreamError(service string) {
	m.UpstreamErrors.WithLabelValues(service).Inc()
}

func (m *Metrics) RecordEvent(kind string, err error) {
	m.Events.WithLabelValues(kind, result(err)).Inc()
}

func (m *Metrics) ObserveLLM(op string, d time.Duration, err error) {
	m.LLMLatency.WithLabelValues(op, result(err)).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
