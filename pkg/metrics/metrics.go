package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	assistantCalls  *prometheus.CounterVec
	evidenceUploads prometheus.Counter
	jobRuns         *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "compliance",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "compliance",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		assistantCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "compliance",
			Name:      "assistant_requests_total",
			Help:      "Assistant requests by outcome.",
		}, []string{"outcome"}),
		evidenceUploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "compliance",
			Name:      "evidence_uploads_total",
			Help:      "Evidence records created.",
		}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "compliance",
			Name:      "job_runs_total",
			Help:      "Background job runs by job and outcome.",
		}, []string{"job", "outcome"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.assistantCalls,
		m.evidenceUploads,
		m.jobRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Metrics) AssistantRequest(failed bool) {
	outcome := "ok"
	if failed {
		outcome = "failed"
	}

	m.assistantCalls.WithLabelValues(outcome).Inc()
}

func (m *Metrics) EvidenceUploaded() {
	m.evidenceUploads.Inc()
}

func (m *Metrics) JobRun(name string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}

	m.jobRuns.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
