package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry: собственный реестр метрик сервиса (не глобальный default).
type Registry struct {
	reg *prometheus.Registry

	IngestRuns      *prometheus.CounterVec
	IngestedRecords prometheus.Gauge
	FetchSeconds    prometheus.Histogram
	BreakerState    *prometheus.GaugeVec
	HTTPRequests    *prometheus.CounterVec
	HTTPSeconds     *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	ingestRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purchase_ingest_runs_total",
		Help: "Fetch-and-store runs by outcome.",
	}, []string{"outcome"})
	ingested := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "purchase_ingested_records",
		Help: "Records written by the last successful ingestion.",
	})
	fetch := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "purchase_upstream_fetch_seconds",
		Help:    "Upstream fetch latency.",
		Buckets: prometheus.DefBuckets,
	})
	breaker := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "purchase_upstream_breaker_state",
		Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
	}, []string{"name"})
	httpReqs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purchase_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"route", "status"})
	httpSec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "purchase_http_request_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	r.MustRegister(
		ingestRuns, ingested, fetch, breaker, httpReqs, httpSec,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:             r,
		IngestRuns:      ingestRuns,
		IngestedRecords: ingested,
		FetchSeconds:    fetch,
		BreakerState:    breaker,
		HTTPRequests:    httpReqs,
		HTTPSeconds:     httpSec,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Gatherer нужен тестам для проверки значений.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
