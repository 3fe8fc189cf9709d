// Package metrics defines the Prometheus collectors used by the lookup
// service and serves them for scraping from the registry they were
// registered with.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInFlight   prometheus.Gauge
	LookupsTotal           *prometheus.CounterVec
	LookupLatency          *prometheus.HistogramVec
	DatasetBanks           prometheus.Gauge
	DatasetBranches        prometheus.Gauge
	DatasetLoadDuration    prometheus.Gauge
	AnalyticsEventsDropped prometheus.Counter
	StoreCircuitState      *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// New creates all metrics and registers them with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics and registers them with reg. If reg is
// also a Gatherer (a *prometheus.Registry is) Handler scrapes it; otherwise
// Handler scrapes the default gatherer.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	gatherer, ok := reg.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}
	m := &Metrics{
		gatherer: gatherer,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zengin_lookups_total",
				Help: "Total lookups by mode, kind (banks, bank, branches, branch), and result (found, absent, error).",
			},
			[]string{"mode", "kind", "result"},
		),
		LookupLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zengin_lookup_latency_seconds",
				Help:    "Lookup latency in seconds.",
				Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"mode", "kind"},
		),
		DatasetBanks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "zengin_dataset_banks",
				Help: "Number of banks in the loaded dataset.",
			},
		),
		DatasetBranches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "zengin_dataset_branches",
				Help: "Number of branches across all banks in the loaded dataset.",
			},
		),
		DatasetLoadDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "zengin_dataset_load_duration_seconds",
				Help: "Time taken by the last dataset load.",
			},
		),
		AnalyticsEventsDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "zengin_analytics_events_dropped_total",
				Help: "Lookup events dropped because the analytics buffer was full.",
			},
		),
		StoreCircuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "zengin_store_circuit_state",
				Help: "Circuit breaker state per remote store (0 closed, 1 open, 2 half-open).",
			},
			[]string{"store"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.LookupsTotal,
		m.LookupLatency,
		m.DatasetBanks,
		m.DatasetBranches,
		m.DatasetLoadDuration,
		m.AnalyticsEventsDropped,
		m.StoreCircuitState,
	)

	return m
}

// Handler returns the scrape handler for the registry m was created with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
		Timeout:       5 * time.Second,
	})
}

// StartServer serves Handler at /metrics on port in the background and
// returns its shutdown function.
func (m *Metrics) StartServer(port int) (shutdown func(context.Context) error) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		slog.Info("metrics server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "addr", server.Addr, "error", err)
		}
	}()

	return server.Shutdown
}
