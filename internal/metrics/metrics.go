// Package metrics defines the Prometheus collectors for the completion server
// and serves them over HTTP for scraping.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	CompletionLatency prometheus.Histogram
	ResultsCount      prometheus.Histogram
	IndexedTerms      prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordkit_requests_total",
				Help: "Total IPC requests by type (complete, count, add, stats) and status.",
			},
			[]string{"type", "status"},
		),
		CompletionLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wordkit_completion_latency_seconds",
				Help:    "Completion latency in seconds.",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
		),
		ResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wordkit_completion_results",
				Help:    "Number of suggestions returned per completion.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		IndexedTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordkit_indexed_terms",
				Help: "Number of terms in the suggestion index.",
			},
		),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.CompletionLatency,
		m.ResultsCount,
		m.IndexedTerms,
	)
	return m
}

// ObserveRequest counts one request of the given type and status.
func (m *Metrics) ObserveRequest(kind, status string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(kind, status).Inc()
}

// ObserveCompletion records the latency and size of one completion.
func (m *Metrics) ObserveCompletion(elapsed time.Duration, results int) {
	if m == nil {
		return
	}
	m.CompletionLatency.Observe(elapsed.Seconds())
	m.ResultsCount.Observe(float64(results))
}

// SetIndexedTerms sets the indexed terms gauge.
func (m *Metrics) SetIndexedTerms(n int) {
	if m == nil {
		return
	}
	m.IndexedTerms.Set(float64(n))
}

// Handler returns the scrape handler for the collectors in g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", Handler(g))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Metrics server shutdown: %v", err)
		}
	}()

	log.Debugf("Serving metrics on %s/metrics", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
