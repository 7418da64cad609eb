package metrics

import (
	"net/http"
	"strconv"
	"time"

	"insertion-route-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated Prometheus registry with the HTTP and route
// construction collectors registered on it. It implements
// ports.ConstructionRecorder and ports.DiagnosticObserver.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTPRequests counts requests by method, route pattern, and status
	HTTPRequests *prometheus.CounterVec
	// HTTPDuration records request durations in seconds
	HTTPDuration *prometheus.HistogramVec

	ConstructionRuns     prometheus.Counter
	RoutesOpened         prometheus.Counter
	Insertions           prometheus.Counter
	UnvisitedCustomers   prometheus.Counter
	CandidatesRejected   *prometheus.CounterVec
	ConstructionDuration prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
			[]string{"method", "path", "status"},
		),
		ConstructionRuns: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "construction_runs_total", Help: "Completed route construction runs."},
		),
		RoutesOpened: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "routes_opened_total", Help: "Vehicle routes seeded."},
		),
		Insertions: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "insertions_total", Help: "Customers inserted into a growing route."},
		),
		UnvisitedCustomers: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "unvisited_customers_total", Help: "Customers left unrouted at the end of a run."},
		),
		CandidatesRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "candidates_rejected_total", Help: "Candidate routes rejected, by first violated constraint."},
			[]string{"constraint"},
		),
		ConstructionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "construction_duration_seconds",
				Help:    "Wall time of a route construction run.",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
			},
		),
	}

	m.Registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ConstructionRuns,
		m.RoutesOpened,
		m.Insertions,
		m.UnvisitedCustomers,
		m.CandidatesRejected,
		m.ConstructionDuration,
		// Go/process collectors on our registry
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveHTTP(method, path string, status int, dur time.Duration) {
	code := strconv.Itoa(status)
	m.HTTPRequests.WithLabelValues(method, path, code).Inc()
	m.HTTPDuration.WithLabelValues(method, path, code).Observe(dur.Seconds())
}

func (m *Metrics) RouteOpened()  { m.RoutesOpened.Inc() }
func (m *Metrics) NodeInserted() { m.Insertions.Inc() }

func (m *Metrics) RunFinished(dur time.Duration, _ int, unvisited int) {
	m.ConstructionRuns.Inc()
	m.ConstructionDuration.Observe(dur.Seconds())
	m.UnvisitedCustomers.Add(float64(unvisited))
}

// Observe counts a rejected candidate under its constraint kind.
func (m *Metrics) Observe(d domain.Diagnostic) {
	m.CandidatesRejected.WithLabelValues(string(d.Kind)).Inc()
}
