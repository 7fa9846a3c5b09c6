package renderer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics receives operational counters from a running render; the
// renderer package only ever calls these methods, so a render never
// depends on Prometheus directly. main.go supplies a PrometheusMetrics
// when --metrics-addr is set, and a no-op otherwise.
type Metrics interface {
	RecordPass(samples int, elapsed time.Duration)
	RecordTile()
	AddRays(n int)
}

type noopMetrics struct{}

func (noopMetrics) RecordPass(int, time.Duration) {}
func (noopMetrics) RecordTile()                   {}
func (noopMetrics) AddRays(int)                   {}

// NewNoopMetrics returns a Metrics that discards everything, the default
// when no --metrics-addr is configured.
func NewNoopMetrics() Metrics { return noopMetrics{} }

// PrometheusMetrics exposes render progress as Prometheus collectors:
// total rays traced, tiles and passes completed, and a pass-duration
// histogram, registered against whatever Registerer the caller serves on
// its /metrics endpoint.
type PrometheusMetrics struct {
	raysTotal    prometheus.Counter
	tilesTotal   prometheus.Counter
	passesTotal  prometheus.Counter
	passDuration prometheus.Histogram
}

func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		raysTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathtracer", Name: "rays_traced_total",
			Help: "Total primary and scattered samples evaluated.",
		}),
		tilesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathtracer", Name: "tiles_completed_total",
			Help: "Total scheduling tiles completed across all passes.",
		}),
		passesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathtracer", Name: "passes_completed_total",
			Help: "Total progressive render passes completed.",
		}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pathtracer", Name: "pass_duration_seconds",
			Help:    "Wall-clock duration of one progressive render pass.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.raysTotal, m.tilesTotal, m.passesTotal, m.passDuration)
	return m
}

func (m *PrometheusMetrics) RecordPass(samples int, elapsed time.Duration) {
	m.passesTotal.Inc()
	m.passDuration.Observe(elapsed.Seconds())
}

func (m *PrometheusMetrics) RecordTile() { m.tilesTotal.Inc() }
func (m *PrometheusMetrics) AddRays(n int) {
	m.raysTotal.Add(float64(n))
}
