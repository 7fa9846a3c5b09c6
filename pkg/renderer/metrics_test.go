package renderer

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetricsDoesNothing(t *testing.T) {
	m := NewNoopMetrics()
	assert.NotPanics(t, func() {
		m.RecordTile()
		m.RecordPass(4, time.Millisecond)
		m.AddRays(100)
	})
}

func TestPrometheusMetricsRecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.RecordTile()
	m.RecordTile()
	m.RecordPass(8, 50*time.Millisecond)
	m.AddRays(1024)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	found := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				found[f.GetName()] = c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, found["pathtracer_tiles_completed_total"])
	assert.Equal(t, 1.0, found["pathtracer_passes_completed_total"])
	assert.Equal(t, 1024.0, found["pathtracer_rays_traced_total"])
}
