package renderer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/core"
)

type silentLogger struct{}

func (silentLogger) Printf(string, ...interface{}) {}

func TestRenderProgressiveAccumulatesToTargetSamples(t *testing.T) {
	s := tinyTestScene()
	cam := tinyCamera()
	cfg := core.SamplingConfig{Width: 4, Height: 4, NumSubSamples: 1, SamplesPerPixel: 4, MaxBounceCount: 2, RussianRouletteMinBounces: 1}
	progCfg := ProgressiveConfig{TileSize: 4, SamplesPerPass: 2, NumWorkers: 1}

	pr := NewProgressiveRaytracer(s, cam, cfg, progCfg, silentLogger{})

	var last PassResult
	for result := range pr.RenderProgressive(context.Background(), nil) {
		last = result
	}

	assert.True(t, last.IsLast)
	assert.Equal(t, 4, last.SamplesSoFar)
	assert.Equal(t, 2, last.PassNumber)
}

func TestRenderProgressiveStopsOnRequestStop(t *testing.T) {
	s := tinyTestScene()
	cam := tinyCamera()
	cfg := core.SamplingConfig{Width: 4, Height: 4, NumSubSamples: 1, SamplesPerPixel: 100, MaxBounceCount: 2, RussianRouletteMinBounces: 1}
	progCfg := ProgressiveConfig{TileSize: 4, SamplesPerPass: 1, NumWorkers: 1}

	pr := NewProgressiveRaytracer(s, cam, cfg, progCfg, silentLogger{})
	pr.RequestStop()

	count := 0
	for range pr.RenderProgressive(context.Background(), nil) {
		count++
	}
	assert.Equal(t, 0, count, "a stop requested before the first pass must yield no results")
}

func TestRenderProgressiveHonorsContextCancellation(t *testing.T) {
	s := tinyTestScene()
	cam := tinyCamera()
	cfg := core.SamplingConfig{Width: 4, Height: 4, NumSubSamples: 1, SamplesPerPixel: 100, MaxBounceCount: 2, RussianRouletteMinBounces: 1}
	progCfg := ProgressiveConfig{TileSize: 4, SamplesPerPass: 1, NumWorkers: 1}

	pr := NewProgressiveRaytracer(s, cam, cfg, progCfg, silentLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for range pr.RenderProgressive(ctx, nil) {
		t.Fatal("an already-cancelled context must yield no passes")
	}
}

func TestSamplesForPassCapsAtRemainingBudget(t *testing.T) {
	s := tinyTestScene()
	cam := tinyCamera()
	cfg := core.SamplingConfig{Width: 2, Height: 2, SamplesPerPixel: 10}
	progCfg := ProgressiveConfig{SamplesPerPass: 4}
	pr := NewProgressiveRaytracer(s, cam, cfg, progCfg, silentLogger{})

	require.Equal(t, 4, pr.samplesForPass(0))
	require.Equal(t, 2, pr.samplesForPass(8))
	require.Equal(t, 0, pr.samplesForPass(10))
}

func TestLinearPixelsMatchesImageDimensions(t *testing.T) {
	s := tinyTestScene()
	cam := tinyCamera()
	cfg := core.SamplingConfig{Width: 3, Height: 2, SamplesPerPixel: 1}
	pr := NewProgressiveRaytracer(s, cam, cfg, ProgressiveConfig{}, silentLogger{})

	pixels := pr.LinearPixels()
	assert.Len(t, pixels, 6)
}
