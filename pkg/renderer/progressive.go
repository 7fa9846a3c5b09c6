package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rayshard/pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout.
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// defaultTileSize is the edge length of a scheduling tile; small enough
// that one slow tile (a dense Glass caustic, a directly-lit emitter) can't
// stall a whole pass on a single worker.
const defaultTileSize = 32

// Tile is one rectangular scheduling unit, carrying its own PCG-seeded
// generator so output is reproducible regardless of which worker renders it
// or in what order tiles are dispatched.
type Tile struct {
	ID     int
	Bounds image.Rectangle
	Random *rand.Rand
}

func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds, Random: rand.New(core.NewPCG32(uint64(id), 0xda3e39cb94b95bdb))}
}

// NewTileGrid partitions a width x height frame into tiles no larger than
// tileSize on a side; edge tiles are clipped to the frame.
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = defaultTileSize
	}

	var tiles []*Tile
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	id := 0
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileSize, ty*tileSize
			x1, y1 := min(x0+tileSize, width), min(y0+tileSize, height)
			tiles = append(tiles, NewTile(id, image.Rect(x0, y0, x1, y1)))
			id++
		}
	}
	return tiles
}

// ProgressiveConfig tunes the pass schedule. Each pass adds SamplesPerPass
// more samples to the accumulator, capped by SamplingConfig.SamplesPerPixel.
type ProgressiveConfig struct {
	TileSize       int
	SamplesPerPass int
	NumWorkers     int
}

func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{TileSize: defaultTileSize, SamplesPerPass: 4, NumWorkers: 0}
}

// PassResult reports the accumulated preview image and stats after one pass.
type PassResult struct {
	PassNumber   int
	Image        *image.RGBA
	Elapsed      time.Duration
	Stats        RenderStats
	SamplesSoFar int
	IsLast       bool
}

// ProgressiveRaytracer supervises a WorkerPool across a schedule of passes,
// growing per-pixel sample count until the sample or time budget is spent.
type ProgressiveRaytracer struct {
	scene    core.Scene
	camera   *Camera
	width    int
	height   int
	config   core.SamplingConfig
	progCfg  ProgressiveConfig
	tiles    []*Tile
	pixels   [][]PixelStats
	logger   core.Logger
	metrics  Metrics
	stopFlag atomic.Bool
}

func NewProgressiveRaytracer(scene core.Scene, camera *Camera, config core.SamplingConfig, progCfg ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	tileSize := progCfg.TileSize
	if tileSize <= 0 {
		tileSize = defaultTileSize
	}

	return &ProgressiveRaytracer{
		scene:   scene,
		camera:  camera,
		width:   config.Width,
		height:  config.Height,
		config:  config,
		progCfg: progCfg,
		tiles:   NewTileGrid(config.Width, config.Height, tileSize),
		pixels:  NewPixelStatsGrid(config.Width, config.Height),
		logger:  logger,
		metrics: NewNoopMetrics(),
	}
}

// RequestStop asks RenderProgressive to finish its current pass and return
// rather than continue toward the sample or time budget.
func (pr *ProgressiveRaytracer) RequestStop() { pr.stopFlag.Store(true) }

// SetMetrics attaches a Metrics sink (e.g. PrometheusMetrics) that the
// render loop reports tile/pass/ray counters to as it runs. Optional; the
// default is a no-op sink.
func (pr *ProgressiveRaytracer) SetMetrics(m Metrics) {
	if m != nil {
		pr.metrics = m
	}
}

// samplesForPass caps the requested per-pass sample count so the cumulative
// total across all prior passes never exceeds the configured target.
func (pr *ProgressiveRaytracer) samplesForPass(samplesSoFar int) int {
	remaining := pr.config.SamplesPerPixel - samplesSoFar
	if remaining <= 0 {
		return 0
	}
	if pr.progCfg.SamplesPerPass > 0 && pr.progCfg.SamplesPerPass < remaining {
		return pr.progCfg.SamplesPerPass
	}
	return remaining
}

// RenderProgressive runs passes until the sample budget (SamplesPerPixel),
// the time budget (MaxRenderingSec), ctx cancellation, or RequestStop ends
// it. Each completed pass is sent on the returned channel, which is closed
// when rendering stops. snapshotFn, if non-nil, is invoked synchronously
// after each pass completes and before it is sent on the channel, so a
// caller can persist an intermediate frame to disk as rendering progresses.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, snapshotFn func(PassResult)) <-chan PassResult {
	out := make(chan PassResult)

	go func() {
		defer close(out)

		factory := func() *Raytracer {
			return NewRaytracer(pr.scene, pr.camera, pr.width, pr.height, pr.config)
		}
		pool := NewWorkerPool(factory, pr.progCfg.NumWorkers, len(pr.tiles)+1)
		defer pool.Stop()

		pr.logger.Printf("starting progressive render: %dx%d, target %d samples/pixel, %d workers\n",
			pr.width, pr.height, pr.config.SamplesPerPixel, pool.NumWorkers())

		start := time.Now()
		samplesSoFar := 0
		passNumber := 0

		for {
			if ctx.Err() != nil || pr.stopFlag.Load() {
				pr.logger.Printf("render stopped before completion: pass %d, %d/%d samples\n", passNumber, samplesSoFar, pr.config.SamplesPerPixel)
				return
			}
			if pr.config.MaxRenderingSec > 0 && time.Since(start).Seconds() >= pr.config.MaxRenderingSec {
				pr.logger.Printf("render stopped: time budget of %.1fs exhausted at %d/%d samples\n", pr.config.MaxRenderingSec, samplesSoFar, pr.config.SamplesPerPixel)
				return
			}

			samplesThisPass := pr.samplesForPass(samplesSoFar)
			if samplesThisPass <= 0 {
				pr.logger.Printf("render complete: %d samples/pixel over %d passes\n", samplesSoFar, passNumber)
				return
			}

			passStart := time.Now()
			for _, tile := range pr.tiles {
				pool.SubmitTask(TileTask{Tile: tile, TaskID: tile.ID, SamplesThisPass: samplesThisPass, PixelStats: pr.pixels})
			}

			passStats := RenderStats{}
			for range pr.tiles {
				result, ok := pool.GetResult()
				if !ok {
					pr.logger.Printf("worker pool closed unexpectedly mid-pass\n")
					return
				}
				passStats.TotalPixels += result.Stats.TotalPixels
				passStats.TotalSamples += result.Stats.TotalSamples
				pr.metrics.RecordTile()
			}

			samplesSoFar += samplesThisPass
			passNumber++
			isLast := samplesSoFar >= pr.config.SamplesPerPixel
			passElapsed := time.Since(passStart)
			pr.metrics.RecordPass(samplesThisPass, passElapsed)
			pr.metrics.AddRays(passStats.TotalSamples)

			pr.logger.Printf("pass %d done in %v: %d/%d samples/pixel\n", passNumber, passElapsed, samplesSoFar, pr.config.SamplesPerPixel)

			result := PassResult{
				PassNumber:   passNumber,
				Image:        pr.assembleImage(),
				Elapsed:      time.Since(start),
				Stats:        passStats,
				SamplesSoFar: samplesSoFar,
				IsLast:       isLast,
			}

			if snapshotFn != nil {
				snapshotFn(result)
			}

			select {
			case out <- result:
			case <-ctx.Done():
				return
			}

			if isLast {
				return
			}
		}
	}()

	return out
}

// LinearPixels flattens the accumulated per-pixel mean radiance into a
// row-major []core.Vec3, the raw linear-light buffer a caller hands to
// imageio's denoiser and tone mapper before encoding a final image.
func (pr *ProgressiveRaytracer) LinearPixels() []core.Vec3 {
	out := make([]core.Vec3, pr.width*pr.height)
	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			out[y*pr.width+x] = pr.pixels[y][x].GetColor()
		}
	}
	return out
}

func (pr *ProgressiveRaytracer) assembleImage() *image.RGBA {
	bounds := image.Rect(0, 0, pr.width, pr.height)
	img := image.NewRGBA(bounds)
	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(pr.pixels[y][x].GetColor()))
		}
	}
	return img
}
