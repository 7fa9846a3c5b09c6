package renderer

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/rayshard/pathtracer/pkg/core"
	"github.com/rayshard/pathtracer/pkg/integrator"
)

// RenderStats summarizes one RenderBounds call, used by the tile scheduler
// to report progress.
type RenderStats struct {
	TotalPixels  int
	TotalSamples int
}

// PixelStats accumulates the running mean radiance for a single pixel
// across passes; samples commute under addition so no ordering is required
// across workers writing disjoint tiles.
type PixelStats struct {
	ColorAccum  core.Vec3
	SampleCount int
}

func (ps *PixelStats) AddSample(c core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(c)
	ps.SampleCount++
}

func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Raytracer drives the path tracer over a fixed image size and sampling
// configuration, rendering either an arbitrary sub-rectangle (for tiled,
// parallel work) or the whole frame at once.
type Raytracer struct {
	scene      core.Scene
	camera     *Camera
	width      int
	height     int
	config     core.SamplingConfig
	integrator integrator.Integrator
}

func NewRaytracer(scene core.Scene, camera *Camera, width, height int, config core.SamplingConfig) *Raytracer {
	return &Raytracer{
		scene:      scene,
		camera:     camera,
		width:      width,
		height:     height,
		config:     config,
		integrator: integrator.NewPathTracer(),
	}
}

// RenderBounds renders samplesThisPass/NumSubSamples² samples (at least one)
// in each cell of the NumSubSamples x NumSubSamples stratification grid of
// every pixel of bounds, accumulating into the shared pixelStats grid (tiles are disjoint
// so concurrent writers never touch the same pixel).
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand, samplesThisPass int) RenderStats {
	subGrid := rt.config.NumSubSamples
	if subGrid < 1 {
		subGrid = 1
	}
	perCell := samplesThisPass / (subGrid * subGrid)
	if perCell < 1 {
		perCell = 1
	}

	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			for subY := 0; subY < subGrid; subY++ {
				for subX := 0; subX < subGrid; subX++ {
					for s := 0; s < perCell; s++ {
						ray := rt.camera.GetStratifiedRay(x, y, rt.width, rt.height, subX, subY, subGrid, random)
						c := rt.integrator.RayColor(ray, rt.scene, rt.config, random)
						ps.AddSample(c)
						stats.TotalSamples++
					}
				}
			}
		}
	}

	return stats
}

// vec3ToColor tone-maps nothing itself (that is the imageio package's job)
// — it just clamps and gamma-corrects a linear color for a raw preview.
func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.GammaCorrect(2.2).Clamp(0, 1)
	return color.RGBA{R: uint8(255 * c.X), G: uint8(255 * c.Y), B: uint8(255 * c.Z), A: 255}
}

// RenderPass runs RenderBounds over the whole frame, accumulating into
// pixelStats (so subsequent passes can keep accumulating into it), and
// returns a preview image of the accumulated means plus the pass's
// RenderStats.
func (rt *Raytracer) RenderPass(pixelStats [][]PixelStats, random *rand.Rand, samplesThisPass int) (*image.RGBA, RenderStats) {
	bounds := image.Rect(0, 0, rt.width, rt.height)
	stats := rt.RenderBounds(bounds, pixelStats, random, samplesThisPass)

	img := image.NewRGBA(bounds)
	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}

	return img, stats
}

// NewPixelStatsGrid allocates a width x height grid of zeroed PixelStats.
func NewPixelStatsGrid(width, height int) [][]PixelStats {
	grid := make([][]PixelStats, height)
	for y := range grid {
		grid[y] = make([]PixelStats, width)
	}
	return grid
}
