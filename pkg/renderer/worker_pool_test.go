package renderer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/core"
	"github.com/rayshard/pathtracer/pkg/geometry"
	"github.com/rayshard/pathtracer/pkg/material"
)

// fakeScene is a minimal core.Scene so renderer package tests don't need to
// import pkg/scene (which itself imports pkg/renderer).
type fakeScene struct {
	bvh *geometry.BVH4
}

func (f *fakeScene) GetBVH() core.BVH               { return f.bvh }
func (f *fakeScene) GetLights() []core.Light        { return nil }
func (f *fakeScene) SampleEnvironment(core.Ray) core.Vec3 { return core.Vec3{} }

func tinyTestScene() *fakeScene {
	floor := geometry.NewSphere(core.Vec3{Z: -5}, 3.0, material.NewLambert(material.NewSolidColor(core.Vec3{X: 0.5, Y: 0.5, Z: 0.5})))
	return &fakeScene{bvh: geometry.BuildBVH4([]geometry.Shape{floor})}
}

func tinyCamera() *Camera {
	return NewCamera(CameraConfig{
		LookFrom: core.Vec3{Z: 5}, LookAt: core.Vec3{}, Up: core.Vec3{Y: 1},
		VFovDegrees: 60, AspectRatio: 1.0,
	})
}

func TestWorkerPoolProcessesAllSubmittedTasks(t *testing.T) {
	s := tinyTestScene()
	cam := tinyCamera()
	cfg := core.SamplingConfig{Width: 8, Height: 8, NumSubSamples: 1, MaxBounceCount: 2, RussianRouletteMinBounces: 1}

	factory := func() *Raytracer { return NewRaytracer(s, cam, 8, 8, cfg) }
	pool := NewWorkerPool(factory, 2, 4)

	pixelStats := NewPixelStatsGrid(8, 8)
	tiles := NewTileGrid(8, 8, 4)
	require.Len(t, tiles, 4)

	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: tile.ID, SamplesThisPass: 1, PixelStats: pixelStats})
	}

	total := RenderStats{}
	for range tiles {
		result, ok := pool.GetResult()
		require.True(t, ok)
		total.TotalPixels += result.Stats.TotalPixels
		total.TotalSamples += result.Stats.TotalSamples
	}
	pool.Stop()

	assert.Equal(t, 64, total.TotalPixels)
	assert.Greater(t, total.TotalSamples, 0)
}

func TestNewTileGridClipsEdgeTiles(t *testing.T) {
	tiles := NewTileGrid(10, 10, 8)
	require.Len(t, tiles, 4)

	var union image.Rectangle
	for i, tile := range tiles {
		if i == 0 {
			union = tile.Bounds
		} else {
			union = union.Union(tile.Bounds)
		}
	}
	assert.Equal(t, image.Rect(0, 0, 10, 10), union)
}

func TestWorkerPoolDefaultsWorkerCountWhenNonPositive(t *testing.T) {
	factory := func() *Raytracer { return NewRaytracer(tinyTestScene(), tinyCamera(), 1, 1, core.SamplingConfig{Width: 1, Height: 1, NumSubSamples: 1, MaxBounceCount: 1}) }
	pool := NewWorkerPool(factory, 0, 1)
	defer pool.Stop()
	assert.Greater(t, pool.NumWorkers(), 0)
}
