package integrator_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/core"
	"github.com/rayshard/pathtracer/pkg/geometry"
	"github.com/rayshard/pathtracer/pkg/integrator"
	"github.com/rayshard/pathtracer/pkg/material"
	"github.com/rayshard/pathtracer/pkg/scene"
)

func newTestScene() *scene.Scene {
	s := &scene.Scene{}
	floor := geometry.NewQuad(
		core.Vec3{X: -5, Y: 0, Z: -5},
		core.Vec3{X: 10},
		core.Vec3{Z: 10},
		material.NewLambert(material.NewSolidColor(core.Vec3{X: 0.7, Y: 0.7, Z: 0.7})),
	)
	s.Shapes = append(s.Shapes, floor)

	emissiveMat := material.NewLambert(material.NewSolidColor(core.Vec3{}))
	emissiveMat.Emission = core.Vec3{X: 10, Y: 10, Z: 10}
	emissiveSphere := geometry.NewSphere(core.Vec3{X: 0, Y: 5, Z: 0}, 1.0, emissiveMat)
	s.AddAreaLight(emissiveSphere, core.Vec3{X: 10, Y: 10, Z: 10})
	s.Build()
	return s
}

func TestRayColorDirectHitOnEmitterReturnsFullEmission(t *testing.T) {
	s := newTestScene()
	pt := integrator.NewPathTracer()
	random := rand.New(rand.NewSource(42))

	ray := core.NewRay(core.Vec3{Y: 5, Z: 10}, core.Vec3{Z: -1})
	cfg := core.SamplingConfig{MaxBounceCount: 4, RussianRouletteMinBounces: 100}

	radiance := pt.RayColor(ray, s, cfg, random)
	assert.Greater(t, radiance.X, 0.0)
	// The emitter's albedo is zero, so nothing beyond its emission of 10 is added.
	assert.InDelta(t, 10.0, radiance.X, 1e-9)
}

func TestRayColorMissReturnsEnvironment(t *testing.T) {
	s := &scene.Scene{}
	s.Build()
	pt := integrator.NewPathTracer()
	random := rand.New(rand.NewSource(1))

	ray := core.NewRay(core.Vec3{}, core.Vec3{Y: 1})
	cfg := core.SamplingConfig{MaxBounceCount: 4, RussianRouletteMinBounces: 100}

	radiance := pt.RayColor(ray, s, cfg, random)
	assert.Equal(t, core.Vec3{}, radiance)
}

func TestRayColorAccumulatesDirectLightingOnDiffuseSurface(t *testing.T) {
	s := newTestScene()
	pt := integrator.NewPathTracer()
	random := rand.New(rand.NewSource(7))

	ray := core.NewRay(core.Vec3{X: 0, Y: 2, Z: 10}, core.Vec3{X: 0, Y: -0.3, Z: -1}.Normalize())
	cfg := core.SamplingConfig{MaxBounceCount: 4, RussianRouletteMinBounces: 100}

	radiance := pt.RayColor(ray, s, cfg, random)
	assert.GreaterOrEqual(t, radiance.X, 0.0)
}

func TestRayColorTerminatesWithinBounceBudget(t *testing.T) {
	s := newTestScene()
	pt := integrator.NewPathTracer()
	random := rand.New(rand.NewSource(3))

	ray := core.NewRay(core.Vec3{X: 0, Y: 0.5, Z: 3}, core.Vec3{Z: -1})
	cfg := core.SamplingConfig{MaxBounceCount: 2, RussianRouletteMinBounces: 1}

	require.NotPanics(t, func() {
		pt.RayColor(ray, s, cfg, random)
	})
}
