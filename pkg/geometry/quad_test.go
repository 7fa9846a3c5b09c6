package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/core"
)

func TestQuadHitInsideBounds(t *testing.T) {
	q := NewQuad(core.Vec3{X: -1, Y: -1, Z: 0}, core.Vec3{X: 2}, core.Vec3{Y: 2}, unlitLambert())
	ray := core.NewRay(core.Vec3{Z: 5}, core.Vec3{Z: -1})

	hit, ok := q.Hit(ray, 0, 1000)
	require.True(t, ok)
	assert.InDelta(t, 5.0, hit.T, 1e-9)
	assert.InDelta(t, 0.5, hit.UV.X, 1e-9)
	assert.InDelta(t, 0.5, hit.UV.Y, 1e-9)
}

func TestQuadMissOutsideBounds(t *testing.T) {
	q := NewQuad(core.Vec3{X: -1, Y: -1, Z: 0}, core.Vec3{X: 2}, core.Vec3{Y: 2}, unlitLambert())
	ray := core.NewRay(core.Vec3{X: 10, Z: 5}, core.Vec3{Z: -1})

	_, ok := q.Hit(ray, 0, 1000)
	assert.False(t, ok)
}

func TestQuadParallelRayMisses(t *testing.T) {
	q := NewQuad(core.Vec3{X: -1, Y: -1, Z: 0}, core.Vec3{X: 2}, core.Vec3{Y: 2}, unlitLambert())
	ray := core.NewRay(core.Vec3{Z: 5}, core.Vec3{X: 1}) // travels in-plane-parallel direction

	_, ok := q.Hit(ray, 0, 1000)
	assert.False(t, ok)
}

func TestQuadAreaMatchesEdgeCrossProduct(t *testing.T) {
	q := NewQuad(core.Vec3{}, core.Vec3{X: 3}, core.Vec3{Y: 4}, unlitLambert())
	assert.InDelta(t, 12.0, q.Area(), 1e-9)
}

func TestQuadSampleAreaWithinBounds(t *testing.T) {
	q := NewQuad(core.Vec3{X: -1, Y: -1, Z: 0}, core.Vec3{X: 2}, core.Vec3{Y: 2}, unlitLambert())
	point, normal, pdf := q.SampleArea(core.Vec2{X: 0.25, Y: 0.75})

	assert.InDelta(t, -0.5, point.X, 1e-9)
	assert.InDelta(t, 0.5, point.Y, 1e-9)
	assert.InDelta(t, 1.0, normal.Length(), 1e-9)
	assert.Greater(t, pdf, 0.0)
}
