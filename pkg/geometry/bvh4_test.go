package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/core"
)

func TestBuildBVH4Empty(t *testing.T) {
	bvh := BuildBVH4(nil)
	_, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.Vec3{Z: -1}), 0, 1000)
	assert.False(t, ok)
}

func TestBuildBVH4SingleShape(t *testing.T) {
	s := NewSphere(core.Vec3{}, 1.0, unlitLambert())
	bvh := BuildBVH4([]Shape{s})

	hit, ok := bvh.Hit(core.NewRay(core.Vec3{Z: 5}, core.Vec3{Z: -1}), 0, 1000)
	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.T, 1e-9)
}

func TestBuildBVH4TwoShapesNearestFirst(t *testing.T) {
	near := NewSphere(core.Vec3{Z: 2}, 0.5, unlitLambert())
	far := NewSphere(core.Vec3{Z: -2}, 0.5, unlitLambert())
	bvh := BuildBVH4([]Shape{far, near})

	hit, ok := bvh.Hit(core.NewRay(core.Vec3{Z: 10}, core.Vec3{Z: -1}), 0, 1000)
	require.True(t, ok)
	assert.InDelta(t, near.Origin.Z+near.Radius, hit.Point.Z, 1e-6, "traversal must report the nearer sphere's hit, not the farther one")
}

func TestBuildBVH4ManyShapesFindsClosest(t *testing.T) {
	var shapes []Shape
	for i := 0; i < 50; i++ {
		z := float64(i) * 2.0
		shapes = append(shapes, NewSphere(core.Vec3{Z: z}, 0.5, unlitLambert()))
	}
	bvh := BuildBVH4(shapes)

	ray := core.NewRay(core.Vec3{Z: -10}, core.Vec3{Z: 1})
	hit, ok := bvh.Hit(ray, 0, 1000)
	require.True(t, ok)
	assert.InDelta(t, -0.5, hit.Point.Z, 1e-6, "the nearest sphere along the ray (z=0, radius 0.5) should be hit first")
}

func TestBuildBVH4BoundingBoxUnionsChildren(t *testing.T) {
	a := NewSphere(core.Vec3{X: -5}, 1.0, unlitLambert())
	b := NewSphere(core.Vec3{X: 5}, 1.0, unlitLambert())
	bvh := BuildBVH4([]Shape{a, b})

	box := bvh.BoundingBox()
	assert.InDelta(t, -6.0, box.Min.X, 1e-9)
	assert.InDelta(t, 6.0, box.Max.X, 1e-9)
}
