package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/core"
)

func TestLeafHitReturnsNearestMember(t *testing.T) {
	near := NewSphere(core.Vec3{Z: 2}, 0.5, unlitLambert())
	far := NewSphere(core.Vec3{Z: -2}, 0.5, unlitLambert())
	leaf := NewLeaf([]Shape{far, near})

	ray := core.NewRay(core.Vec3{Z: 10}, core.Vec3{Z: -1})
	hit, ok := leaf.Hit(ray, 0, 1000)
	require.True(t, ok)
	assert.InDelta(t, near.Origin.Z+near.Radius, hit.Point.Z, 1e-6)
}

func TestLeafMissWhenAllMembersMiss(t *testing.T) {
	a := NewSphere(core.Vec3{X: 20}, 0.5, unlitLambert())
	leaf := NewLeaf([]Shape{a})

	ray := core.NewRay(core.Vec3{Z: 10}, core.Vec3{Z: -1})
	_, ok := leaf.Hit(ray, 0, 1000)
	assert.False(t, ok)
}

func TestLeafBoundingBoxUnionsMembers(t *testing.T) {
	a := NewSphere(core.Vec3{X: -3}, 1.0, unlitLambert())
	b := NewSphere(core.Vec3{X: 3}, 1.0, unlitLambert())
	leaf := NewLeaf([]Shape{a, b})

	box := leaf.BoundingBox()
	assert.InDelta(t, -4.0, box.Min.X, 1e-9)
	assert.InDelta(t, 4.0, box.Max.X, 1e-9)
}

func TestNewLeafEmptyHasZeroBox(t *testing.T) {
	leaf := NewLeaf(nil)
	assert.Equal(t, core.AABB{}, leaf.BoundingBox())
}
