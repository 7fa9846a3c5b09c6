package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/core"
)

func quadMeshVertices() []MeshVertex {
	return []MeshVertex{
		{Position: core.Vec3{X: -1, Y: -1}, Normal: core.Vec3{Z: 1}, UV: core.Vec2{X: 0, Y: 0}},
		{Position: core.Vec3{X: 1, Y: -1}, Normal: core.Vec3{Z: 1}, UV: core.Vec2{X: 1, Y: 0}},
		{Position: core.Vec3{X: 1, Y: 1}, Normal: core.Vec3{Z: 1}, UV: core.Vec2{X: 1, Y: 1}},
		{Position: core.Vec3{X: -1, Y: 1}, Normal: core.Vec3{Z: 1}, UV: core.Vec2{X: 0, Y: 1}},
	}
}

func TestNewTriangleMeshRejectsNonTripleIndices(t *testing.T) {
	_, err := NewTriangleMesh(quadMeshVertices(), []uint32{0, 1}, unlitLambert())
	assert.Error(t, err)
}

func TestNewTriangleMeshRejectsOutOfBoundsIndex(t *testing.T) {
	_, err := NewTriangleMesh(quadMeshVertices(), []uint32{0, 1, 99}, unlitLambert())
	assert.Error(t, err)
}

func TestTriangleMeshHitsEitherTriangleOfAQuad(t *testing.T) {
	mesh, err := NewTriangleMesh(quadMeshVertices(), []uint32{0, 1, 2, 0, 2, 3}, unlitLambert())
	require.NoError(t, err)
	assert.Equal(t, 2, mesh.TriangleCount())

	ray := core.NewRay(core.Vec3{Z: 5}, core.Vec3{Z: -1})
	hit, ok := mesh.Hit(ray, 0, 1000)
	require.True(t, ok)
	assert.InDelta(t, 5.0, hit.T, 1e-9)
}

func TestTriangleMeshBoundingBoxCoversVertices(t *testing.T) {
	mesh, err := NewTriangleMesh(quadMeshVertices(), []uint32{0, 1, 2, 0, 2, 3}, unlitLambert())
	require.NoError(t, err)

	box := mesh.BoundingBox()
	assert.InDelta(t, -1.0, box.Min.X, 1e-9)
	assert.InDelta(t, 1.0, box.Max.X, 1e-9)
}
