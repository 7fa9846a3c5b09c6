package loaders

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/core"
)

func writeFloat32(buf *bytes.Buffer, v float64) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v)))
	buf.Write(b[:])
}

func encodeMeshVertex(buf *bytes.Buffer, v MeshVertex) {
	writeFloat32(buf, v.Position.X)
	writeFloat32(buf, v.Position.Y)
	writeFloat32(buf, v.Position.Z)
	writeFloat32(buf, v.Normal.X)
	writeFloat32(buf, v.Normal.Y)
	writeFloat32(buf, v.Normal.Z)
	writeFloat32(buf, v.UV.X)
	writeFloat32(buf, v.UV.Y)
	for _, t := range v.Tangent {
		writeFloat32(buf, t)
	}
}

func encodeMeshStream(t *testing.T, vertices []MeshVertex, indices []uint32, matIdx []uint32) []byte {
	t.Helper()
	var buf bytes.Buffer

	header := meshHeader{
		VertexCount:   uint32(len(vertices)),
		IndexCount:    uint32(len(indices)),
		MaterialCount: 1,
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, header))

	for _, v := range vertices {
		encodeMeshVertex(&buf, v)
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, indices))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, matIdx))

	return buf.Bytes()
}

func TestReadMeshSingleTriangle(t *testing.T) {
	vertices := []MeshVertex{
		{Position: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), UV: core.NewVec2(0, 0), Tangent: [4]float64{1, 0, 0, 1}},
		{Position: core.NewVec3(1, 0, 0), Normal: core.NewVec3(0, 0, 1), UV: core.NewVec2(1, 0), Tangent: [4]float64{1, 0, 0, 1}},
		{Position: core.NewVec3(0, 1, 0), Normal: core.NewVec3(0, 0, 1), UV: core.NewVec2(0, 1), Tangent: [4]float64{1, 0, 0, 1}},
	}
	indices := []uint32{0, 1, 2}
	matIdx := []uint32{0}

	data := encodeMeshStream(t, vertices, indices, matIdx)
	mesh, err := ReadMesh(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, mesh.Vertices, 3)
	assert.InDelta(t, 1.0, mesh.Vertices[1].Position.X, 1e-6)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Equal(t, []uint32{0}, mesh.TriangleMatIdx)
	assert.Equal(t, 1, mesh.MaterialCount)
}

func TestReadMeshRejectsNonTripleIndexCount(t *testing.T) {
	vertices := []MeshVertex{{}, {}, {}, {}}
	data := encodeMeshStream(t, vertices, []uint32{0, 1, 2, 3}, nil)
	_, err := ReadMesh(bytes.NewReader(data))
	assert.Error(t, err)
}

func TestReadMeshTruncatedStreamErrors(t *testing.T) {
	data := encodeMeshStream(t, []MeshVertex{{}, {}, {}}, []uint32{0, 1, 2}, []uint32{0})
	_, err := ReadMesh(bytes.NewReader(data[:len(data)-2]))
	assert.Error(t, err)
}
