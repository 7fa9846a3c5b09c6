package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rayshard/pathtracer/pkg/core"
)

// meshHeader is the fixed-size record at the start of a binary mesh
// stream: vertex/index/material counts, all little-endian uint32.
type meshHeader struct {
	VertexCount   uint32
	IndexCount    uint32
	MaterialCount uint32
}

// MeshVertex is one interleaved vertex record: position, shading normal,
// texture coordinate, and a tangent with a handedness sign in W (used for
// normal mapping, which this renderer doesn't implement yet but still
// preserves on load so a future material can consume it).
type MeshVertex struct {
	Position core.Vec3
	Normal   core.Vec3
	UV       core.Vec2
	Tangent  [4]float64
}

// MeshData is the raw result of reading a binary mesh stream: per-vertex
// records plus a flat triangle index list (3 indices per triangle) and a
// parallel per-triangle material index into whatever material table the
// caller maintains.
type MeshData struct {
	Vertices       []MeshVertex
	Indices        []uint32
	TriangleMatIdx []uint32
	MaterialCount  int
}

// vertexRecordSize is the byte size of one packed vertex: 3+3+2+4 float32s.
const vertexRecordSize = (3 + 3 + 2 + 4) * 4

// LoadMesh reads a binary mesh stream: a meshHeader followed by
// VertexCount packed vertex records, then IndexCount uint32 triangle
// indices, then (IndexCount/3) uint32 per-triangle material indices.
func LoadMesh(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaders: open mesh file: %w", err)
	}
	defer file.Close()

	return ReadMesh(bufio.NewReaderSize(file, 1<<20))
}

// ReadMesh reads a binary mesh stream from any io.Reader, so callers can
// feed it an embedded asset or a network stream as easily as a file.
func ReadMesh(r io.Reader) (*MeshData, error) {
	var header meshHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("loaders: read mesh header: %w", err)
	}

	vertexBytes := make([]byte, int(header.VertexCount)*vertexRecordSize)
	if _, err := io.ReadFull(r, vertexBytes); err != nil {
		return nil, fmt.Errorf("loaders: read vertex records: %w", err)
	}

	vertices := make([]MeshVertex, header.VertexCount)
	for i := range vertices {
		vertices[i] = parseMeshVertex(vertexBytes[i*vertexRecordSize : (i+1)*vertexRecordSize])
	}

	indices := make([]uint32, header.IndexCount)
	if err := binary.Read(r, binary.LittleEndian, &indices); err != nil {
		return nil, fmt.Errorf("loaders: read triangle indices: %w", err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("loaders: index count %d is not a multiple of 3", len(indices))
	}

	triangleCount := len(indices) / 3
	matIdx := make([]uint32, triangleCount)
	if err := binary.Read(r, binary.LittleEndian, &matIdx); err != nil {
		return nil, fmt.Errorf("loaders: read per-triangle material indices: %w", err)
	}

	return &MeshData{
		Vertices:       vertices,
		Indices:        indices,
		TriangleMatIdx: matIdx,
		MaterialCount:  int(header.MaterialCount),
	}, nil
}

func parseMeshVertex(data []byte) MeshVertex {
	f := func(offset int) float64 {
		return float64(readFloat32(data[offset : offset+4]))
	}

	return MeshVertex{
		Position: core.NewVec3(f(0), f(4), f(8)),
		Normal:   core.NewVec3(f(12), f(16), f(20)),
		UV:       core.NewVec2(f(24), f(28)),
		Tangent:  [4]float64{f(32), f(36), f(40), f(44)},
	}
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
