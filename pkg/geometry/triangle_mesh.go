package geometry

import (
	"fmt"

	"github.com/rayshard/pathtracer/pkg/core"
)

// MeshVertex is one packed vertex record as it arrives from the binary mesh
// stream: position, shading normal, texture coordinate, and a tangent
// (carried through for completeness even though the current material set
// has no anisotropic/normal-mapped BSDF that consumes it).
type MeshVertex struct {
	Position core.Vec3
	Normal   core.Vec3
	UV       core.Vec2
	Tangent  core.Vec3
	TangentW float64
}

// TriangleMesh is the indexed-triangle primitive: a flat vertex buffer plus
// a u32 index buffer, grouped into triangles three indices at a time and
// accelerated by its own BVH4 sub-tree so a mesh instance intersects in
// O(log n) regardless of how many triangles it contains.
type TriangleMesh struct {
	Vertices []MeshVertex
	Indices  []uint32
	triangle []*Triangle
	accel    *BVH4
	bbox     core.AABB
}

// NewTriangleMesh builds per-triangle shading data from the indexed buffers
// and packs the result into a BVH4, mirroring how any other multi-primitive
// group in the scene is accelerated.
func NewTriangleMesh(vertices []MeshVertex, indices []uint32, mat core.Material) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("triangle mesh: index count %d is not a multiple of 3", len(indices))
	}

	numTriangles := len(indices) / 3
	triangles := make([]*Triangle, 0, numTriangles)
	shapes := make([]Shape, 0, numTriangles)

	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := indices[i*3], indices[i*3+1], indices[i*3+2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			return nil, fmt.Errorf("triangle mesh: index out of bounds at triangle %d", i)
		}
		a, b, c := vertices[i0], vertices[i1], vertices[i2]
		tri := NewTriangleWithAttributes(a.Position, b.Position, c.Position, a.Normal, b.Normal, c.Normal, a.UV, b.UV, c.UV, mat)
		triangles = append(triangles, tri)
		shapes = append(shapes, tri)
	}

	accel := BuildBVH4(shapes)

	var bbox core.AABB
	if len(shapes) > 0 {
		bbox = shapes[0].BoundingBox()
		for _, s := range shapes[1:] {
			bbox = bbox.Union(s.BoundingBox())
		}
	}

	return &TriangleMesh{
		Vertices: vertices,
		Indices:  indices,
		triangle: triangles,
		accel:    accel,
		bbox:     bbox,
	}, nil
}

func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return tm.accel.Hit(ray, tMin, tMax)
}

func (tm *TriangleMesh) BoundingBox() core.AABB { return tm.bbox }
func (tm *TriangleMesh) Center() core.Vec3      { return tm.bbox.Center() }

func (tm *TriangleMesh) TriangleCount() int { return len(tm.triangle) }
