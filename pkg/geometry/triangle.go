package geometry

import (
	"math"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Triangle is a single triangle, optionally carrying per-vertex normals and
// UVs (as produced by a triangle mesh); when absent the flat face normal
// and barycentric coordinates are used instead.
type Triangle struct {
	V0, V1, V2    core.Vec3
	N0, N1, N2    core.Vec3
	UV0, UV1, UV2 core.Vec2
	hasNormals    bool
	hasUVs        bool
	Material      core.Material

	normal core.Vec3
	bbox   core.AABB
	area   float64
}

func NewTriangle(v0, v1, v2 core.Vec3, mat core.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.init()
	return t
}

// NewTriangleWithAttributes builds a mesh triangle carrying per-vertex
// normals and UVs, materializing shading attributes at the barycentric hit
// location the way CalcParam does for the source shape set.
func NewTriangleWithAttributes(v0, v1, v2, n0, n1, n2 core.Vec3, uv0, uv1, uv2 core.Vec2, mat core.Material) *Triangle {
	t := &Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n0, N1: n1, N2: n2, hasNormals: true,
		UV0: uv0, UV1: uv1, UV2: uv2, hasUVs: true,
		Material: mat,
	}
	t.init()
	return t
}

func (t *Triangle) init() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	cross := edge1.Cross(edge2)
	t.normal = cross.Normalize()
	t.area = cross.Length() * 0.5
	t.bbox = core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

const triangleEpsilon = 1e-8

// Hit implements Möller–Trumbore; a near-zero determinant (parallel ray) or
// barycentrics outside (0,1) / summing past 1 are reported as a miss.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -triangleEpsilon && a < triangleEpsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < math.Max(tMin, hitEpsilon) || tHit > tMax {
		return nil, false
	}

	w := 1.0 - u - v
	outwardNormal := t.normal
	if t.hasNormals {
		outwardNormal = t.N0.Multiply(w).Add(t.N1.Multiply(u)).Add(t.N2.Multiply(v)).Normalize()
	}

	uv := core.Vec2{X: u, Y: v}
	if t.hasUVs {
		uv = t.UV0.Multiply(w).Add(t.UV1.Multiply(u)).Add(t.UV2.Multiply(v))
	}

	hit := &core.HitRecord{T: tHit, Point: ray.At(tHit), UV: uv, Material: t.Material}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}

func (t *Triangle) BoundingBox() core.AABB { return t.bbox }
func (t *Triangle) Center() core.Vec3      { return t.bbox.Center() }
func (t *Triangle) Area() float64          { return t.area }

func (t *Triangle) SampleArea(u core.Vec2) (core.Vec3, core.Vec3, float64) {
	// Uniform barycentric sampling (Shirley's square-root trick).
	su0 := math.Sqrt(u.X)
	b0 := 1 - su0
	b1 := u.Y * su0
	point := t.V0.Multiply(b0).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(1 - b0 - b1))
	return point, t.normal, 1.0 / t.area
}
