package geometry

import (
	"math"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Quad is a planar rectangle defined by a corner and two edge vectors,
// intersected via the plane equation plus a barycentric-style bounds test
// (Shirley's "quadrilaterals" formulation).
type Quad struct {
	Corner   core.Vec3
	U, V     core.Vec3
	Normal   core.Vec3
	Material core.Material
	d        float64
	w        core.Vec3
	area     float64
}

func NewQuad(corner, u, v core.Vec3, mat core.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()
	d := normal.Dot(corner)
	w := n.Multiply(1.0 / n.Dot(n))
	return &Quad{
		Corner: corner, U: u, V: v, Normal: normal,
		Material: mat, d: d, w: w, area: n.Length(),
	}
}

func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denom := ray.Direction.Dot(q.Normal)
	if math.Abs(denom) < 1e-8 {
		return nil, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denom
	if t < math.Max(tMin, hitEpsilon) || t > tMax {
		return nil, false
	}

	point := ray.At(t)
	hitVec := point.Subtract(q.Corner)
	alpha := q.w.Dot(hitVec.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(hitVec))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hit := &core.HitRecord{
		T:        t,
		Point:    point,
		UV:       core.Vec2{X: alpha, Y: beta},
		Material: q.Material,
	}
	hit.SetFaceNormal(ray, q.Normal)
	return hit, true
}

func (q *Quad) corners() [4]core.Vec3 {
	return [4]core.Vec3{
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	}
}

func (q *Quad) BoundingBox() core.AABB {
	c := q.corners()
	box := core.NewAABBFromPoints(c[0], c[1], c[2], c[3])
	// Pad a degenerate (axis-aligned) extent so slab tests never divide a
	// true zero-width box against a ray travelling exactly in-plane.
	const pad = 1e-4
	size := box.Size()
	if size.X < pad {
		box.Min.X -= pad
		box.Max.X += pad
	}
	if size.Y < pad {
		box.Min.Y -= pad
		box.Max.Y += pad
	}
	if size.Z < pad {
		box.Min.Z -= pad
		box.Max.Z += pad
	}
	return box
}

func (q *Quad) Center() core.Vec3 {
	return q.Corner.Add(q.U.Multiply(0.5)).Add(q.V.Multiply(0.5))
}

func (q *Quad) Area() float64 { return q.area }

func (q *Quad) SampleArea(u core.Vec2) (core.Vec3, core.Vec3, float64) {
	point := q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y))
	return point, q.Normal, 1.0 / q.area
}
