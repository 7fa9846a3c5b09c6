package geometry

import "github.com/rayshard/pathtracer/pkg/core"

// Instance wraps a child shape with a world transform, letting the same
// underlying geometry (typically a TriangleMesh) be placed multiple times in
// a scene without duplicating vertex data. Only translate/rotate/scale via a
// 4x4-equivalent composed transform is needed here, so it is stored as the
// matrix pair directly rather than introducing a general Mat4 type.
type Instance struct {
	Child         Shape
	ObjectToWorld Transform
	WorldToObject Transform
	box           core.AABB
}

// Transform is an affine transform: p' = Linear*p + Translation. Directions
// transform by Linear alone (no translation component).
type Transform struct {
	Linear      [3]core.Vec3 // rows of the 3x3 linear part
	Translation core.Vec3
}

func Identity() Transform {
	return Transform{
		Linear: [3]core.Vec3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

func (t Transform) ApplyPoint(p core.Vec3) core.Vec3 {
	return core.Vec3{X: t.Linear[0].Dot(p), Y: t.Linear[1].Dot(p), Z: t.Linear[2].Dot(p)}.Add(t.Translation)
}

func (t Transform) ApplyDirection(d core.Vec3) core.Vec3 {
	return core.Vec3{X: t.Linear[0].Dot(d), Y: t.Linear[1].Dot(d), Z: t.Linear[2].Dot(d)}
}

// Inverse computes the inverse of an affine transform whose linear part is
// a general invertible 3x3 matrix (adjugate method; the transform is
// assembled from translate/rotate/scale so is always invertible).
func (t Transform) Inverse() Transform {
	m := t.Linear
	a, b, c := m[0].X, m[0].Y, m[0].Z
	d, e, f := m[1].X, m[1].Y, m[1].Z
	g, h, i := m[2].X, m[2].Y, m[2].Z

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	invDet := 1.0 / det

	inv := [3]core.Vec3{
		{X: (e*i - f*h) * invDet, Y: (c*h - b*i) * invDet, Z: (b*f - c*e) * invDet},
		{X: (f*g - d*i) * invDet, Y: (a*i - c*g) * invDet, Z: (c*d - a*f) * invDet},
		{X: (d*h - e*g) * invDet, Y: (b*g - a*h) * invDet, Z: (a*e - b*d) * invDet},
	}

	inverse := Transform{Linear: inv}
	inverse.Translation = inverse.ApplyDirection(t.Translation).Multiply(-1)
	return inverse
}

// NewInstance wraps child with the given world transform, precomputing the
// inverse (used to bring rays into object space) and the world-space AABB
// (the 8-corner hull of the child's local box).
func NewInstance(child Shape, objectToWorld Transform) *Instance {
	inst := &Instance{
		Child:         child,
		ObjectToWorld: objectToWorld,
		WorldToObject: objectToWorld.Inverse(),
	}
	inst.box = inst.computeWorldBox()
	return inst
}

func (inst *Instance) computeWorldBox() core.AABB {
	local := inst.Child.BoundingBox()
	corners := [8]core.Vec3{
		{X: local.Min.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Max.Z},
	}
	world := inst.ObjectToWorld.ApplyPoint(corners[0])
	box := core.NewAABBFromPoints(world)
	for _, c := range corners[1:] {
		box = box.Union(core.NewAABBFromPoints(inst.ObjectToWorld.ApplyPoint(c)))
	}
	return box
}

func (inst *Instance) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	localOrigin := inst.WorldToObject.ApplyPoint(ray.Origin)
	localDir := inst.WorldToObject.ApplyDirection(ray.Direction)
	scale := localDir.Length()
	localRay := core.NewRay(localOrigin, localDir.Multiply(1.0/scale))

	hit, ok := inst.Child.Hit(localRay, tMin*scale, tMax*scale)
	if !ok {
		return nil, false
	}

	hit.Point = inst.ObjectToWorld.ApplyPoint(hit.Point)
	hit.Normal = inst.ObjectToWorld.ApplyDirection(hit.Normal).Normalize()
	hit.T = hit.T / scale
	return hit, true
}

func (inst *Instance) BoundingBox() core.AABB { return inst.box }
func (inst *Instance) Center() core.Vec3      { return inst.box.Center() }
