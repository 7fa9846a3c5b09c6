// Package geometry implements the closed set of primitives the renderer
// supports — sphere, triangle, quad, indexed triangle mesh — plus the
// instancing, grouping, and 4-wide BVH acceleration built on top of them.
package geometry

import "github.com/rayshard/pathtracer/pkg/core"

// Shape is the closed primitive interface. Every concrete type in this
// package (Sphere, Triangle, Quad, TriangleMesh, Instance, Leaf, BVH4) is a
// Shape, which is what lets the BVH4 hold a mix of primitives, sub-trees,
// instances, and leaf groups behind one child-slot type.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
	BoundingBox() core.AABB
	Center() core.Vec3
}

// Emissive is implemented by shapes paired with an emissive material; the
// scene collects these into its light list and samples them directly for
// next-event estimation (sampling the shape's surface, not its BVH hit).
type Emissive interface {
	Shape
	// SampleArea draws a point on the shape's surface along with its
	// outward normal and the probability density of that point (per unit
	// area), used to convert into a solid-angle PDF for NEE.
	SampleArea(u core.Vec2) (point core.Vec3, normal core.Vec3, areaPDF float64)
	Area() float64
}

const epsilon = 1e-4
