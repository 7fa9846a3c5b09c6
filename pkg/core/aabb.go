package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects with this AABB using the slab method, via
// the ray's precomputed reciprocal direction. Division by a zero direction
// component yields ±Inf, which the min/max below resolve correctly without
// a special parallel-ray branch; this is why Ray.Inv is defined to be +Inf
// or -Inf rather than an error for axis-aligned rays.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	tEnter, tExit, hit := aabb.HitT(ray, tMin, tMax)
	_ = tEnter
	_ = tExit
	return hit
}

// HitT is Hit but also returns the resolved [tEnter, tExit] interval, used
// by the BVH4 traversal to sort children by entry distance.
func (aabb AABB) HitT(ray Ray, tMin, tMax float64) (float64, float64, bool) {
	for axis := 0; axis < 3; axis++ {
		var lo, hi, origin, inv float64

		switch axis {
		case 0:
			lo, hi, origin, inv = aabb.Min.X, aabb.Max.X, ray.Origin.X, ray.Inv.X
		case 1:
			lo, hi, origin, inv = aabb.Min.Y, aabb.Max.Y, ray.Origin.Y, ray.Inv.Y
		case 2:
			lo, hi, origin, inv = aabb.Min.Z, aabb.Max.Z, ray.Origin.Z, ray.Inv.Z
		}

		t1 := (lo - origin) * inv
		t2 := (hi - origin) * inv
		// A zero direction component combined with an origin exactly on the
		// slab boundary produces 0 * Inf = NaN; resolve it as "inside the
		// slab for all t" rather than letting NaN silently propagate into
		// the min/max below and falsely report a hit.
		if math.IsNaN(t1) {
			t1 = math.Inf(-1)
		}
		if math.IsNaN(t2) {
			t2 = math.Inf(1)
		}
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return tMin, tMax, false
		}
	}

	return tMin, tMax, true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
