package core

import "math"

// Simd4 is a 128-bit-lane facade over four packed float32 values. It mirrors
// the small, closed vector-op surface a real SSE intrinsic wrapper would
// expose (Add/Sub/Mul/Div, Min/Max, comparisons yielding a lane mask) without
// depending on any particular CPU ISA; on amd64/arm64 the Go compiler
// auto-vectorizes the fixed-size array loop bodies below reasonably well,
// and the facade keeps BVH4 traversal code written in terms of 4 lanes at a
// time regardless of whether the backing store ever becomes true SIMD.
type Simd4 struct {
	lanes [4]float32
}

// MakeSimd4 packs four scalars into one lane group.
func MakeSimd4(a, b, c, d float32) Simd4 {
	return Simd4{lanes: [4]float32{a, b, c, d}}
}

// SplatSimd4 broadcasts one scalar into all four lanes.
func SplatSimd4(v float32) Simd4 {
	return Simd4{lanes: [4]float32{v, v, v, v}}
}

func (s Simd4) Get(i int) float32 { return s.lanes[i] }

func (s *Simd4) Set(i int, v float32) { s.lanes[i] = v }

func (a Simd4) Add(b Simd4) Simd4 {
	var r Simd4
	for i := 0; i < 4; i++ {
		r.lanes[i] = a.lanes[i] + b.lanes[i]
	}
	return r
}

func (a Simd4) Sub(b Simd4) Simd4 {
	var r Simd4
	for i := 0; i < 4; i++ {
		r.lanes[i] = a.lanes[i] - b.lanes[i]
	}
	return r
}

func (a Simd4) Mul(b Simd4) Simd4 {
	var r Simd4
	for i := 0; i < 4; i++ {
		r.lanes[i] = a.lanes[i] * b.lanes[i]
	}
	return r
}

// Min/Max are lane-wise and, matching IEEE minNum/maxNum semantics, prefer
// the non-NaN operand instead of propagating NaN the way math.Min/Max would;
// the BVH4 ray-box test relies on this to stay branchless in the presence of
// a zero ray-direction component (see Ray.Inv).
func (a Simd4) Min(b Simd4) Simd4 {
	var r Simd4
	for i := 0; i < 4; i++ {
		x, y := a.lanes[i], b.lanes[i]
		switch {
		case x != x:
			r.lanes[i] = y
		case y != y:
			r.lanes[i] = x
		case x < y:
			r.lanes[i] = x
		default:
			r.lanes[i] = y
		}
	}
	return r
}

func (a Simd4) Max(b Simd4) Simd4 {
	var r Simd4
	for i := 0; i < 4; i++ {
		x, y := a.lanes[i], b.lanes[i]
		switch {
		case x != x:
			r.lanes[i] = y
		case y != y:
			r.lanes[i] = x
		case x > y:
			r.lanes[i] = x
		default:
			r.lanes[i] = y
		}
	}
	return r
}

// CmpLe returns a 4-bit mask with bit i set where a.lanes[i] <= b.lanes[i].
func (a Simd4) CmpLe(b Simd4) uint8 {
	var mask uint8
	for i := 0; i < 4; i++ {
		if a.lanes[i] <= b.lanes[i] {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// CmpGe is the mirror of CmpLe, kept for readability at call sites that
// compare in the other direction rather than negating a mask.
func (a Simd4) CmpGe(b Simd4) uint8 {
	var mask uint8
	for i := 0; i < 4; i++ {
		if a.lanes[i] >= b.lanes[i] {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// BoundingBox4 packs four axis-aligned boxes across six Simd4 lanes (one per
// min/max component), the layout a quad-BVH node stores its children's
// bounds in so a single traversal step tests all four at once.
type BoundingBox4 struct {
	MinX, MinY, MinZ Simd4
	MaxX, MaxY, MaxZ Simd4
}

// emptyBox4Slot is packed into unused lanes of a partially-filled node; its
// inverted bounds (min > max on every axis) can never yield a hit.
var emptyBox4Slot = AABB{Min: Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}, Max: Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}}

// NewBoundingBox4 packs up to four boxes; missing slots (count < 4) are
// padded with a sentinel box that never reports a hit.
func NewBoundingBox4(boxes []AABB) BoundingBox4 {
	var b4 BoundingBox4
	for i := 0; i < 4; i++ {
		box := emptyBox4Slot
		if i < len(boxes) {
			box = boxes[i]
		}
		b4.MinX.Set(i, float32(box.Min.X))
		b4.MinY.Set(i, float32(box.Min.Y))
		b4.MinZ.Set(i, float32(box.Min.Z))
		b4.MaxX.Set(i, float32(box.Max.X))
		b4.MaxY.Set(i, float32(box.Max.Y))
		b4.MaxZ.Set(i, float32(box.Max.Z))
	}
	return b4
}

// Hit4 intersects a ray against all four packed boxes simultaneously and
// returns a 4-bit mask of lanes whose [tEnter, tExit] overlaps [tMin, tMax].
// It also returns the per-lane tEnter, used by the caller to visit the hit
// children nearest-first.
func (b4 BoundingBox4) Hit4(ray Ray, tMin, tMax float64) (mask uint8, tEnter [4]float32) {
	ox, oy, oz := SplatSimd4(float32(ray.Origin.X)), SplatSimd4(float32(ray.Origin.Y)), SplatSimd4(float32(ray.Origin.Z))
	ix, iy, iz := SplatSimd4(float32(ray.Inv.X)), SplatSimd4(float32(ray.Inv.Y)), SplatSimd4(float32(ray.Inv.Z))

	// The ray's sign bits pick the near/far slab per axis (no per-lane
	// swap), so an inverted sentinel box always yields enter > exit.
	nearX, farX := b4.MinX, b4.MaxX
	if ray.Sign[0] == 1 {
		nearX, farX = b4.MaxX, b4.MinX
	}
	nearY, farY := b4.MinY, b4.MaxY
	if ray.Sign[1] == 1 {
		nearY, farY = b4.MaxY, b4.MinY
	}
	nearZ, farZ := b4.MinZ, b4.MaxZ
	if ray.Sign[2] == 1 {
		nearZ, farZ = b4.MaxZ, b4.MinZ
	}

	enter := nearX.Sub(ox).Mul(ix).Max(nearY.Sub(oy).Mul(iy)).Max(nearZ.Sub(oz).Mul(iz)).Max(SplatSimd4(float32(tMin)))
	exit := farX.Sub(ox).Mul(ix).Min(farY.Sub(oy).Mul(iy)).Min(farZ.Sub(oz).Mul(iz)).Min(SplatSimd4(float32(tMax)))

	mask = enter.CmpLe(exit)
	for i := 0; i < 4; i++ {
		tEnter[i] = enter.Get(i)
	}
	return mask, tEnter
}
