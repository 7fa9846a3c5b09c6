package geometry

import (
	"sort"

	"github.com/rayshard/pathtracer/pkg/core"
)

// leafSize is N in "leaves hold up to N primitives": once a subset is this
// small or smaller it is packed directly into the node's four child slots
// instead of being split further.
const leafSize = 4

// BVH4 is a 4-wide bounding volume hierarchy node. Each node packs its (up
// to) four children's AABBs into one BoundingBox4 and holds four Shape
// references; a child may be another *BVH4 (an internal sub-tree), an
// Instance, a Leaf, or a bare primitive — whichever the builder decided
// didn't need further splitting.
type BVH4 struct {
	box      core.BoundingBox4
	children [4]Shape // nil entries correspond to the sentinel-box padding lanes
	count    int
	bbox     core.AABB // the node's own (unpacked) bounds, for BoundingBox()/Center()
}

// BuildBVH4 constructs the acceleration structure over shapes. Per the
// fixed guard semantics (early-exit rather than falling through to the
// general path for 1 or 2 shapes), trivial inputs are handled directly.
func BuildBVH4(shapes []Shape) *BVH4 {
	switch len(shapes) {
	case 0:
		return &BVH4{}
	case 1:
		return wrapAsNode(shapes)
	case 2:
		return wrapAsNode(shapes)
	}
	return buildBVH4Recursive(shapes)
}

func wrapAsNode(shapes []Shape) *BVH4 {
	n := &BVH4{count: len(shapes)}
	boxes := make([]core.AABB, 0, len(shapes))
	for i, s := range shapes {
		n.children[i] = s
		boxes = append(boxes, s.BoundingBox())
	}
	n.box = core.NewBoundingBox4(boxes)
	n.bbox = unionAll(boxes)
	return n
}

func unionAll(boxes []core.AABB) core.AABB {
	if len(boxes) == 0 {
		return core.AABB{}
	}
	b := boxes[0]
	for _, box := range boxes[1:] {
		b = b.Union(box)
	}
	return b
}

// buildBVH4Recursive implements the median-split algorithm from the spec:
// compute the union/centroid bounds, choose the axis of maximum centroid
// extent, partition around the midpoint (falling back to an equal-count
// split if the partition is degenerate), and recurse. Each node fans out
// into up to 4 children by applying one median split to get two halves,
// then a second split to each half holding more than 2 shapes — collapsing what would otherwise be a
// 2-level binary subtree into one 4-wide node, per "inner nodes hold four
// packed child AABBs".
func buildBVH4Recursive(shapes []Shape) *BVH4 {
	if len(shapes) <= leafSize {
		return wrapAsNode(shapes)
	}

	left, right := medianSplit(shapes)
	groups := make([][]Shape, 0, 4)
	for _, half := range [2][]Shape{left, right} {
		if len(half) <= 2 {
			groups = append(groups, half)
			continue
		}
		a, b := medianSplit(half)
		groups = append(groups, a, b)
	}

	n := &BVH4{}
	boxes := make([]core.AABB, 0, 4)
	slot := 0
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		var child Shape
		if len(g) > leafSize {
			child = buildBVH4Recursive(g)
		} else if len(g) == 1 {
			child = g[0]
		} else {
			child = NewLeaf(g)
		}
		n.children[slot] = child
		boxes = append(boxes, child.BoundingBox())
		slot++
		n.count++
	}
	n.box = core.NewBoundingBox4(boxes)
	n.bbox = unionAll(boxes)
	return n
}

// medianSplit partitions shapes along the axis of maximum centroid extent
// at the midpoint; if every centroid lands on one side (degenerate split)
// it falls back to an equal-count split by sorting along that axis.
func medianSplit(shapes []Shape) ([]Shape, []Shape) {
	box := centroidBounds(shapes)
	axis := box.LongestAxis()

	var lo, hi float64
	switch axis {
	case 0:
		lo, hi = box.Min.X, box.Max.X
	case 1:
		lo, hi = box.Min.Y, box.Max.Y
	default:
		lo, hi = box.Min.Z, box.Max.Z
	}
	mid := (lo + hi) * 0.5

	var left, right []Shape
	for _, s := range shapes {
		c := s.Center()
		var v float64
		switch axis {
		case 0:
			v = c.X
		case 1:
			v = c.Y
		default:
			v = c.Z
		}
		if v < mid {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		sorted := append([]Shape(nil), shapes...)
		sort.Slice(sorted, func(i, j int) bool {
			return axisValue(sorted[i].Center(), axis) < axisValue(sorted[j].Center(), axis)
		})
		mid := len(sorted) / 2
		return sorted[:mid], sorted[mid:]
	}

	return left, right
}

func axisValue(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func centroidBounds(shapes []Shape) core.AABB {
	box := core.NewAABBFromPoints(shapes[0].Center())
	for _, s := range shapes[1:] {
		box = box.Union(core.NewAABBFromPoints(s.Center()))
	}
	return box
}

func (n *BVH4) BoundingBox() core.AABB { return n.bbox }
func (n *BVH4) Center() core.Vec3      { return n.bbox.Center() }

// stackDepthBound is the initial capacity of the traversal stack: the tree
// depth is O(log4(N)) but nodes may be unbalanced down to binary in the
// worst case, so a generous constant is reserved up front; the stack still
// grows past it if needed rather than asserting a bound at build time.
const stackDepthBound = 256

// Hit traverses the BVH4 iteratively with an explicit stack. At each node
// the four packed child boxes are tested at once; hit children are visited
// nearest-first by sorting on t_enter so the running closest-hit distance
// prunes as much of the remaining tree as possible.
func (n *BVH4) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if n.count == 0 {
		return nil, false
	}

	type stackEntry struct {
		node *BVH4
	}
	stack := make([]stackEntry, 0, stackDepthBound)
	stack = append(stack, stackEntry{n})

	var closest *core.HitRecord
	closestSoFar := tMax
	hitAnything := false

	type hitChild struct {
		shape Shape
		node  *BVH4
		enter float32
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := top.node

		mask, enter := node.box.Hit4(ray, tMin, closestSoFar)
		if mask == 0 {
			continue
		}

		var candidates []hitChild
		for i := 0; i < node.count; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			child := node.children[i]
			if sub, ok := child.(*BVH4); ok {
				candidates = append(candidates, hitChild{node: sub, enter: enter[i]})
			} else {
				candidates = append(candidates, hitChild{shape: child, enter: enter[i]})
			}
		}

		sort.Slice(candidates, func(i, j int) bool { return candidates[i].enter < candidates[j].enter })

		// Primitive children are tested right away, nearest first; sub-tree
		// children are pushed in far-to-near order so the nearest is popped
		// (and visited) first, matching the spec's explicit traversal-order
		// requirement.
		for _, c := range candidates {
			if c.node != nil {
				continue
			}
			if hit, ok := c.shape.Hit(ray, tMin, closestSoFar); ok {
				hitAnything = true
				closestSoFar = hit.T
				closest = hit
			}
		}
		for i := len(candidates) - 1; i >= 0; i-- {
			if c := candidates[i]; c.node != nil {
				stack = append(stack, stackEntry{c.node})
			}
		}
	}

	return closest, hitAnything
}
