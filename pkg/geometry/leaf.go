package geometry

import "github.com/rayshard/pathtracer/pkg/core"

// Leaf groups several shapes at the bottom of the tree behind one Shape
// slot, tested by linear scan. BVH4 leaves already pack up to 4 primitives
// directly, but a Leaf lets scene assembly hand the builder a pre-grouped
// cluster (e.g. the handful of shapes making up a light fixture) that
// should stay together as one traversal unit regardless of where the
// median split would otherwise place its members.
type Leaf struct {
	Shapes []Shape
	box    core.AABB
}

func NewLeaf(shapes []Shape) *Leaf {
	l := &Leaf{Shapes: shapes}
	if len(shapes) > 0 {
		l.box = shapes[0].BoundingBox()
		for _, s := range shapes[1:] {
			l.box = l.box.Union(s.BoundingBox())
		}
	}
	return l
}

func (l *Leaf) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !l.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	var closest *core.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, s := range l.Shapes {
		if hit, ok := s.Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

func (l *Leaf) BoundingBox() core.AABB { return l.box }
func (l *Leaf) Center() core.Vec3      { return l.box.Center() }
