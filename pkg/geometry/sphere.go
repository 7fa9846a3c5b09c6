package geometry

import (
	"math"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Sphere is the algebraic sphere primitive: |o + t*d - c|^2 = r^2.
type Sphere struct {
	Origin   core.Vec3
	Radius   float64
	Material core.Material
}

func NewSphere(center core.Vec3, radius float64, mat core.Material) *Sphere {
	return &Sphere{Origin: center, Radius: radius, Material: mat}
}

// hitEpsilon guards against self-intersection at the origin of a ray cast
// from a surface the previous bounce just left.
const hitEpsilon = 1e-3

func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Origin)

	// Direction is unit length by construction, so a == 1 and the general
	// quadratic collapses to the half-b form below.
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius
	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := -halfB - sqrtD
	if root < math.Max(tMin, hitEpsilon) || root > tMax {
		root = -halfB + sqrtD
		if root < math.Max(tMin, hitEpsilon) || root > tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(s.Origin).Multiply(1.0 / s.Radius)

	theta := math.Acos(-outwardNormal.Y)
	phi := math.Atan2(-outwardNormal.Z, outwardNormal.X) + math.Pi

	hit := &core.HitRecord{
		T:        root,
		Point:    point,
		UV:       core.Vec2{X: phi / (2 * math.Pi), Y: (math.Pi - theta) / math.Pi},
		Material: s.Material,
	}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}

func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Origin.Subtract(r), s.Origin.Add(r))
}

func (s *Sphere) Center() core.Vec3 { return s.Origin }

func (s *Sphere) Area() float64 { return 4 * math.Pi * s.Radius * s.Radius }

// SampleArea draws a point uniformly over the whole sphere surface. This is
// a simpler (higher-variance but unbiased) alternative to solid-angle cone
// sampling; adequate given the spec's closed-form light list is small.
func (s *Sphere) SampleArea(u core.Vec2) (core.Vec3, core.Vec3, float64) {
	z := 1 - 2*u.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	normal := core.Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
	point := s.Origin.Add(normal.Multiply(s.Radius))
	return point, normal, 1.0 / s.Area()
}
