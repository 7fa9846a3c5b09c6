// Package lights implements the NEE-sampleable light list: finite area
// emitters backed by a geometry.Emissive shape, and delta (directional)
// lights with zero measure.
package lights

import (
	"math"

	"github.com/rayshard/pathtracer/pkg/core"
	"github.com/rayshard/pathtracer/pkg/geometry"
)

// Area is an emissive-shape light: any geometry.Emissive (a sphere, quad, or
// triangle whose material carries an emission) sampled uniformly by area.
type Area struct {
	Shape    geometry.Emissive
	Emission core.Vec3
}

func NewArea(shape geometry.Emissive, emission core.Vec3) *Area {
	return &Area{Shape: shape, Emission: emission}
}

func (a *Area) Sample(point core.Vec3, u core.Vec2) (core.Vec3, float64, core.Vec3, float64) {
	p, n, areaPDF := a.Shape.SampleArea(u)
	toLight := p.Subtract(point)
	distance := toLight.Length()
	if distance < 1e-8 {
		return core.Vec3{}, 0, core.Vec3{}, 0
	}
	direction := toLight.Multiply(1 / distance)

	cosLight := -direction.Dot(n)
	if cosLight <= 0 {
		return core.Vec3{}, 0, core.Vec3{}, 0
	}

	solidAnglePDF := areaPDF * distance * distance / cosLight
	return direction, distance, a.Emission, solidAnglePDF
}

func (a *Area) PDF(point core.Vec3, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	hit, ok := a.Shape.Hit(ray, 1e-3, math.Inf(1))
	if !ok {
		return 0
	}

	cosLight := -direction.Dot(hit.Normal)
	if cosLight <= 0 {
		return 0
	}

	areaPDF := 1.0 / a.Shape.Area()
	distance := hit.T
	return areaPDF * distance * distance / cosLight
}

func (a *Area) Emit(ray core.Ray) core.Vec3 { return a.Emission }

func (a *Area) IsDelta() bool { return false }
