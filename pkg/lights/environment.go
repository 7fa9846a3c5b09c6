package lights

import (
	"math"

	"github.com/rayshard/pathtracer/pkg/core"
	"github.com/rayshard/pathtracer/pkg/material"
)

// Environment supplies the radiance carried by a ray that escapes the
// scene entirely, used by Scene.SampleEnvironment rather than the NEE
// light list — escaped rays are already handled by the integrator's miss
// branch, so a constant or image-based sky needs no separate delta light.
type Environment interface {
	Sample(ray core.Ray) core.Vec3
}

// ConstantEnvironment is a uniform-color sky.
type ConstantEnvironment struct {
	Color core.Vec3
}

func NewConstantEnvironment(color core.Vec3) ConstantEnvironment {
	return ConstantEnvironment{Color: color}
}

func (c ConstantEnvironment) Sample(ray core.Ray) core.Vec3 { return c.Color }

// EquirectEnvironment is image-based lighting: a world-space direction maps
// to equirectangular UV and the backing texture is sampled bilinearly.
type EquirectEnvironment struct {
	Texture *material.ImageTexture
}

func NewEquirectEnvironment(texture *material.ImageTexture) *EquirectEnvironment {
	return &EquirectEnvironment{Texture: texture}
}

func (e *EquirectEnvironment) Sample(ray core.Ray) core.Vec3 {
	d := ray.Direction.Normalize()
	u := 0.5 + math.Atan2(d.Z, d.X)/(2*math.Pi)
	v := 0.5 - math.Asin(clampUnit(d.Y))/math.Pi
	return e.Texture.Evaluate(core.Vec2{X: u, Y: v}, core.Vec3{})
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
