package lights

import (
	"math"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Directional is a delta light representing parallel rays arriving from
// infinitely far away (e.g. sunlight): fixed direction, no inverse-square
// falloff, zero measure so it can only ever contribute via NEE.
type Directional struct {
	// Direction is the direction light travels (surface-to-light is its
	// negation).
	Direction core.Vec3
	Emission  core.Vec3
}

func NewDirectional(direction core.Vec3, emission core.Vec3) *Directional {
	return &Directional{Direction: direction.Normalize(), Emission: emission}
}

func (d *Directional) Sample(point core.Vec3, u core.Vec2) (core.Vec3, float64, core.Vec3, float64) {
	return d.Direction.Negate(), math.Inf(1), d.Emission, 1.0
}

func (d *Directional) PDF(point core.Vec3, direction core.Vec3) float64 { return 0 }

func (d *Directional) Emit(ray core.Ray) core.Vec3 { return core.Vec3{} }

func (d *Directional) IsDelta() bool { return true }
