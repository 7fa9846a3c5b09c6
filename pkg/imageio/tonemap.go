// Package imageio converts the linear-light pixel buffer the renderer
// accumulates into displayable images: tone mapping, denoising, and file
// encoding.
package imageio

import (
	"math"

	"github.com/rayshard/pathtracer/pkg/core"
)

// ToneMapType selects between the two mapping curves the renderer supports.
type ToneMapType int

const (
	ToneMapReinhard ToneMapType = iota
	ToneMapFilmic
)

// Map applies the selected tone-mapping curve to every pixel of a linear
// HDR buffer, returning a new buffer with values compressed toward [0, 1]
// (still linear; gamma correction happens at encode time).
func Map(kind ToneMapType, pixels []core.Vec3) []core.Vec3 {
	switch kind {
	case ToneMapFilmic:
		return mapFilmic(pixels)
	default:
		return mapReinhard(pixels)
	}
}

// mapReinhard applies the simple global Reinhard operator, c / (1 + c),
// componentwise.
func mapReinhard(pixels []core.Vec3) []core.Vec3 {
	out := make([]core.Vec3, len(pixels))
	for i, c := range pixels {
		out[i] = core.Vec3{
			X: c.X / (1 + c.X),
			Y: c.Y / (1 + c.Y),
			Z: c.Z / (1 + c.Z),
		}
	}
	return out
}

// Uncharted2 filmic curve constants (Hable).
const (
	filmicA = 0.15
	filmicB = 0.50
	filmicC = 0.10
	filmicD = 0.20
	filmicE = 0.02
	filmicF = 0.30
	filmicW = 11.2
)

func filmicCurve(x float64) float64 {
	return ((x*(filmicA*x+filmicC*filmicB) + filmicD*filmicE) /
		(x*(filmicA*x+filmicB) + filmicD*filmicF)) - filmicE/filmicF
}

// mapFilmic applies the Uncharted2 filmic curve, normalized against its
// value at the reference white point so that W maps to 1; inputs above W
// saturate at 1.
func mapFilmic(pixels []core.Vec3) []core.Vec3 {
	whiteScale := 1.0 / filmicCurve(filmicW)
	curve := func(v float64) float64 {
		return math.Min(1, math.Max(0, filmicCurve(v)*whiteScale))
	}

	out := make([]core.Vec3, len(pixels))
	for i, c := range pixels {
		out[i] = core.Vec3{X: curve(c.X), Y: curve(c.Y), Z: curve(c.Z)}
	}
	return out
}
