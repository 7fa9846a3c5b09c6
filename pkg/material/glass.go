package material

import (
	"math"
	"math/rand"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Glass is a smooth dielectric: Fresnel-Schlick decides the reflect/refract
// split probabilistically, with total internal reflection forcing a
// reflection. Like Mirror this is a delta BSDF.
type Glass struct {
	RefractiveIndex float64
	Transmittance   core.Vec3
	Emission        core.Vec3
}

func NewGlass(refractiveIndex float64) *Glass {
	return &Glass{RefractiveIndex: refractiveIndex, Transmittance: core.Vec3{X: 1, Y: 1, Z: 1}}
}

func (g *Glass) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	unitDir := rayIn.Direction.Normalize()

	// hit.Normal already faces against the incoming ray (SetFaceNormal), so
	// only the IOR ratio depends on which side the ray arrives from.
	var iorRatio float64
	normal := hit.Normal
	if hit.FrontFace {
		iorRatio = 1.0 / g.RefractiveIndex // entering the medium
	} else {
		iorRatio = g.RefractiveIndex // exiting the medium
	}

	cosTheta := math.Min(-unitDir.Dot(normal), 1.0)
	reflectance := core.SchlickReflectance(cosTheta, iorRatio)

	var dir core.Vec3
	var offsetNormal core.Vec3
	if refracted, ok := core.Refract(unitDir, normal, iorRatio); !ok || reflectance > random.Float64() {
		dir = core.Reflect(unitDir, normal)
		offsetNormal = normal
	} else {
		dir = refracted
		offsetNormal = normal.Negate()
	}

	origin := hit.Point.Add(offsetNormal.Multiply(shadowEpsilon))
	weight := g.Transmittance

	return core.ScatterResult{
		Scattered:   core.NewRay(origin, dir),
		Attenuation: weight,
		PDF:         0,
		Threshold:   core.RRThreshold(weight),
	}, true
}

func (g *Glass) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) core.Vec3 {
	return core.Vec3{}
}

func (g *Glass) PDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) (float64, bool) {
	return 0, true
}

func (g *Glass) Emit(rayIn core.Ray) core.Vec3 { return g.Emission }

func (g *Glass) IsDelta() bool { return true }
