package material

import (
	"math"
	"math/rand"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Phong samples around the perfect-reflection direction with density
// proportional to cos^Power(alpha). As with Lambert, the sampling PDF and
// the rendering-equation cosine cancel, leaving weight = specular·cosθ_out.
type Phong struct {
	Specular Texture
	Power    float64
	Emission core.Vec3
}

func NewPhong(specular Texture, power float64) *Phong {
	return &Phong{Specular: specular, Power: power}
}

func (p *Phong) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	dir := core.RandomPhongDirection(reflected, p.Power, random)
	if dir.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	origin := hit.Point.Add(hit.Normal.Multiply(shadowEpsilon))
	scattered := core.NewRay(origin, dir)

	specular := p.Specular.Evaluate(hit.UV, hit.Point)
	cosTheta := dir.Dot(hit.Normal)
	weight := specular.Multiply(cosTheta)

	pdf, _ := p.PDF(rayIn.Direction, dir, hit)

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: weight,
		PDF:         pdf,
		Threshold:   core.RRThreshold(weight),
	}, true
}

func (p *Phong) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) core.Vec3 {
	reflected := core.Reflect(incomingDir.Normalize(), hit.Normal)
	cosAlpha := math.Max(0, outgoingDir.Dot(reflected))
	lobe := (p.Power + 2) / (2 * math.Pi) * math.Pow(cosAlpha, p.Power)
	return p.Specular.Evaluate(hit.UV, hit.Point).Multiply(lobe)
}

func (p *Phong) PDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) (float64, bool) {
	reflected := core.Reflect(incomingDir.Normalize(), hit.Normal)
	cosAlpha := math.Max(0, outgoingDir.Dot(reflected))
	return (p.Power + 1) / (2 * math.Pi) * math.Pow(cosAlpha, p.Power), false
}

func (p *Phong) Emit(rayIn core.Ray) core.Vec3 { return p.Emission }

func (p *Phong) IsDelta() bool { return false }
