package material

import (
	"math"
	"math/rand"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Plastic mixes a Lambertian base coat with a Phong specular lobe, choosing
// between them stochastically each scatter event weighted by a fixed-R0
// Schlick Fresnel term (R0 = 0.5, matching the reference renderer rather
// than deriving it from an index of refraction).
type Plastic struct {
	Diffuse  Texture
	Specular Texture
	Power    float64
	Emission core.Vec3
}

func NewPlastic(diffuse, specular Texture, power float64) *Plastic {
	return &Plastic{Diffuse: diffuse, Specular: specular, Power: power}
}

const plasticR0 = 0.5

func plasticFresnel(cosTheta float64) float64 {
	return plasticR0 + (1-plasticR0)*math.Pow(1-cosTheta, 5)
}

func (p *Plastic) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	view := rayIn.Direction.Normalize().Negate()
	cosTheta := math.Max(0, view.Dot(hit.Normal))
	f := plasticFresnel(cosTheta)
	pPhong := (f + 0.5) / 2

	origin := hit.Point.Add(hit.Normal.Multiply(shadowEpsilon))

	if random.Float64() < pPhong {
		reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
		dir := core.RandomPhongDirection(reflected, p.Power, random)
		if dir.Dot(hit.Normal) <= 0 {
			return core.ScatterResult{}, false
		}
		specular := p.Specular.Evaluate(hit.UV, hit.Point)
		cosOut := dir.Dot(hit.Normal)
		weight := specular.Multiply(cosOut / pPhong)

		// The Phong branch's Russian-roulette threshold must be derived from
		// the specular color, not the diffuse albedo used by the other branch.
		return core.ScatterResult{
			Scattered:   core.NewRay(origin, dir),
			Attenuation: weight,
			PDF:         pPhong * (p.Power + 1) / (2 * math.Pi) * math.Pow(math.Max(0, dir.Dot(reflected)), p.Power),
			Threshold:   core.RRThreshold(specular),
		}, true
	}

	dir := core.RandomCosineDirection(hit.Normal, random)
	albedo := p.Diffuse.Evaluate(hit.UV, hit.Point)
	weight := albedo.Multiply(1 / (1 - pPhong))

	return core.ScatterResult{
		Scattered:   core.NewRay(origin, dir),
		Attenuation: weight,
		PDF:         (1 - pPhong) * math.Max(0, dir.Dot(hit.Normal)) / math.Pi,
		Threshold:   core.RRThreshold(albedo),
	}, true
}

func (p *Plastic) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) core.Vec3 {
	diffuse := p.Diffuse.Evaluate(hit.UV, hit.Point).Multiply(1 / math.Pi)

	reflected := core.Reflect(incomingDir.Normalize(), hit.Normal)
	cosAlpha := math.Max(0, outgoingDir.Dot(reflected))
	lobe := (p.Power + 2) / (2 * math.Pi) * math.Pow(cosAlpha, p.Power)
	specular := p.Specular.Evaluate(hit.UV, hit.Point).Multiply(lobe)

	return diffuse.Add(specular)
}

func (p *Plastic) PDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) (float64, bool) {
	view := incomingDir.Normalize().Negate()
	cosTheta := math.Max(0, view.Dot(hit.Normal))
	f := plasticFresnel(cosTheta)
	pPhong := (f + 0.5) / 2

	reflected := core.Reflect(incomingDir.Normalize(), hit.Normal)
	cosAlpha := math.Max(0, outgoingDir.Dot(reflected))
	phongPDF := (p.Power + 1) / (2 * math.Pi) * math.Pow(cosAlpha, p.Power)
	diffusePDF := math.Max(0, outgoingDir.Dot(hit.Normal)) / math.Pi

	return pPhong*phongPDF + (1-pPhong)*diffusePDF, false
}

func (p *Plastic) Emit(rayIn core.Ray) core.Vec3 { return p.Emission }

func (p *Plastic) IsDelta() bool { return false }
