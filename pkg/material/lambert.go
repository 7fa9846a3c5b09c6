package material

import (
	"math"
	"math/rand"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Lambert is a perfectly diffuse material. Its sampling PDF (cosθ/π) and the
// cosθ/π factor in the rendering equation cancel exactly, so the throughput
// weight returned from Scatter is just the albedo — EvaluateBRDF still
// returns the true albedo/π BRDF value for next-event estimation, which
// folds cosθ back in explicitly.
type Lambert struct {
	Albedo   Texture
	Emission core.Vec3
}

func NewLambert(albedo Texture) *Lambert {
	return &Lambert{Albedo: albedo}
}

func (l *Lambert) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	dir := core.RandomCosineDirection(hit.Normal, random)
	origin := hit.Point.Add(hit.Normal.Multiply(shadowEpsilon))
	scattered := core.NewRay(origin, dir)

	weight := l.Albedo.Evaluate(hit.UV, hit.Point)
	cosTheta := math.Max(0, dir.Dot(hit.Normal))

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: weight,
		PDF:         cosTheta / math.Pi,
		Threshold:   core.RRThreshold(weight),
	}, true
}

func (l *Lambert) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) core.Vec3 {
	return l.Albedo.Evaluate(hit.UV, hit.Point).Multiply(1 / math.Pi)
}

func (l *Lambert) PDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) (float64, bool) {
	cosTheta := math.Max(0, outgoingDir.Dot(hit.Normal))
	return cosTheta / math.Pi, false
}

func (l *Lambert) Emit(rayIn core.Ray) core.Vec3 { return l.Emission }

func (l *Lambert) IsDelta() bool { return false }
