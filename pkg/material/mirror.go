package material

import (
	"math/rand"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Mirror is a perfect specular reflector: a delta BSDF, so EvaluateBRDF/PDF
// never contribute to next-event estimation (NEE cannot connect through a
// delta distribution) and weight is just the specular color.
type Mirror struct {
	Specular Texture
	Emission core.Vec3
}

func NewMirror(specular Texture) *Mirror {
	return &Mirror{Specular: specular}
}

func (m *Mirror) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	dir := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	origin := hit.Point.Add(hit.Normal.Multiply(shadowEpsilon))
	weight := m.Specular.Evaluate(hit.UV, hit.Point)

	return core.ScatterResult{
		Scattered:   core.NewRay(origin, dir),
		Attenuation: weight,
		PDF:         0,
		Threshold:   core.RRThreshold(weight),
	}, true
}

func (m *Mirror) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) core.Vec3 {
	return core.Vec3{}
}

func (m *Mirror) PDF(incomingDir, outgoingDir core.Vec3, hit core.HitRecord) (float64, bool) {
	return 0, true
}

func (m *Mirror) Emit(rayIn core.Ray) core.Vec3 { return m.Emission }

func (m *Mirror) IsDelta() bool { return true }
