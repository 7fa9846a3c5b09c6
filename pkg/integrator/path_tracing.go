package integrator

import (
	"math"
	"math/rand"

	"github.com/rayshard/pathtracer/pkg/core"
)

// PathTracer is the unidirectional path-tracing estimator: per bounce it
// intersects the scene, adds the light list's next-event-estimation
// contribution, samples the material for the next direction, and applies
// Russian roulette past a minimum bounce count.
type PathTracer struct{}

func NewPathTracer() *PathTracer { return &PathTracer{} }

const (
	rayEpsilon = 1e-4
	maxRayT    = math.MaxFloat64
)

func (pt *PathTracer) RayColor(ray core.Ray, scene core.Scene, config core.SamplingConfig, random *rand.Rand) core.Vec3 {
	throughput := core.Vec3{X: 1, Y: 1, Z: 1}
	radiance := core.Vec3{}
	bvh := scene.GetBVH()
	lightList := scene.GetLights()

	// specularBounce is true for the primary ray and after any delta
	// (Mirror/Glass) scatter, letting a direct hit on an emitter count in
	// full; after a non-delta scatter, NEE already accounted for direct
	// lighting at that vertex so the same emitter hit via BSDF sampling
	// must not be added a second time.
	specularBounce := true

	for bounce := 0; bounce < config.MaxBounceCount; bounce++ {
		hit, ok := bvh.Hit(ray, rayEpsilon, maxRayT)
		if !ok {
			radiance = radiance.Add(throughput.MultiplyVec(scene.SampleEnvironment(ray)))
			break
		}

		emission := hit.Material.Emit(ray)
		if specularBounce && !emission.IsZero() {
			radiance = radiance.Add(throughput.MultiplyVec(emission))
		}

		if !hit.Material.IsDelta() {
			radiance = radiance.Add(throughput.MultiplyVec(pt.sampleDirectLighting(ray, hit, lightList, bvh, random)))
		}

		scatter, scattered := hit.Material.Scatter(ray, *hit, random)
		if !scattered {
			break
		}

		if bounce+1 >= config.RussianRouletteMinBounces {
			survival := scatter.Threshold
			if random.Float64() >= survival {
				break
			}
			scatter.Attenuation = scatter.Attenuation.Multiply(1 / survival)
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		specularBounce = scatter.IsSpecular()
		ray = scatter.Scattered
	}

	return radiance
}

// sampleDirectLighting performs next-event estimation: pick a light
// uniformly, sample a point on it, and if the shadow ray is unoccluded add
// its contribution weighted by the surface BSDF and both cosine terms.
func (pt *PathTracer) sampleDirectLighting(rayIn core.Ray, hit *core.HitRecord, lightList []core.Light, bvh core.BVH, random *rand.Rand) core.Vec3 {
	sample, ok := core.SampleLight(lightList, hit.Point, random)
	if !ok {
		return core.Vec3{}
	}

	cosSurface := sample.Direction.Dot(hit.Normal)
	if cosSurface <= 0 {
		return core.Vec3{}
	}

	shadowOrigin := hit.Point.Add(hit.Normal.Multiply(rayEpsilon))
	shadowRay := core.NewRay(shadowOrigin, sample.Direction)
	shadowMax := sample.Distance - 2*rayEpsilon
	if shadowMax <= 0 {
		return core.Vec3{}
	}
	if _, blocked := bvh.Hit(shadowRay, rayEpsilon, shadowMax); blocked {
		return core.Vec3{}
	}

	bsdf := hit.Material.EvaluateBRDF(rayIn.Direction, sample.Direction, *hit)
	contribution := bsdf.MultiplyVec(sample.Emission).Multiply(cosSurface / sample.PDF)
	return contribution
}
