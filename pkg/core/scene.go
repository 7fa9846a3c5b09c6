package core

import "math/rand"

// Light is the minimal surface the integrator needs from an emitter, kept in
// core (rather than the lights package) so that core.Scene can expose
// GetLights() without core depending on lights and creating an import cycle
// (lights already depends on core for Vec3/Ray/AABB).
type Light interface {
	// Sample returns a direction from point toward the light, the distance
	// to the sampled point, the emitted radiance along that direction, and
	// the PDF of having sampled it (solid angle measure, w.r.t. point).
	Sample(point Vec3, u Vec2) (direction Vec3, distance float64, emission Vec3, pdf float64)

	// PDF returns the solid-angle PDF of sampling direction from point
	// toward this light, used to weight indirect bounces that happen to
	// land on an emitter so direct and indirect estimates stay unbiased.
	PDF(point Vec3, direction Vec3) float64

	// Emit returns the radiance carried by a ray that escaped the scene (or
	// intersected this light directly) without having been explicitly
	// sampled via NEE.
	Emit(ray Ray) Vec3

	// IsDelta reports whether this light occupies zero measure (e.g. a
	// directional light); such lights cannot be hit by a scattered ray, so
	// the integrator must add their contribution only via NEE.
	IsDelta() bool
}

// HitRecord is the shape/material-agnostic result of a BVH traversal; the
// integrator only needs the point, shading normal, and material to proceed,
// so it is declared here rather than importing the geometry package.
type HitRecord struct {
	Point     Vec3
	Normal    Vec3
	UV        Vec2
	T         float64
	FrontFace bool
	Material  Material
}

// SetFaceNormal orients the shading normal against the incoming ray and
// records which side was hit, so materials can tell front-face from
// back-face without re-deriving it from the raw geometric normal.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Material is the minimal scattering surface the integrator drives; the
// concrete tagged-variant materials live in pkg/material and satisfy this
// interface structurally.
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
	// EvaluateBRDF returns the true (non-importance-cancelled) BSDF value at
	// the hit point for explicit directions, used by next-event estimation
	// which folds the cosine and light PDF back in itself.
	EvaluateBRDF(incomingDir, outgoingDir Vec3, hit HitRecord) Vec3
	PDF(incomingDir, outgoingDir Vec3, hit HitRecord) (pdf float64, isDelta bool)
	Emit(rayIn Ray) Vec3
	// IsDelta reports whether this material's BSDF is a Dirac distribution
	// (Mirror, Glass): next-event estimation cannot connect through it, so
	// the integrator must skip NEE at a delta-surface hit.
	IsDelta() bool
}

// ScatterResult carries a sampled outgoing direction and its throughput
// weight back to the integrator.
type ScatterResult struct {
	Scattered   Ray
	Attenuation Vec3
	PDF         float64 // 0 for delta (specular) scattering
	Threshold   float64 // Russian-roulette survival probability, max(attenuation components, 0.01)
}

func (s ScatterResult) IsSpecular() bool { return s.PDF <= 0 }

// RRThreshold is the Russian-roulette survival-probability floor shared by
// every material variant: the maximum color component of weight, clamped
// below at 0.01 so a near-black throughput still has a (small) chance to
// survive rather than guaranteeing termination and biasing the estimator.
func RRThreshold(weight Vec3) float64 {
	m := weight.X
	if weight.Y > m {
		m = weight.Y
	}
	if weight.Z > m {
		m = weight.Z
	}
	if m < 0.01 {
		m = 0.01
	}
	return m
}

// BVH is the acceleration-structure surface the integrator needs.
type BVH interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Scene decouples the integrator from the concrete scene/geometry packages:
// it only needs to traverse the BVH, enumerate lights for NEE, and sample
// the environment for escaped rays.
type Scene interface {
	GetBVH() BVH
	GetLights() []Light
	SampleEnvironment(ray Ray) Vec3
}

// SamplingConfig holds the per-render tunables read by the integrator and
// tile scheduler.
type SamplingConfig struct {
	Width                     int
	Height                    int
	SamplesPerPixel           int
	NumSubSamples             int // stratification grid is NumSubSamples x NumSubSamples
	MaxBounceCount            int
	RussianRouletteMinBounces int
	MaxRenderingSec           float64
	CpuCoreCount              int
}
