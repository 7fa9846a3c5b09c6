// Package integrator implements the Monte Carlo path-tracing estimator:
// unidirectional paths with explicit next-event estimation and Russian
// roulette termination.
package integrator

import (
	"math/rand"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Integrator estimates the radiance arriving along ray within scene.
type Integrator interface {
	RayColor(ray core.Ray, scene core.Scene, config core.SamplingConfig, random *rand.Rand) core.Vec3
}
