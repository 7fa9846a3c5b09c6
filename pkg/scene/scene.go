// Package scene assembles geometry, materials, and lights into the
// core.Scene the integrator drives, and provides the built-in scenarios
// plus a YAML scene description loader.
package scene

import (
	"github.com/rayshard/pathtracer/pkg/core"
	"github.com/rayshard/pathtracer/pkg/geometry"
	"github.com/rayshard/pathtracer/pkg/lights"
	"github.com/rayshard/pathtracer/pkg/renderer"
)

// Scene owns the root BVH, the light list used for next-event estimation,
// the environment sampled by escaped rays, and the camera used to generate
// primary rays.
type Scene struct {
	Shapes      []geometry.Shape
	Lights      []core.Light
	Environment lights.Environment
	Camera      *renderer.Camera

	bvh *geometry.BVH4
}

// Build constructs the acceleration structure over Shapes; call once after
// all shapes/lights have been added, before rendering.
func (s *Scene) Build() {
	s.bvh = geometry.BuildBVH4(s.Shapes)
}

func (s *Scene) GetBVH() core.BVH { return s.bvh }

func (s *Scene) GetLights() []core.Light { return s.Lights }

func (s *Scene) SampleEnvironment(ray core.Ray) core.Vec3 {
	if s.Environment == nil {
		return core.Vec3{}
	}
	return s.Environment.Sample(ray)
}

// AddAreaLight registers shape both as scene geometry (so camera rays can
// hit it directly) and as an NEE-sampleable light.
func (s *Scene) AddAreaLight(shape geometry.Emissive, emission core.Vec3) {
	s.Shapes = append(s.Shapes, shape)
	s.Lights = append(s.Lights, lights.NewArea(shape, emission))
}

// AddDirectionalLight registers a delta directional light; it has no
// geometric presence so it is not added to Shapes.
func (s *Scene) AddDirectionalLight(direction, emission core.Vec3) {
	s.Lights = append(s.Lights, lights.NewDirectional(direction, emission))
}
