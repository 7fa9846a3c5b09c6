package scene

import (
	"github.com/rayshard/pathtracer/pkg/core"
	"github.com/rayshard/pathtracer/pkg/geometry"
	"github.com/rayshard/pathtracer/pkg/lights"
	"github.com/rayshard/pathtracer/pkg/material"
	"github.com/rayshard/pathtracer/pkg/renderer"
)

func defaultCamera(lookFrom, lookAt core.Vec3, vfov, aspect float64) *renderer.Camera {
	return renderer.NewCamera(renderer.CameraConfig{
		LookFrom:    lookFrom,
		LookAt:      lookAt,
		Up:          core.Vec3{X: 0, Y: 1, Z: 0},
		VFovDegrees: vfov,
		AspectRatio: aspect,
	})
}

// EmptyEnvironment is scenario 1: no geometry, a constant environment; every
// pixel should equal the environment color.
func EmptyEnvironment() *Scene {
	s := &Scene{
		Environment: lights.NewConstantEnvironment(core.Vec3{X: 0.5, Y: 0.7, Z: 1.0}),
		Camera:      defaultCamera(core.Vec3{X: 0, Y: 0, Z: 3}, core.Vec3{}, 40, 1),
	}
	s.Build()
	return s
}

// SingleSphereDirectionalLight is scenario 2: one Lambertian sphere lit by a
// single directional light, camera looking down -Z at the origin.
func SingleSphereDirectionalLight() *Scene {
	s := &Scene{
		Environment: lights.NewConstantEnvironment(core.Vec3{X: 0.5, Y: 0.7, Z: 1.0}),
		Camera:      defaultCamera(core.Vec3{X: 0, Y: 0, Z: 3}, core.Vec3{}, 40, 1),
	}
	albedo := material.NewSolidColor(core.Vec3{X: 0.8, Y: 0.8, Z: 0.8})
	sphere := geometry.NewSphere(core.Vec3{}, 1.0, material.NewLambert(albedo))
	s.Shapes = append(s.Shapes, sphere)
	s.AddDirectionalLight(core.Vec3{X: -1, Y: -1, Z: -1}, core.Vec3{X: 4, Y: 4, Z: 4})
	s.Build()
	return s
}

// MirrorCheckerboard is scenario 3: a mirror sphere between two checkerboard
// walls.
func MirrorCheckerboard() *Scene {
	s := &Scene{
		Environment: lights.NewConstantEnvironment(core.Vec3{X: 0.2, Y: 0.2, Z: 0.2}),
		Camera:      defaultCamera(core.Vec3{X: 0, Y: 1, Z: 5}, core.Vec3{Y: 1}, 40, 1),
	}

	checker := material.NewLambert(material.NewCheckerboardTexture(256, 256, 32,
		core.Vec3{X: 0.9, Y: 0.9, Z: 0.9}, core.Vec3{X: 0.1, Y: 0.1, Z: 0.1}))

	leftWall := geometry.NewQuad(core.Vec3{X: -3, Y: 0, Z: -3}, core.Vec3{X: 0, Y: 0, Z: 6}, core.Vec3{X: 0, Y: 4, Z: 0}, checker)
	rightWall := geometry.NewQuad(core.Vec3{X: 3, Y: 0, Z: 3}, core.Vec3{X: 0, Y: 0, Z: -6}, core.Vec3{X: 0, Y: 4, Z: 0}, checker)
	mirror := geometry.NewSphere(core.Vec3{Y: 1}, 1.0, material.NewMirror(material.NewSolidColor(core.Vec3{X: 0.95, Y: 0.95, Z: 0.95})))

	s.Shapes = append(s.Shapes, leftWall, rightWall, mirror)
	s.AddDirectionalLight(core.Vec3{X: -1, Y: -1, Z: -1}, core.Vec3{X: 3, Y: 3, Z: 3})
	s.Build()
	return s
}

// CornellBox is scenario 4: the classic white/red/green box with an area
// light in the ceiling, used to test diffuse color bleeding.
func CornellBox() *Scene {
	s := &Scene{
		Camera: defaultCamera(core.Vec3{X: 278, Y: 278, Z: -800}, core.Vec3{X: 278, Y: 278, Z: 0}, 40, 1),
	}

	white := material.NewLambert(material.NewSolidColor(core.Vec3{X: 0.73, Y: 0.73, Z: 0.73}))
	red := material.NewLambert(material.NewSolidColor(core.Vec3{X: 0.65, Y: 0.05, Z: 0.05}))
	green := material.NewLambert(material.NewSolidColor(core.Vec3{X: 0.12, Y: 0.45, Z: 0.15}))

	floor := geometry.NewQuad(core.Vec3{}, core.Vec3{X: 555}, core.Vec3{Z: 555}, white)
	ceiling := geometry.NewQuad(core.Vec3{Y: 555}, core.Vec3{X: 555}, core.Vec3{Z: 555}, white)
	back := geometry.NewQuad(core.Vec3{Z: 555}, core.Vec3{X: 555}, core.Vec3{Y: 555}, white)
	leftWall := geometry.NewQuad(core.Vec3{}, core.Vec3{Z: 555}, core.Vec3{Y: 555}, red)
	rightWall := geometry.NewQuad(core.Vec3{X: 555}, core.Vec3{Z: 555}, core.Vec3{Y: 555}, green)

	s.Shapes = append(s.Shapes, floor, ceiling, back, leftWall, rightWall)

	light := geometry.NewQuad(core.Vec3{X: 213, Y: 554, Z: 227}, core.Vec3{X: 130}, core.Vec3{Z: 105},
		material.NewLambert(material.NewSolidColor(core.Vec3{X: 1, Y: 1, Z: 1})))
	s.AddAreaLight(light, core.Vec3{X: 15, Y: 15, Z: 15})

	s.Build()
	return s
}

// IBLDiffuseSphere is scenario 5: a Lambertian sphere lit only by a
// constant-color environment, testing IBL irradiance convergence.
func IBLDiffuseSphere() *Scene {
	s := &Scene{
		Environment: lights.NewConstantEnvironment(core.Vec3{X: 1, Y: 1, Z: 1}),
		Camera:      defaultCamera(core.Vec3{X: 0, Y: 0, Z: 3}, core.Vec3{}, 40, 1),
	}
	albedo := material.NewSolidColor(core.Vec3{X: 1, Y: 1, Z: 1})
	sphere := geometry.NewSphere(core.Vec3{}, 1.0, material.NewLambert(albedo))
	s.Shapes = append(s.Shapes, sphere)
	s.Build()
	return s
}

// GlassCaustic is scenario 6: a glass sphere between a small spherical area
// light (radius 0.05) and a white plane, producing a focused caustic.
func GlassCaustic() *Scene {
	s := &Scene{
		Environment: lights.NewConstantEnvironment(core.Vec3{}),
		Camera:      defaultCamera(core.Vec3{X: 0, Y: 2, Z: 5}, core.Vec3{Y: -1}, 40, 1),
	}

	plane := geometry.NewQuad(core.Vec3{X: -5, Y: -1, Z: -5}, core.Vec3{X: 10}, core.Vec3{Z: 10},
		material.NewLambert(material.NewSolidColor(core.Vec3{X: 0.9, Y: 0.9, Z: 0.9})))
	glass := geometry.NewSphere(core.Vec3{Y: 0.5}, 1.0, material.NewGlass(1.5))

	s.Shapes = append(s.Shapes, plane, glass)
	s.AddAreaLight(
		geometry.NewSphere(core.Vec3{X: 0, Y: 4, Z: 0}, 0.05, material.NewLambert(material.NewSolidColor(core.Vec3{}))),
		core.Vec3{X: 800, Y: 800, Z: 800},
	)
	s.Build()
	return s
}

// ByName resolves one of the built-in scenarios by its configuration name.
func ByName(name string) (*Scene, bool) {
	switch name {
	case "empty-environment":
		return EmptyEnvironment(), true
	case "single-sphere-directional-light":
		return SingleSphereDirectionalLight(), true
	case "mirror-checkerboard":
		return MirrorCheckerboard(), true
	case "cornell-box":
		return CornellBox(), true
	case "ibl-diffuse-sphere":
		return IBLDiffuseSphere(), true
	case "glass-caustic":
		return GlassCaustic(), true
	default:
		return nil, false
	}
}
