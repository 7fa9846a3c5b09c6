package scene

import (
	"fmt"
	"os"

	"github.com/rayshard/pathtracer/pkg/core"
	"github.com/rayshard/pathtracer/pkg/geometry"
	"github.com/rayshard/pathtracer/pkg/lights"
	"github.com/rayshard/pathtracer/pkg/loaders"
	"github.com/rayshard/pathtracer/pkg/material"
	"github.com/rayshard/pathtracer/pkg/renderer"
	"gopkg.in/yaml.v3"
)

// sceneDoc is the on-disk YAML shape for a scene description that isn't one
// of the built-in scenarios; it names materials once and references them
// by key from each shape, so a texture or BSDF is described a single time
// no matter how many surfaces use it.
type sceneDoc struct {
	Camera      cameraDoc             `yaml:"camera"`
	Environment *environmentDoc       `yaml:"environment"`
	Materials   map[string]materialDoc `yaml:"materials"`
	Shapes      []shapeDoc            `yaml:"shapes"`
	Lights      []lightDoc            `yaml:"lights"`
}

type cameraDoc struct {
	LookFrom    [3]float64 `yaml:"lookFrom"`
	LookAt      [3]float64 `yaml:"lookAt"`
	VFovDegrees float64    `yaml:"vfov"`
	AspectRatio float64    `yaml:"aspect"`
}

type environmentDoc struct {
	Color [3]float64 `yaml:"color"`
	HDR   string     `yaml:"hdr"`
}

type materialDoc struct {
	Type     string     `yaml:"type"` // lambert, phong, mirror, glass, plastic
	Albedo   [3]float64 `yaml:"albedo"`
	Specular [3]float64 `yaml:"specular"`
	Power    float64    `yaml:"power"`
	IOR      float64    `yaml:"ior"`
}

type shapeDoc struct {
	Type     string     `yaml:"type"` // sphere, quad
	Material string     `yaml:"material"`
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Corner   [3]float64 `yaml:"corner"`
	U        [3]float64 `yaml:"u"`
	V        [3]float64 `yaml:"v"`
}

type lightDoc struct {
	Type      string     `yaml:"type"` // area, directional
	Shape     *shapeDoc  `yaml:"shape"`
	Direction [3]float64 `yaml:"direction"`
	Emission  [3]float64 `yaml:"emission"`
}

func vec3From(v [3]float64) core.Vec3 { return core.Vec3{X: v[0], Y: v[1], Z: v[2]} }

// LoadFromFile parses a YAML scene description and assembles it into a
// Scene the same way the built-in scenarios are assembled in code.
func LoadFromFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	return buildFromDoc(doc)
}

func buildFromDoc(doc sceneDoc) (*Scene, error) {
	materials := make(map[string]material.Material, len(doc.Materials))
	for name, m := range doc.Materials {
		built, err := buildMaterial(m)
		if err != nil {
			return nil, fmt.Errorf("scene: material %q: %w", name, err)
		}
		materials[name] = built
	}

	s := &Scene{
		Camera: renderer.NewCamera(renderer.CameraConfig{
			LookFrom:    vec3From(doc.Camera.LookFrom),
			LookAt:      vec3From(doc.Camera.LookAt),
			Up:          core.Vec3{X: 0, Y: 1, Z: 0},
			VFovDegrees: doc.Camera.VFovDegrees,
			AspectRatio: doc.Camera.AspectRatio,
		}),
	}

	if doc.Environment != nil {
		if doc.Environment.HDR != "" {
			hdr, err := loaders.LoadHDR(doc.Environment.HDR)
			if err != nil {
				return nil, fmt.Errorf("scene: environment HDR: %w", err)
			}
			s.Environment = lights.NewEquirectEnvironment(material.NewImageTexture(hdr.Width, hdr.Height, hdr.Pixels))
		} else {
			s.Environment = lights.NewConstantEnvironment(vec3From(doc.Environment.Color))
		}
	}

	for i, sd := range doc.Shapes {
		mat, ok := materials[sd.Material]
		if !ok {
			return nil, fmt.Errorf("scene: shapes[%d] references unknown material %q", i, sd.Material)
		}
		shape, err := buildShape(sd, mat)
		if err != nil {
			return nil, fmt.Errorf("scene: shapes[%d]: %w", i, err)
		}
		s.Shapes = append(s.Shapes, shape)
	}

	for i, ld := range doc.Lights {
		switch ld.Type {
		case "directional":
			s.AddDirectionalLight(vec3From(ld.Direction), vec3From(ld.Emission))
		case "area":
			if ld.Shape == nil {
				return nil, fmt.Errorf("scene: lights[%d] of type area requires a shape", i)
			}
			emitterMat := material.NewLambert(material.NewSolidColor(core.Vec3{}))
			shape, err := buildShape(*ld.Shape, emitterMat)
			if err != nil {
				return nil, fmt.Errorf("scene: lights[%d] shape: %w", i, err)
			}
			emissive, ok := shape.(geometry.Emissive)
			if !ok {
				return nil, fmt.Errorf("scene: lights[%d] shape type %q cannot be an area light", i, ld.Shape.Type)
			}
			s.AddAreaLight(emissive, vec3From(ld.Emission))
		default:
			return nil, fmt.Errorf("scene: lights[%d] has unknown type %q", i, ld.Type)
		}
	}

	s.Build()
	return s, nil
}

func buildMaterial(m materialDoc) (material.Material, error) {
	albedo := material.NewSolidColor(vec3From(m.Albedo))
	switch m.Type {
	case "lambert":
		return material.NewLambert(albedo), nil
	case "phong":
		return material.NewPhong(material.NewSolidColor(vec3From(m.Specular)), m.Power), nil
	case "mirror":
		return material.NewMirror(material.NewSolidColor(vec3From(m.Specular))), nil
	case "glass":
		return material.NewGlass(m.IOR), nil
	case "plastic":
		return material.NewPlastic(albedo, material.NewSolidColor(vec3From(m.Specular)), m.Power), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func buildShape(sd shapeDoc, mat material.Material) (geometry.Shape, error) {
	switch sd.Type {
	case "sphere":
		return geometry.NewSphere(vec3From(sd.Center), sd.Radius, mat), nil
	case "quad":
		return geometry.NewQuad(vec3From(sd.Corner), vec3From(sd.U), vec3From(sd.V), mat), nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", sd.Type)
	}
}
