package renderer

import (
	"math"
	"math/rand"

	"github.com/rayshard/pathtracer/pkg/core"
)

// CameraConfig describes a pinhole camera placement.
type CameraConfig struct {
	LookFrom    core.Vec3
	LookAt      core.Vec3
	Up          core.Vec3
	VFovDegrees float64
	AspectRatio float64
}

// Camera is a pinhole camera producing primary rays with stratified
// sub-pixel jitter, built from a look-from/look-at/up/fov description
// rather than the raw viewport corners the original constructor baked in.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

func NewCamera(cfg CameraConfig) *Camera {
	theta := cfg.VFovDegrees * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := cfg.AspectRatio * viewportHeight

	w := cfg.LookFrom.Subtract(cfg.LookAt).Normalize()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := cfg.LookFrom.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		origin:          cfg.LookFrom,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for normalized screen coordinates (s, t), 0<=s,t<=1,
// s left-to-right and t bottom-to-top.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}

// GetStratifiedRay generates a primary ray for pixel (px, py) in an
// image of size (width, height), with the subpixel jittered within cell
// (subX, subY) of a numSubSamples x numSubSamples stratification grid.
func (c *Camera) GetStratifiedRay(px, py, width, height, subX, subY, numSubSamples int, random *rand.Rand) core.Ray {
	cellSize := 1.0 / float64(numSubSamples)
	jitterX := (float64(subX) + random.Float64()) * cellSize
	jitterY := (float64(subY) + random.Float64()) * cellSize

	s := (float64(px) + jitterX) / float64(width)
	t := 1.0 - (float64(py)+jitterY)/float64(height)

	return c.GetRay(s, t)
}
