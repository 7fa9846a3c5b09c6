package material

import (
	"math"

	"github.com/rayshard/pathtracer/pkg/core"
)

// Texture is a spatially-varying color source for a material's base color
// channel: image textures key off UV, procedural ones may also consult the
// world-space point.
type Texture interface {
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor is a constant texture, the common case for a plain-colored
// material.
type SolidColor struct {
	Color core.Vec3
}

func NewSolidColor(c core.Vec3) SolidColor { return SolidColor{Color: c} }

func (s SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 { return s.Color }

// ImageTexture holds a decoded 2D image and samples it with bilinear
// filtering, the texture-quality bar the spec's environment sampler also
// holds itself to.
type ImageTexture struct {
	Width, Height int
	Pixels        []core.Vec3 // row-major, Pixels[y*Width+x]
}

func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

func (t *ImageTexture) at(x, y int) core.Vec3 {
	if x < 0 {
		x = 0
	}
	if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

// Evaluate samples the texture with bilinear interpolation; UV wraps to
// [0,1) and V=0 is the image's bottom row.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	fx := u*float64(t.Width) - 0.5
	fy := (1.0 - v) * float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - math.Floor(fx)
	ty := fy - math.Floor(fy)

	c00 := t.at(x0, y0)
	c10 := t.at(x0+1, y0)
	c01 := t.at(x0, y0+1)
	c11 := t.at(x0+1, y0+1)

	top := c00.Multiply(1 - tx).Add(c10.Multiply(tx))
	bottom := c01.Multiply(1 - tx).Add(c11.Multiply(tx))
	return top.Multiply(1 - ty).Add(bottom.Multiply(ty))
}

// NewCheckerboardTexture builds a procedural checkerboard baked into an
// ImageTexture so it shares the same bilinear sampling path as a loaded
// image.
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			checkX := x / checkSize
			checkY := y / checkSize
			if (checkX+checkY)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}
	return NewImageTexture(width, height, pixels)
}

// NewGradientTexture builds a vertical gradient from color1 (top) to
// color2 (bottom).
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		color := color1.Multiply(1.0 - t).Add(color2.Multiply(t))
		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}
	return NewImageTexture(width, height, pixels)
}
