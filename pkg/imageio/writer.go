package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rayshard/pathtracer/pkg/core"
	"golang.org/x/image/bmp"
)

const displayGamma = 2.2

// ToImage converts a linear HDR pixel buffer (already tone-mapped to
// roughly [0, 1]) into a gamma-corrected, 8-bit RGBA image ready to encode.
func ToImage(width, height int, pixels []core.Vec3) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	invGamma := 1.0 / displayGamma

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x]
			r := clamp01(math.Pow(clamp01(c.X), invGamma))
			g := clamp01(math.Pow(clamp01(c.Y), invGamma))
			b := clamp01(math.Pow(clamp01(c.Z), invGamma))
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * r),
				G: uint8(255 * g),
				B: uint8(255 * b),
				A: 255,
			})
		}
	}

	return img
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WriteFile encodes img to path, choosing the codec from the file
// extension (.png or .bmp); any other extension is an error rather than a
// silent default, so a typo in an output path fails loudly.
func WriteFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, path, img); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w using the codec implied by path's extension.
func Encode(w io.Writer, path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("imageio: unsupported output extension %q", filepath.Ext(path))
	}
}
