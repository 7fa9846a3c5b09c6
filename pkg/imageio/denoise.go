package imageio

import (
	"math"

	"github.com/rayshard/pathtracer/pkg/core"
)

// NLM kernel/support sizes matching the reference filter: a 5x5 comparison
// patch searched over a 13x13 neighborhood.
const (
	nlmKernel      = 5
	nlmSupport     = 13
	nlmHalfKernel  = nlmKernel / 2
	nlmHalfSupport = nlmSupport / 2
)

type patch [nlmKernel * nlmKernel]core.Vec3

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func at(pixels []core.Vec3, width, height, x, y int) core.Vec3 {
	x = clampInt(x, 0, width-1)
	y = clampInt(y, 0, height-1)
	return pixels[y*width+x]
}

func samplePatch(pixels []core.Vec3, width, height, x, y int) patch {
	var p patch
	i := 0
	for sx := x - nlmHalfKernel; sx <= x+nlmHalfKernel; sx++ {
		for sy := y - nlmHalfKernel; sy <= y+nlmHalfKernel; sy++ {
			p[i] = at(pixels, width, height, sx, sy)
			i++
		}
	}
	return p
}

func patchDistanceSquared(a, b patch) float64 {
	sum := 0.0
	for i := range a {
		d := a[i].Subtract(b[i])
		sum += d.Dot(d)
	}
	return sum
}

// FilterNLM denoises a linear HDR pixel buffer with a Non-Local-Means
// filter: pixels whose local 5x5 neighborhoods look alike (within a 13x13
// search window) are averaged together, weighted by how similar their
// patches are. coeff controls both the smoothing bandwidth and the noise
// floor subtracted from the patch distance.
func FilterNLM(width, height int, coeff float64, pixels []core.Vec3) []core.Vec3 {
	paramH := math.Max(0.0001, coeff)
	sigma := math.Max(0.0001, coeff)
	invHSquared := 1.0 / (paramH * paramH)
	sigmaSquared := sigma * sigma

	out := make([]core.Vec3, len(pixels))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			focus := samplePatch(pixels, width, height, x, y)

			sum := core.Vec3{}
			sumWeight := 0.0
			for sx := x - nlmHalfSupport; sx <= x+nlmHalfSupport; sx++ {
				for sy := y - nlmHalfSupport; sy <= y+nlmHalfSupport; sy++ {
					target := samplePatch(pixels, width, height, sx, sy)
					dist := patchDistanceSquared(focus, target)
					arg := -math.Max(dist-2*sigmaSquared, 0) * invHSquared
					weight := math.Exp(arg)

					sumWeight += weight
					sum = sum.Add(at(pixels, width, height, sx, sy).Multiply(weight))
				}
			}

			out[y*width+x] = sum.Multiply(1 / sumWeight)
		}
	}

	return out
}
