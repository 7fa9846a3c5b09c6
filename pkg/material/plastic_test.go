package material

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayshard/pathtracer/pkg/core"
)

func TestPlasticScatterChoosesAValidBranch(t *testing.T) {
	diffuse := core.Vec3{X: 0.2, Y: 0.2, Z: 0.2}
	specular := core.Vec3{X: 0.9, Y: 0.9, Z: 0.9}
	p := NewPlastic(NewSolidColor(diffuse), NewSolidColor(specular), 32)
	hit := upwardHit()
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		result, ok := p.Scatter(core.NewRay(core.Vec3{Y: 1}, core.Vec3{X: 0.1, Y: -1}.Normalize()), hit, random)
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, result.Scattered.Direction.Dot(hit.Normal), 0.0)
		assert.Greater(t, result.PDF, 0.0)
	}
}

func TestPlasticPhongBranchThresholdUsesSpecularNotDiffuse(t *testing.T) {
	// Forcing random.Float64() below pPhong always selects the Phong branch;
	// a source that returns 0 first guarantees that regardless of pPhong's value.
	diffuse := core.Vec3{X: 0.01, Y: 0.01, Z: 0.01}
	specular := core.Vec3{X: 0.95, Y: 0.95, Z: 0.95}
	p := NewPlastic(NewSolidColor(diffuse), NewSolidColor(specular), 32)
	hit := upwardHit()
	random := rand.New(zeroSource{})

	result, ok := p.Scatter(core.NewRay(core.Vec3{Y: 1}, core.Vec3{Y: -1}), hit, random)
	require.True(t, ok)
	assert.InDelta(t, core.RRThreshold(specular), result.Threshold, 1e-9,
		"the Phong branch must derive its Russian-roulette threshold from the specular color")
}

func TestPlasticDiffuseBranchThresholdUsesDiffuse(t *testing.T) {
	diffuse := core.Vec3{X: 0.3, Y: 0.3, Z: 0.3}
	specular := core.Vec3{X: 0.9, Y: 0.9, Z: 0.9}
	p := NewPlastic(NewSolidColor(diffuse), NewSolidColor(specular), 32)
	hit := upwardHit()
	random := rand.New(oneSource{})

	result, ok := p.Scatter(core.NewRay(core.Vec3{Y: 1}, core.Vec3{Y: -1}), hit, random)
	require.True(t, ok)
	assert.InDelta(t, core.RRThreshold(diffuse), result.Threshold, 1e-9)
}

func TestPlasticIsNotDelta(t *testing.T) {
	require.False(t, NewPlastic(NewSolidColor(core.Vec3{}), NewSolidColor(core.Vec3{}), 8).IsDelta())
}

// zeroSource and oneSource are deterministic rand.Source64 stand-ins that
// pin Float64() at the low or high end of [0,1) to force Plastic's branch
// selection in tests.
type zeroSource struct{}

func (zeroSource) Seed(int64)       {}
func (zeroSource) Int63() int64     { return 0 }
func (zeroSource) Uint64() uint64   { return 0 }

type oneSource struct{}

func (oneSource) Seed(int64)     {}
func (oneSource) Int63() int64   { return 1<<63 - 1<<10 } // largest value whose float64 stays below 2^63
func (oneSource) Uint64() uint64 { return ^uint64(0) }
