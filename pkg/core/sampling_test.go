package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCosineDirectionStaysInHemisphere(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	normal := Vec3{Y: 1}
	for i := 0; i < 50; i++ {
		d := RandomCosineDirection(normal, random)
		assert.InDelta(t, 1.0, d.Length(), 1e-6)
		assert.GreaterOrEqual(t, d.Dot(normal), 0.0)
	}
}

func TestOrthonormalBasisIsOrthogonalToNormal(t *testing.T) {
	n := Vec3{X: 0.3, Y: 0.5, Z: 0.8}.Normalize()
	tangent, bitangent := OrthonormalBasis(n)

	assert.InDelta(t, 0.0, tangent.Dot(n), 1e-9)
	assert.InDelta(t, 0.0, bitangent.Dot(n), 1e-9)
	assert.InDelta(t, 0.0, tangent.Dot(bitangent), 1e-9)
}

func TestReflectAboutNormalPreservesLength(t *testing.T) {
	v := Vec3{X: -1, Y: -1}.Normalize()
	n := Vec3{Y: 1}
	r := Reflect(v, n)
	assert.InDelta(t, 1.0, r.Length(), 1e-9)
	assert.InDelta(t, v.Y*-1, r.Y, 1e-9)
}

func TestRefractReturnsFalseOnTotalInternalReflection(t *testing.T) {
	// A grazing ray exiting a denser medium (ior ratio 1.5) must exceed the
	// critical angle and report total internal reflection.
	grazing := Vec3{X: 1, Y: -0.01}.Normalize()
	n := Vec3{Y: -1}
	_, ok := Refract(grazing, n, 1.5)
	assert.False(t, ok)
}

func TestRefractPassesStraightThroughAtNormalIncidence(t *testing.T) {
	v := Vec3{Y: -1}
	n := Vec3{Y: 1}
	r, ok := Refract(v, n, 1.0)
	require.True(t, ok)
	assert.InDelta(t, 0.0, r.X, 1e-9)
	assert.InDelta(t, -1.0, r.Y, 1e-6, "a straight-on ray through matched indices should pass through unbent")
}

func TestSchlickReflectanceIsOneAtGrazingAngle(t *testing.T) {
	r := SchlickReflectance(0, 1.5)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestSchlickReflectanceAtNormalIncidenceMatchesR0(t *testing.T) {
	iorRatio := 1.0 / 1.5
	r0 := math.Pow((1-iorRatio)/(1+iorRatio), 2)
	r := SchlickReflectance(1.0, iorRatio)
	assert.InDelta(t, r0, r, 1e-9)
}

func TestRRThresholdUsesMaxComponentWithFloor(t *testing.T) {
	assert.InDelta(t, 0.9, RRThreshold(Vec3{X: 0.9, Y: 0.1, Z: 0.2}), 1e-9)
	assert.InDelta(t, 0.01, RRThreshold(Vec3{X: 0.001, Y: 0.002, Z: 0.003}), 1e-9)
}

type stubLight struct {
	pdf      float64
	emission Vec3
}

func (s stubLight) Sample(point Vec3, u Vec2) (Vec3, float64, Vec3, float64) {
	return Vec3{Y: 1}, 10, s.emission, s.pdf
}
func (s stubLight) PDF(point Vec3, direction Vec3) float64 { return s.pdf }
func (s stubLight) Emit(ray Ray) Vec3                      { return Vec3{} }
func (s stubLight) IsDelta() bool                           { return false }

func TestSampleLightFoldsInSelectionProbability(t *testing.T) {
	lights := []Light{stubLight{pdf: 2.0, emission: Vec3{X: 1}}, stubLight{pdf: 2.0, emission: Vec3{X: 1}}}
	random := rand.New(rand.NewSource(3))

	result, ok := SampleLight(lights, Vec3{}, random)
	require.True(t, ok)
	assert.InDelta(t, 1.0, result.PDF, 1e-9, "the sampled light's PDF must be divided by the light count")
}

func TestSampleLightReturnsFalseWithNoLights(t *testing.T) {
	_, ok := SampleLight(nil, Vec3{}, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestCalculateLightPDFAveragesAcrossLights(t *testing.T) {
	lights := []Light{stubLight{pdf: 4.0}, stubLight{pdf: 0.0}}
	pdf := CalculateLightPDF(lights, Vec3{}, Vec3{Y: 1})
	assert.InDelta(t, 2.0, pdf, 1e-9)
}

func TestCalculateLightPDFWithNoLightsIsZero(t *testing.T) {
	assert.Equal(t, 0.0, CalculateLightPDF(nil, Vec3{}, Vec3{Y: 1}))
}
