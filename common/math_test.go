package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(0.5, 1, 10))
	assert.Equal(t, 10.0, Clamp(11, 1, 10))
	assert.Equal(t, 5.0, Clamp(5, 1, 10))
}

func TestNormalizeAzimuth(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi / 2, -math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, NormalizeAzimuth(c.in), 1e-12, "in=%v", c.in)
	}
}

func TestNormalizeAzimuthRange(t *testing.T) {
	for a := -20.0; a <= 20.0; a += 0.37 {
		got := NormalizeAzimuth(a)
		assert.LessOrEqual(t, got, math.Pi+1e-12)
		assert.GreaterOrEqual(t, got, -math.Pi-1e-12)
		// the folded angle points the same way
		assert.InDelta(t, math.Sin(a), math.Sin(got), 1e-9)
		assert.InDelta(t, math.Cos(a), math.Cos(got), 1e-9)
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := mgl64.Vec3{1, 2, 3}
	b := mgl64.Vec3{-4, 0, 9}
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, -1.5, mid.X(), 1e-12)
}

func TestNlerpStaysOffChord(t *testing.T) {
	// two points on a sphere of radius 10; the midpoint must keep radius 10
	// instead of cutting through the sphere.
	a := mgl64.Vec3{10, 0, 0}
	b := mgl64.Vec3{0, 10, 0}
	mid := Nlerp(a, b, 0.5)
	assert.InDelta(t, 10.0, mid.Len(), 1e-9)

	// endpoints are preserved
	assert.InDelta(t, 0, Nlerp(a, b, 0).Sub(a).Len(), 1e-9)
	assert.InDelta(t, 0, Nlerp(a, b, 1).Sub(b).Len(), 1e-9)
}

func TestNlerpBlendsRadius(t *testing.T) {
	a := mgl64.Vec3{10, 0, 0}
	b := mgl64.Vec3{0, 20, 0}
	mid := Nlerp(a, b, 0.5)
	assert.InDelta(t, 15.0, mid.Len(), 1e-9)
}

func TestAxisExtraction(t *testing.T) {
	m := mgl64.Translate3D(5, 6, 7).Mul4(mgl64.HomogRotate3DZ(math.Pi / 2))
	assert.InDelta(t, 0, XAxis(m).Sub(mgl64.Vec3{0, 1, 0}).Len(), 1e-12)
	assert.InDelta(t, 0, YAxis(m).Sub(mgl64.Vec3{-1, 0, 0}).Len(), 1e-12)
	assert.InDelta(t, 0, ZAxis(m).Sub(mgl64.Vec3{0, 0, 1}).Len(), 1e-12)
	assert.Equal(t, mgl64.Vec3{5, 6, 7}, Translation(m))

	stripped := StripTranslation(m)
	assert.Equal(t, mgl64.Vec3{}, Translation(stripped))
	assert.Equal(t, XAxis(m), XAxis(stripped))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 5))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
