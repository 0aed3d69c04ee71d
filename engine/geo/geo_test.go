package geo

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/terra-go/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocentricRoundTrip(t *testing.T) {
	g := NewGeocentricServices()
	cases := []struct {
		name             string
		lon, lat, height float64
	}{
		{"equator", 0, 0, 0},
		{"greenwich-high", 0, mgl64.DegToRad(51.48), 1000},
		{"antimeridian", math.Pi, mgl64.DegToRad(-33), 0},
		{"deep-south", mgl64.DegToRad(-70), mgl64.DegToRad(-80), 2500},
		{"near-pole", mgl64.DegToRad(10), mgl64.DegToRad(89.5), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			world := g.ToWorld(c.lon, c.lat, c.height)
			lon, lat, height := g.ToCartographic(world)
			assert.InDelta(t, c.lon, lon, 1e-9)
			assert.InDelta(t, c.lat, lat, 1e-9)
			assert.InDelta(t, c.height, height, 1e-4)
		})
	}
}

func TestGeocentricEquatorPoint(t *testing.T) {
	g := NewGeocentricServices()
	world := g.ToWorld(0, 0, 0)
	assert.InDelta(t, WGS84SemiMajorAxis, world.X(), 1e-6)
	assert.InDelta(t, 0, world.Y(), 1e-6)
	assert.InDelta(t, 0, world.Z(), 1e-6)
}

func TestGeocentricPole(t *testing.T) {
	g := NewGeocentricServices()
	world := g.ToWorld(0, math.Pi/2, 0)
	assert.InDelta(t, WGS84SemiMinorAxis, world.Z(), 1e-6)

	_, lat, height := g.ToCartographic(mgl64.Vec3{0, 0, WGS84SemiMinorAxis + 100})
	assert.InDelta(t, math.Pi/2, lat, 1e-9)
	assert.InDelta(t, 100, height, 1e-4)
}

func TestLocalToWorldFrameIsOrthonormal(t *testing.T) {
	g := NewGeocentricServices()
	pos := g.ToWorld(mgl64.DegToRad(8.5), mgl64.DegToRad(46.5), 0)
	frame := g.LocalToWorldMatrix(pos)

	east := common.XAxis(frame)
	north := common.YAxis(frame)
	up := common.ZAxis(frame)

	assert.InDelta(t, 1, east.Len(), 1e-9)
	assert.InDelta(t, 1, north.Len(), 1e-9)
	assert.InDelta(t, 1, up.Len(), 1e-9)
	assert.InDelta(t, 0, east.Dot(north), 1e-9)
	assert.InDelta(t, 0, east.Dot(up), 1e-9)
	assert.InDelta(t, 0, north.Dot(up), 1e-9)

	// right-handed: east x north = up
	assert.InDelta(t, 0, east.Cross(north).Sub(up).Len(), 1e-9)
	// the frame carries the position
	assert.InDelta(t, 0, common.Translation(frame).Sub(pos).Len(), 1e-9)
	// up roughly points away from the planet center
	assert.Greater(t, up.Dot(pos.Normalize()), 0.99)
}

func TestIntersectGeocentricLineHit(t *testing.T) {
	g := NewGeocentricServices()
	// looking straight down the x axis from 2 radii out
	p0 := mgl64.Vec3{2 * WGS84SemiMajorAxis, 0, 0}
	p1 := mgl64.Vec3{0, 0, 0}
	hit, ok := g.IntersectGeocentricLine(p0, p1)
	require.True(t, ok)
	assert.InDelta(t, WGS84SemiMajorAxis, hit.X(), 1e-3)
	assert.InDelta(t, 0, hit.Y(), 1e-6)
	assert.InDelta(t, 0, hit.Z(), 1e-6)
}

func TestIntersectGeocentricLineNearestHit(t *testing.T) {
	g := NewGeocentricServices()
	// a segment all the way through the globe must return the near side
	p0 := mgl64.Vec3{3 * WGS84SemiMajorAxis, 0, 0}
	p1 := mgl64.Vec3{-3 * WGS84SemiMajorAxis, 0, 0}
	hit, ok := g.IntersectGeocentricLine(p0, p1)
	require.True(t, ok)
	assert.Greater(t, hit.X(), 0.0)
}

func TestIntersectGeocentricLineMiss(t *testing.T) {
	g := NewGeocentricServices()
	// segment passing well above the north pole
	p0 := mgl64.Vec3{2 * WGS84SemiMajorAxis, 0, 2 * WGS84SemiMajorAxis}
	p1 := mgl64.Vec3{-2 * WGS84SemiMajorAxis, 0, 2 * WGS84SemiMajorAxis}
	_, ok := g.IntersectGeocentricLine(p0, p1)
	assert.False(t, ok)

	// segment that stops short of the surface
	_, ok = g.IntersectGeocentricLine(
		mgl64.Vec3{3 * WGS84SemiMajorAxis, 0, 0},
		mgl64.Vec3{2 * WGS84SemiMajorAxis, 0, 0},
	)
	assert.False(t, ok)
}

func TestCustomRadii(t *testing.T) {
	g := NewGeocentricServices(WithRadii(1000, 800))
	assert.Equal(t, 1000.0, g.SemiMajorAxis())
	world := g.ToWorld(0, 0, 0)
	assert.InDelta(t, 1000, world.X(), 1e-9)
}

func TestPlanarPassthrough(t *testing.T) {
	p := NewPlanarServices(WithBounds(mgl64.Vec3{-100, -50, 0}, mgl64.Vec3{100, 50, 0}))
	assert.False(t, p.IsGeocentric())
	assert.Equal(t, 0.0, p.SemiMajorAxis())

	x, y, h := p.ToCartographic(mgl64.Vec3{12, -7, 3})
	assert.Equal(t, 12.0, x)
	assert.Equal(t, -7.0, y)
	assert.Equal(t, 3.0, h)
	assert.Equal(t, mgl64.Vec3{12, -7, 3}, p.ToWorld(12, -7, 3))

	frame := p.LocalToWorldMatrix(mgl64.Vec3{12, -7, 3})
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, common.ZAxis(frame))
	assert.Equal(t, mgl64.Vec3{12, -7, 3}, common.Translation(frame))

	_, ok := p.IntersectGeocentricLine(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1})
	assert.False(t, ok)

	min, max := p.Bounds()
	assert.Equal(t, mgl64.Vec3{-100, -50, 0}, min)
	assert.Equal(t, mgl64.Vec3{100, 50, 0}, max)
}
