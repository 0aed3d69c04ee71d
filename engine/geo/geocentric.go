package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WGS-84 ellipsoid radii in meters.
const (
	WGS84SemiMajorAxis = 6378137.0
	WGS84SemiMinorAxis = 6356752.314245
)

// geocentricServices implements Services over a reference ellipsoid in an
// earth-centered, earth-fixed frame (z through the poles).
type geocentricServices struct {
	semiMajor float64
	semiMinor float64
	ecc2      float64 // first eccentricity squared
}

var _ Services = &geocentricServices{}

// NewGeocentricServices creates geospatial services for a globe. Defaults to
// the WGS-84 ellipsoid; radii can be overridden via options.
//
// Parameters:
//   - options: functional options to configure the ellipsoid
//
// Returns:
//   - Services: the geocentric services
func NewGeocentricServices(options ...GeocentricOption) Services {
	g := &geocentricServices{
		semiMajor: WGS84SemiMajorAxis,
		semiMinor: WGS84SemiMinorAxis,
	}
	for _, option := range options {
		option(g)
	}
	g.ecc2 = 1.0 - (g.semiMinor*g.semiMinor)/(g.semiMajor*g.semiMajor)
	return g
}

// GeocentricOption is a functional option for configuring geocentric services.
type GeocentricOption func(*geocentricServices)

// WithRadii sets the ellipsoid's equatorial and polar radii.
//
// Parameters:
//   - semiMajor: equatorial radius in world units
//   - semiMinor: polar radius in world units
//
// Returns:
//   - GeocentricOption: functional option to set the radii
func WithRadii(semiMajor, semiMinor float64) GeocentricOption {
	return func(g *geocentricServices) {
		g.semiMajor = semiMajor
		g.semiMinor = semiMinor
	}
}

func (g *geocentricServices) IsGeocentric() bool {
	return true
}

func (g *geocentricServices) SemiMajorAxis() float64 {
	return g.semiMajor
}

func (g *geocentricServices) Bounds() (min, max mgl64.Vec3) {
	return mgl64.Vec3{-g.semiMajor, -g.semiMajor, -g.semiMinor},
		mgl64.Vec3{g.semiMajor, g.semiMajor, g.semiMinor}
}

func (g *geocentricServices) ToWorld(lon, lat, height float64) mgl64.Vec3 {
	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	// prime vertical radius of curvature
	n := g.semiMajor / math.Sqrt(1.0-g.ecc2*sinLat*sinLat)
	return mgl64.Vec3{
		(n + height) * cosLat * math.Cos(lon),
		(n + height) * cosLat * math.Sin(lon),
		(n*(1.0-g.ecc2) + height) * sinLat,
	}
}

func (g *geocentricServices) ToCartographic(worldPos mgl64.Vec3) (lon, lat, height float64) {
	x, y, z := worldPos.X(), worldPos.Y(), worldPos.Z()
	lon = math.Atan2(y, x)

	p := math.Hypot(x, y)
	if p < 1e-9 {
		// on the polar axis
		lat = math.Copysign(math.Pi/2, z)
		height = math.Abs(z) - g.semiMinor
		return lon, lat, height
	}

	// iterative geodetic latitude recovery; converges in a few steps for
	// any point outside the core of the ellipsoid
	lat = math.Atan2(z, p*(1.0-g.ecc2))
	var n float64
	for i := 0; i < 8; i++ {
		sinLat := math.Sin(lat)
		n = g.semiMajor / math.Sqrt(1.0-g.ecc2*sinLat*sinLat)
		height = p/math.Cos(lat) - n
		lat = math.Atan2(z, p*(1.0-g.ecc2*n/(n+height)))
	}
	return lon, lat, height
}

func (g *geocentricServices) LocalToWorldMatrix(worldPos mgl64.Vec3) mgl64.Mat4 {
	lon, lat, _ := g.ToCartographic(worldPos)
	sinLon, cosLon := math.Sincos(lon)
	sinLat, cosLat := math.Sincos(lat)

	east := mgl64.Vec3{-sinLon, cosLon, 0}
	north := mgl64.Vec3{-sinLat * cosLon, -sinLat * sinLon, cosLat}
	up := mgl64.Vec3{cosLat * cosLon, cosLat * sinLon, sinLat}

	return mgl64.Mat4{
		east[0], east[1], east[2], 0,
		north[0], north[1], north[2], 0,
		up[0], up[1], up[2], 0,
		worldPos[0], worldPos[1], worldPos[2], 1,
	}
}

func (g *geocentricServices) IntersectGeocentricLine(p0, p1 mgl64.Vec3) (mgl64.Vec3, bool) {
	// scale into the space where the ellipsoid is a unit sphere
	inv := mgl64.Vec3{1.0 / g.semiMajor, 1.0 / g.semiMajor, 1.0 / g.semiMinor}
	q0 := mgl64.Vec3{p0[0] * inv[0], p0[1] * inv[1], p0[2] * inv[2]}
	q1 := mgl64.Vec3{p1[0] * inv[0], p1[1] * inv[1], p1[2] * inv[2]}
	d := q1.Sub(q0)

	a := d.Dot(d)
	if a == 0 {
		return mgl64.Vec3{}, false
	}
	b := 2.0 * q0.Dot(d)
	c := q0.Dot(q0) - 1.0

	disc := b*b - 4.0*a*c
	if disc < 0 {
		return mgl64.Vec3{}, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2.0 * a)
	t1 := (-b + sq) / (2.0 * a)

	// nearest root along the segment
	t := t0
	if t < 0 {
		t = t1
	}
	if t < 0 || t > 1 {
		return mgl64.Vec3{}, false
	}
	return p0.Add(p1.Sub(p0).Mul(t)), true
}
