package geo

import "github.com/go-gl/mathgl/mgl64"

// planarServices implements Services for a projected (flat-plane) scene.
// Cartographic and world coordinates are the same thing; the local tangent
// frame is the world frame translated to the query point.
type planarServices struct {
	min mgl64.Vec3
	max mgl64.Vec3
}

var _ Services = &planarServices{}

// NewPlanarServices creates geospatial services for a projected map whose
// reference surface is the z = 0 plane.
//
// Parameters:
//   - options: functional options to configure the scene bounds
//
// Returns:
//   - Services: the planar services
func NewPlanarServices(options ...PlanarOption) Services {
	p := &planarServices{
		min: mgl64.Vec3{-1, -1, 0},
		max: mgl64.Vec3{1, 1, 0},
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// PlanarOption is a functional option for configuring planar services.
type PlanarOption func(*planarServices)

// WithBounds sets the world-space extent of the projected scene. The extent
// drives the manipulator's home position and home distance.
//
// Parameters:
//   - min: minimum corner of the scene
//   - max: maximum corner of the scene
//
// Returns:
//   - PlanarOption: functional option to set the bounds
func WithBounds(min, max mgl64.Vec3) PlanarOption {
	return func(p *planarServices) {
		p.min = min
		p.max = max
	}
}

func (p *planarServices) IsGeocentric() bool {
	return false
}

func (p *planarServices) SemiMajorAxis() float64 {
	return 0
}

func (p *planarServices) Bounds() (min, max mgl64.Vec3) {
	return p.min, p.max
}

func (p *planarServices) ToCartographic(worldPos mgl64.Vec3) (lon, lat, height float64) {
	return worldPos.X(), worldPos.Y(), worldPos.Z()
}

func (p *planarServices) ToWorld(lon, lat, height float64) mgl64.Vec3 {
	return mgl64.Vec3{lon, lat, height}
}

func (p *planarServices) LocalToWorldMatrix(worldPos mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(worldPos.X(), worldPos.Y(), worldPos.Z())
}

func (p *planarServices) IntersectGeocentricLine(p0, p1 mgl64.Vec3) (mgl64.Vec3, bool) {
	return mgl64.Vec3{}, false
}
