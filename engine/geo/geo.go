// package geo provides the geospatial services consumed by the camera
// manipulator: local tangent frames, cartographic conversion, and reference
// surface intersection, for both geocentric (globe) and planar (projected
// map) worlds.
package geo

import "github.com/go-gl/mathgl/mgl64"

// Services is the geospatial adapter consumed by the camera manipulator.
// A geocentric implementation works on a reference ellipsoid; a planar
// implementation works on the z = 0 plane of a projected scene.
type Services interface {
	// LocalToWorldMatrix returns the local tangent frame at a world position:
	// a transform whose x/y/z axes are the local east/north/up directions and
	// whose translation is the position itself.
	//
	// Parameters:
	//   - worldPos: position in world coordinates
	//
	// Returns:
	//   - mgl64.Mat4: local-to-world frame at worldPos
	LocalToWorldMatrix(worldPos mgl64.Vec3) mgl64.Mat4

	// IsGeocentric reports whether the world is a globe (ellipsoid reference
	// surface) rather than a projected plane.
	//
	// Returns:
	//   - bool: true for globe mode, false for planar mode
	IsGeocentric() bool

	// SemiMajorAxis returns the equatorial radius of the reference ellipsoid
	// in world units. Planar implementations return 0.
	//
	// Returns:
	//   - float64: equatorial radius, or 0 in planar mode
	SemiMajorAxis() float64

	// Bounds returns the world-space extent of the scene.
	//
	// Returns:
	//   - min: minimum corner of the scene bounds
	//   - max: maximum corner of the scene bounds
	Bounds() (min, max mgl64.Vec3)

	// ToCartographic converts a world position to cartographic coordinates.
	// In planar mode the world coordinates pass through unchanged.
	//
	// Parameters:
	//   - worldPos: position in world coordinates
	//
	// Returns:
	//   - lon: longitude in radians (or world x in planar mode)
	//   - lat: latitude in radians (or world y in planar mode)
	//   - height: height above the reference surface in world units
	ToCartographic(worldPos mgl64.Vec3) (lon, lat, height float64)

	// ToWorld converts cartographic coordinates to a world position.
	//
	// Parameters:
	//   - lon: longitude in radians (or world x in planar mode)
	//   - lat: latitude in radians (or world y in planar mode)
	//   - height: height above the reference surface in world units
	//
	// Returns:
	//   - mgl64.Vec3: position in world coordinates
	ToWorld(lon, lat, height float64) mgl64.Vec3

	// IntersectGeocentricLine intersects the segment p0->p1 with the
	// reference ellipsoid and returns the hit nearest to p0. Planar
	// implementations always report no hit.
	//
	// Parameters:
	//   - p0: segment start in world coordinates
	//   - p1: segment end in world coordinates
	//
	// Returns:
	//   - mgl64.Vec3: the intersection point nearest p0
	//   - bool: false when the segment misses the ellipsoid
	IntersectGeocentricLine(p0, p1 mgl64.Vec3) (mgl64.Vec3, bool)
}
