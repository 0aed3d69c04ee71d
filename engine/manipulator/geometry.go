package manipulator

import (
	"math"

	"github.com/Carmen-Shannon/terra-go/common"
	"github.com/Carmen-Shannon/terra-go/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
)

// cameraState is the orbital camera model: a world-space center, the tangent
// frame at the center, a local rotation relative to that frame, and the eye
// distance along the rotated view axis.
type cameraState struct {
	center         mgl64.Vec3
	centerRotation mgl64.Mat4
	localRotation  mgl64.Quat
	distance       float64
}

func newCameraState() cameraState {
	return cameraState{
		centerRotation: mgl64.Ident4(),
		localRotation:  mgl64.QuatIdent(),
		distance:       1.0,
	}
}

// worldMatrix composes the camera-to-world transform. The view matrix is its
// inverse.
func (s cameraState) worldMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(s.center.X(), s.center.Y(), s.center.Z()).
		Mul4(s.centerRotation).
		Mul4(s.localRotation.Mat4()).
		Mul4(mgl64.Translate3D(0, 0, s.distance))
}

// eye returns the camera position in world space.
func (s cameraState) eye() mgl64.Vec3 {
	return common.Translation(s.worldMatrix())
}

// lookVector returns the normalized world-space view direction.
func (s cameraState) lookVector() mgl64.Vec3 {
	return common.ZAxis(s.worldMatrix()).Mul(-1).Normalize()
}

// setCenter moves the orbit center and realigns the tangent frame to the
// local surface orientation there.
func (m *manipulatorImpl) setCenter(worldPos mgl64.Vec3) {
	m.state.center = worldPos
	m.state.centerRotation = common.StripTranslation(m.geo.LocalToWorldMatrix(worldPos))
}

// setDistance sets the eye distance, clamped to the configured range.
func (m *manipulatorImpl) setDistance(d float64) {
	m.state.distance = common.Clamp(d, m.settings.MinDistance(), m.settings.MaxDistance())
}

// pan slides the orbit center across the local tangent plane. The step is
// proportional to the eye distance so a screen-width drag covers a similar
// screen-space span at any altitude. On a globe the moved center is put back
// at the height it started from, and the tangent frame realignment in
// setCenter keeps the camera upright as it crosses the surface.
func (m *manipulatorImpl) pan(dx, dy float64) {
	scale := -0.3 * m.state.distance
	world := m.state.worldMatrix()

	xAxis := common.XAxis(world).Normalize()
	yAxis := common.ZAxis(m.state.centerRotation).Cross(xAxis).Normalize()

	ox := dx * scale
	oy := dy * scale
	if max := m.settings.MaxXOffset(); max > 0 {
		ox = common.Clamp(ox, -max, max)
	}
	if max := m.settings.MaxYOffset(); max > 0 {
		oy = common.Clamp(oy, -max, max)
	}

	dv := xAxis.Mul(ox).Add(yAxis.Mul(oy))
	newCenter := m.state.center.Add(dv)
	if m.geo.IsGeocentric() {
		newCenter = m.adjustToSameHeight(m.state.center, newCenter)
	}

	if m.settings.LockAzimuthWhilePanning() {
		// setCenter realigns the tangent frame and the unchanged local
		// rotation rides along with it, holding the heading steady.
		m.setCenter(newCenter)
	} else {
		worldRot := mgl64.Mat4ToQuat(m.state.centerRotation).Mul(m.state.localRotation)
		m.setCenter(newCenter)
		m.state.localRotation = mgl64.Mat4ToQuat(m.state.centerRotation).Inverse().Mul(worldRot)
	}
	m.collisionDetect()
}

// adjustToSameHeight returns pt moved vertically to the ellipsoid height of
// ref.
func (m *manipulatorImpl) adjustToSameHeight(ref, pt mgl64.Vec3) mgl64.Vec3 {
	_, _, refHeight := m.geo.ToCartographic(ref)
	lon, lat, _ := m.geo.ToCartographic(pt)
	return m.geo.ToWorld(lon, lat, refHeight)
}

// rotate orbits the camera about the center. dx adjusts azimuth, dy adjusts
// pitch. A dy step that would carry the pitch outside the configured limits
// (or the hard -89.9..-0.1 degree range) is dropped entirely, so repeated
// steps converge on the limit without overshooting or sticking.
func (m *manipulatorImpl) rotate(dx, dy float64) {
	minPitch := mgl64.DegToRad(math.Max(m.settings.MinPitch(), -89.9))
	maxPitch := mgl64.DegToRad(math.Min(m.settings.MaxPitch(), -0.1))

	_, pitch := GetEulerAngles(m.state.localRotation)
	if pitch+dy > maxPitch || pitch+dy < minPitch {
		dy = 0
	}

	frame := m.state.localRotation.Mat4()
	tangent := common.XAxis(frame).Normalize()
	elevation := mgl64.QuatRotate(dy, tangent)
	azimuth := mgl64.QuatRotate(-dx, mgl64.Vec3{0, 0, 1})

	m.state.localRotation = azimuth.Mul(elevation).Mul(m.state.localRotation)
	m.collisionDetect()
}

// zoom moves the eye toward or away from the center. dy > 0 backs out,
// dy < 0 closes in. Under an orthographic projection distance is
// meaningless, so the projection volume is scaled instead.
func (m *manipulatorImpl) zoom(dx, dy float64) {
	if ortho, ok := m.cam.Projection().(*camera.Orthographic); ok {
		factor := 1.0625
		if dy > 0 {
			factor = 1.0 / factor
		}
		ortho.Scale(factor)
		m.cam.SetProjection(ortho)
		return
	}
	m.setDistance(m.state.distance * (1.0 + dy))
	m.collisionDetect()
}

// recalculateCenter re-derives the orbit center by casting the current look
// ray at the scene. The scene intersector is consulted first, the reference
// ellipsoid (or ground plane) second. On a globe the hit's radius is applied
// along the existing center direction rather than replacing the center
// outright, which keeps the tangent frame from snapping mid-gesture.
//
// Returns:
//   - bool: whether an intersection was found and the center updated
func (m *manipulatorImpl) recalculateCenter() bool {
	eye := m.state.eye()
	look := m.state.lookVector()

	point, ok := m.intersectLookRay(eye, look)
	if !ok {
		return false
	}
	if m.geo.IsGeocentric() {
		direction := m.state.center.Normalize()
		m.setCenter(direction.Mul(point.Len()))
	} else {
		m.setCenter(point)
	}
	return true
}

func (m *manipulatorImpl) intersectLookRay(eye, look mgl64.Vec3) (mgl64.Vec3, bool) {
	if m.intersector != nil {
		end := eye.Add(look.Mul(m.state.distance * 1.5))
		if point, ok := m.intersector.Intersect(eye, end); ok {
			return point, true
		}
	}
	if m.geo.IsGeocentric() {
		end := eye.Add(look.Mul(1e10))
		return m.geo.IntersectGeocentricLine(eye, end)
	}
	// ground plane z = 0
	if common.Equiv(look.Z(), 0) {
		return mgl64.Vec3{}, false
	}
	t := -eye.Z() / look.Z()
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return eye.Add(look.Mul(t)), true
}

// collisionDetect pushes the eye out of intersected geometry. A vertical
// probe through the eye finds the surface; when the eye sits below the
// clearance point above that surface, the orbit distance is shortened so
// the eye lands on the clearance point.
func (m *manipulatorImpl) collisionDetect() {
	if m.intersector == nil || !m.settings.TerrainAvoidance() {
		return
	}
	eye := m.state.eye()
	up := common.ZAxis(m.geo.LocalToWorldMatrix(eye)).Normalize()

	probe := m.probeLength()
	point, ok := m.intersector.Intersect(eye.Add(up.Mul(probe)), eye.Sub(up.Mul(probe)))
	if !ok {
		return
	}
	clearance := point.Add(up.Mul(m.settings.TerrainAvoidanceMinDistance()))
	below := eye.Sub(clearance).Normalize()
	if up.Dot(below) > 0 {
		return
	}
	m.setDistance(clearance.Sub(m.state.center).Len())
}

func (m *manipulatorImpl) probeLength() float64 {
	if m.geo.IsGeocentric() {
		return m.geo.SemiMajorAxis()
	}
	min, max := m.geo.Bounds()
	return max.Sub(min).Len()
}

// home resets to the stored home position and distance with an identity
// local rotation (straight overhead view), cancelling any pending input,
// tasks, and transitions.
func (m *manipulatorImpl) home() {
	m.state.localRotation = mgl64.QuatIdent()
	m.setCenter(m.homePosition)
	m.setDistance(m.homeDistance)
	m.transition = nil
	m.clearEvents(true)
}

// reinitializeHome derives the default home pose from the geospatial
// services: on a globe, over the equator at the prime antimeridian side of
// the X axis at 3.5 radii; on a plane, over the middle of the bounds at 3.5
// times the half-width.
func (m *manipulatorImpl) reinitializeHome() {
	if m.geo.IsGeocentric() {
		radius := m.geo.SemiMajorAxis()
		m.homePosition = mgl64.Vec3{radius, 0, 0}
		m.homeDistance = radius * 3.5
		return
	}
	min, max := m.geo.Bounds()
	mid := min.Add(max).Mul(0.5)
	m.homePosition = mgl64.Vec3{mid.X(), mid.Y(), 0}
	radius := (max.X() - min.X()) * 0.5
	if radius <= 0 {
		radius = 1
	}
	m.homeDistance = radius * 3.5
}
