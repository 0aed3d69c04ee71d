package manipulator

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/terra-go/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Viewpoint is a camera pose expressed geospatially: a cartographic focal
// point, a heading and pitch in radians, and the eye range in meters. It is
// stable across sessions and map modes in a way raw matrices are not.
type Viewpoint struct {
	Lon, Lat, Height float64
	Heading          float64
	Pitch            float64
	Range            float64
}

// transition is an in-flight fly-to between two viewpoints.
type transition struct {
	from, to     Viewpoint
	fromWorld    mgl64.Vec3
	toWorld      mgl64.Vec3
	duration     float64
	arcHeight    float64
	headingDelta float64
	started      *time.Time
}

// Viewpoint returns the current camera pose as a Viewpoint.
//
// Returns:
//   - Viewpoint: the current pose
func (m *manipulatorImpl) Viewpoint() Viewpoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentViewpoint()
}

func (m *manipulatorImpl) currentViewpoint() Viewpoint {
	lon, lat, height := m.geo.ToCartographic(m.state.center)
	heading, pitch := GetEulerAngles(m.state.localRotation)
	return Viewpoint{
		Lon:     lon,
		Lat:     lat,
		Height:  height,
		Heading: heading,
		Pitch:   pitch,
		Range:   m.state.distance,
	}
}

// SetViewpoint flies the camera to a viewpoint over the given duration.
// A non-positive duration jumps immediately. While a transition is active,
// heading interpolates the short way around, range follows an optional
// ballistic arc sized from the travel distance, and the focal point tracks
// the great-circle chord on a globe. Scheduling a new transition or any
// direct camera motion replaces the one in flight.
//
// Parameters:
//   - vp: the destination pose
//   - duration: travel time in seconds; <= 0 applies vp immediately
func (m *manipulatorImpl) SetViewpoint(vp Viewpoint, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setViewpoint(vp, duration)
}

func (m *manipulatorImpl) setViewpoint(vp Viewpoint, duration float64) {
	m.task.reset()
	m.continuous = false

	if duration <= 0 {
		m.transition = nil
		m.applyViewpoint(vp)
		return
	}

	from := m.currentViewpoint()
	tr := &transition{
		from:      from,
		to:        vp,
		fromWorld: m.geo.ToWorld(from.Lon, from.Lat, from.Height),
		toWorld:   m.geo.ToWorld(vp.Lon, vp.Lat, vp.Height),
		duration:  duration,
	}

	travel := tr.toWorld.Sub(tr.fromWorld).Len()
	if m.settings.ArcViewpointTransitions() {
		h0 := from.Range * math.Sin(-from.Pitch)
		h1 := vp.Range * math.Sin(-vp.Pitch)
		tr.arcHeight = math.Max(travel-math.Abs(h1-h0), 0)
	}
	tr.headingDelta = common.NormalizeAzimuth(vp.Heading - from.Heading)

	if m.settings.AutoViewpointDuration() {
		tr.duration = m.autoDuration(travel)
	}
	m.transition = tr
}

// autoDuration maps travel distance to a duration between the configured
// bounds, with fast acceleration so short hops stay short.
func (m *manipulatorImpl) autoDuration(travel float64) float64 {
	ratio := common.Clamp(travel/m.maxTravel(), 0, 1)
	ratio = accelerationInterp(ratio, -4.5)
	min := m.settings.MinAutoViewpointDuration()
	max := m.settings.MaxAutoViewpointDuration()
	return min + ratio*(max-min)
}

func (m *manipulatorImpl) maxTravel() float64 {
	if m.geo.IsGeocentric() {
		return m.geo.SemiMajorAxis()
	}
	min, max := m.geo.Bounds()
	travel := max.Sub(min).Len()
	if travel <= 0 {
		return 1
	}
	return travel
}

// serviceTransition advances an in-flight fly-to. The first service records
// the start time and leaves the pose untouched, so the transition's clock
// starts at the first frame after scheduling.
func (m *manipulatorImpl) serviceTransition(now time.Time) {
	tr := m.transition
	if tr == nil {
		return
	}
	if tr.started == nil {
		start := now
		tr.started = &start
		return
	}

	t := 1.0
	if tr.duration > 0 {
		t = math.Min(now.Sub(*tr.started).Seconds()/tr.duration, 1.0)
	}
	tp := smoothStepInterp(t)

	var center mgl64.Vec3
	if m.geo.IsGeocentric() {
		center = common.Nlerp(tr.fromWorld, tr.toWorld, tp)
	} else {
		center = common.Lerp(tr.fromWorld, tr.toWorld, tp)
	}
	heading := common.NormalizeAzimuth(tr.from.Heading + tp*tr.headingDelta)
	pitch := tr.from.Pitch + tp*(tr.to.Pitch-tr.from.Pitch)
	rng := tr.from.Range + tp*(tr.to.Range-tr.from.Range) + math.Sin(math.Pi*tp)*tr.arcHeight

	m.setLookAt(center, heading, pitch, rng)
	if t >= 1 {
		m.transition = nil
	}
}

// applyViewpoint jumps directly to a viewpoint.
func (m *manipulatorImpl) applyViewpoint(vp Viewpoint) {
	center := m.geo.ToWorld(vp.Lon, vp.Lat, vp.Height)
	m.setLookAt(center, vp.Heading, vp.Pitch, vp.Range)
}

// setLookAt poses the camera over a world-space center with the given
// heading, pitch, and range, honoring pitch and distance limits.
func (m *manipulatorImpl) setLookAt(center mgl64.Vec3, heading, pitch, rng float64) {
	minPitch := mgl64.DegToRad(math.Max(m.settings.MinPitch(), -89.9))
	maxPitch := mgl64.DegToRad(math.Min(m.settings.MaxPitch(), -0.1))
	pitch = common.Clamp(pitch, minPitch, maxPitch)

	m.setCenter(center)
	m.setDistance(rng)
	m.state.localRotation = GetQuaternion(common.NormalizeAzimuth(heading), pitch)
}

// accelerationInterp remaps t in [0,1] with exponential acceleration; a
// negative a decelerates (fast start, slow finish).
func accelerationInterp(t, a float64) float64 {
	switch {
	case a == 0:
		return t
	case a > 0:
		return math.Pow(t, math.Pow(10, a))
	default:
		return 1.0 - math.Pow(1.0-t, math.Pow(10, -a))
	}
}

// smoothStepInterp is the cubic ease-in-out 3t^2 - 2t^3.
func smoothStepInterp(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}
