package manipulator

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/terra-go/common"
	"github.com/Carmen-Shannon/terra-go/engine/camera"
	"github.com/Carmen-Shannon/terra-go/engine/geo"
	"github.com/Carmen-Shannon/terra-go/engine/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrNotImplemented marks operations that need renderer or platform support
// that is not wired up.
var ErrNotImplemented = errors.New("not implemented")

// doubleClickWindow is the longest gap between two clicks of the same
// button that still counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// Manipulator is an interactive controller that drives a Camera from input
// events. Feed it events in arrival order, including a FrameEvent once per
// rendered frame; frame servicing integrates active motion, advances fly-to
// transitions, and recomposes the camera's view matrix.
//
// All methods are safe for concurrent use, though events are expected to
// arrive from a single input thread.
type Manipulator interface {
	// Apply feeds one event to the controller.
	//
	// Parameters:
	//   - e: the event
	//
	// Returns:
	//   - bool: whether the event triggered or continued camera motion; for
	//     FrameEvent, whether motion remains in flight after servicing
	Apply(e Event) bool

	// Home resets the camera to the home pose, cancelling pending motion.
	Home()

	// Reinitialize re-derives the home pose from the geospatial services
	// and resets the camera to it.
	Reinitialize()

	// Settings returns the live settings; mutations take effect on the
	// next event.
	//
	// Returns:
	//   - Settings: the live settings
	Settings() Settings

	// ApplySettings replaces the controller's settings.
	//
	// Parameters:
	//   - s: the settings to adopt
	ApplySettings(s Settings)

	// Center returns the world-space orbit center.
	//
	// Returns:
	//   - mgl64.Vec3: the orbit center
	Center() mgl64.Vec3

	// Distance returns the eye distance from the orbit center.
	//
	// Returns:
	//   - float64: the distance in world units
	Distance() float64

	// HeadingPitch returns the camera's heading and pitch in radians.
	//
	// Returns:
	//   - heading: azimuth folded to (-pi, pi]
	//   - pitch: elevation, negative below the horizontal
	HeadingPitch() (heading, pitch float64)

	// Viewpoint returns the current camera pose as a Viewpoint.
	//
	// Returns:
	//   - Viewpoint: the current pose
	Viewpoint() Viewpoint

	// SetViewpoint flies the camera to a viewpoint over the given duration
	// in seconds; a non-positive duration jumps immediately.
	//
	// Parameters:
	//   - vp: the destination pose
	//   - duration: travel time in seconds
	SetViewpoint(vp Viewpoint, duration float64)

	// RecalculateCenter re-derives the orbit center by intersecting the
	// current look ray with the scene or the reference surface.
	//
	// Returns:
	//   - bool: whether an intersection was found and the center moved
	RecalculateCenter() bool

	// ScreenToWorld resolves a window coordinate to a world-space point on
	// the scene.
	//
	// Parameters:
	//   - x: window x coordinate in pixels
	//   - y: window y coordinate in pixels
	//
	// Returns:
	//   - mgl64.Vec3: the world-space point
	//   - error: ErrNotImplemented until renderer picking support lands
	ScreenToWorld(x, y float64) (mgl64.Vec3, error)

	// Animating reports whether a motion task, continuous drag, or fly-to
	// transition is in flight.
	//
	// Returns:
	//   - bool: whether the camera is animating
	Animating() bool
}

var _ Manipulator = &manipulatorImpl{}

type manipulatorImpl struct {
	mu  *sync.Mutex
	cam camera.Camera
	geo geo.Services

	intersector scene.Intersector

	// source is the live user-facing settings; settings is the snapshot
	// frame servicing reads, refreshed whenever source reports dirty.
	source   Settings
	settings Settings

	state        cameraState
	homePosition mgl64.Vec3
	homeDistance float64
	homeSet      bool

	keyPress        *KeyPressEvent
	buttonPress     *ButtonPressEvent
	currentMove     *MoveEvent
	previousMove    *MoveEvent
	lastClickTime   time.Time
	lastClickButton common.InputMask

	continuous         bool
	continuousAction   Action
	continuousDelta    mgl64.Vec2
	lastContinuousTime time.Time

	lastAction Action
	task       task
	transition *transition

	savedProjection camera.Projection
}

// NewManipulator creates a Manipulator driving the given camera over the
// given geospatial services, posed at its home viewpoint.
//
// Parameters:
//   - cam: the camera to drive
//   - services: the geospatial model (globe or planar)
//   - options: optional configuration for the manipulator
//
// Returns:
//   - Manipulator: the new controller
func NewManipulator(cam camera.Camera, services geo.Services, options ...ManipulatorOption) Manipulator {
	m := &manipulatorImpl{
		mu:         &sync.Mutex{},
		cam:        cam,
		geo:        services,
		state:      newCameraState(),
		lastAction: NullAction,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.source == nil {
		m.adoptSettings(DefaultSettings())
	}
	if !m.homeSet {
		m.reinitializeHome()
	}
	m.home()
	m.cam.SetViewMatrix(m.state.worldMatrix().Inv())
	return m
}

func (m *manipulatorImpl) adoptSettings(s Settings) {
	if m.source != nil {
		m.source.SetDirtyCallback(nil)
	}
	m.source = s
	m.settings = s.Clone()
	s.SetDirtyCallback(m.refreshSettings)
	m.revalidateState()
}

func (m *manipulatorImpl) refreshSettings() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = m.source.Clone()
	m.revalidateState()
}

// revalidateState re-clamps state that depends on configurable limits and
// drops any task scheduled under the old ones.
func (m *manipulatorImpl) revalidateState() {
	m.setDistance(m.state.distance)
	m.task.reset()
}

func (m *manipulatorImpl) Apply(e Event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ev := e.(type) {
	case KeyPressEvent:
		return m.applyKeyPress(ev)
	case KeyReleaseEvent:
		m.keyPress = nil
		return false
	case ButtonPressEvent:
		return m.applyButtonPress(ev)
	case ButtonReleaseEvent:
		return m.applyButtonRelease(ev)
	case MoveEvent:
		return m.applyMove(ev)
	case ScrollEvent:
		return m.applyScroll(ev)
	case TouchDownEvent, TouchUpEvent, TouchMoveEvent:
		log.Printf("manipulator: touch input: %v", ErrNotImplemented)
		return false
	case FrameEvent:
		return m.applyFrame(ev)
	default:
		return false
	}
}

func (m *manipulatorImpl) applyKeyPress(ev KeyPressEvent) bool {
	m.keyPress = &ev
	action := m.settings.GetAction(EventKeyDown, ev.Key, ev.Mod)
	if action.Type() == ActionNull {
		return false
	}
	m.lastAction = action
	return m.handleKeyboardAction(action, ev.Time)
}

func (m *manipulatorImpl) applyButtonPress(ev ButtonPressEvent) bool {
	m.clearEvents(false)
	m.buttonPress = &ev
	return true
}

func (m *manipulatorImpl) applyButtonRelease(ev ButtonReleaseEvent) bool {
	handled := false
	if press := m.buttonPress; press != nil && m.isMouseClick(press, ev) {
		action := m.resolveClickAction(press, ev.Time)
		if action.Type() != ActionNull {
			m.lastAction = action
			handled = m.handlePointAction(action, ev.X, ev.Y)
		}
	}
	m.clearEvents(true)
	return handled
}

// resolveClickAction prefers a double-click binding when this click lands
// within the double-click window of the previous click of the same button,
// falling back to the single-click binding.
func (m *manipulatorImpl) resolveClickAction(press *ButtonPressEvent, now time.Time) Action {
	isDouble := press.Button == m.lastClickButton &&
		now.Sub(m.lastClickTime) <= doubleClickWindow
	m.lastClickTime = now
	m.lastClickButton = press.Button

	if isDouble {
		if action := m.settings.GetAction(EventMouseDoubleClick, press.Button, press.Mod); action.Type() != ActionNull {
			// consume both clicks
			m.lastClickTime = time.Time{}
			return action
		}
	}
	return m.settings.GetAction(EventMouseClick, press.Button, press.Mod)
}

// isMouseClick reports whether a press/release pair reads as a click: the
// pointer's drift in normalized device coordinates stayed under one tenth
// of a unit per second of hold time. A pair with no measurable hold time
// has a zero drift allowance, so it never reads as a click.
func (m *manipulatorImpl) isMouseClick(press *ButtonPressEvent, release ButtonReleaseEvent) bool {
	dt := release.Time.Sub(press.Time).Seconds()
	if dt <= 0 {
		return false
	}
	drift := m.ndc(release.X, release.Y).Sub(m.ndc(press.X, press.Y)).Len()
	return drift < dt*0.1
}

func (m *manipulatorImpl) applyMove(ev MoveEvent) bool {
	releasedOffWindow := ev.Mask == 0 && m.currentMove != nil && m.currentMove.Mask != 0
	m.previousMove = m.currentMove
	m.currentMove = &ev

	if ev.Mask == 0 {
		if releasedOffWindow {
			m.clearEvents(true)
		}
		return false
	}

	action := m.settings.GetAction(EventMouseDrag, ev.Mask, ev.Mod)
	if action.Type() == ActionNull {
		return false
	}
	m.lastAction = action

	wasContinuous := m.continuous
	m.continuous = action.BoolOption(OptionContinuous, false)
	handled := m.handleMouseAction(action)
	if m.continuous && !wasContinuous {
		m.continuousAction = action
		m.continuousDelta = mgl64.Vec2{}
		m.lastContinuousTime = ev.Time
	}
	return handled || m.continuous
}

func (m *manipulatorImpl) applyScroll(ev ScrollEvent) bool {
	dir := scrollDirection(ev)
	if dir == DirNA {
		return false
	}
	action := m.settings.GetAction(EventScroll, common.InputMask(dir), ev.Mod)
	if action.Type() == ActionNull {
		return false
	}
	m.lastAction = action

	d := directionDeltas(action.Direction())
	if action.Direction() == DirNA {
		d = directionDeltas(dir)
	}
	d = d.Mul(1.5 * m.settings.ScrollSensitivity())
	d = applyOptionsToDeltas(action, d)
	return m.handleAction(action, d, ev.Time, action.FloatOption(OptionDuration, 0.2))
}

// scrollDirection resolves a scroll event to a single direction. The
// horizontal axis takes precedence, and a negative y is up, matching the
// event's screen-space orientation.
func scrollDirection(ev ScrollEvent) Direction {
	switch {
	case ev.DeltaX > 0:
		return DirRight
	case ev.DeltaX < 0:
		return DirLeft
	case ev.DeltaY < 0:
		return DirUp
	case ev.DeltaY > 0:
		return DirDown
	default:
		return DirNA
	}
}

func (m *manipulatorImpl) applyFrame(ev FrameEvent) bool {
	m.serviceTransition(ev.Time)
	if m.continuous {
		m.handleContinuousAction(m.continuousAction, ev.Time)
	} else {
		m.continuousDelta = mgl64.Vec2{}
	}
	m.serviceTask(ev.Time)
	m.cam.SetViewMatrix(m.state.worldMatrix().Inv())
	return m.animating()
}

func (m *manipulatorImpl) handleKeyboardAction(action Action, now time.Time) bool {
	d := directionDeltas(action.Direction()).Mul(m.settings.KeyboardSensitivity())
	d = applyOptionsToDeltas(action, d)
	return m.handleAction(action, d, now, action.FloatOption(OptionDuration, 0))
}

// handleAction schedules the motion an action calls for. Directional motion
// becomes a task drained by frame servicing; duration <= 0 makes it an
// instantaneous nudge applied at the next frame.
func (m *manipulatorImpl) handleAction(action Action, d mgl64.Vec2, now time.Time, duration float64) bool {
	switch action.Type() {
	case ActionHome:
		m.home()
	case ActionToggleProjection:
		m.toggleProjection()
	case ActionPan, ActionPanLeft, ActionPanRight, ActionPanUp, ActionPanDown:
		m.task.set(taskPan, d, duration, now)
	case ActionRotate, ActionRotateLeft, ActionRotateRight, ActionRotateUp, ActionRotateDown:
		m.task.set(taskRotate, d, duration, now)
	case ActionZoom, ActionZoomIn, ActionZoomOut:
		m.task.set(taskZoom, d, duration, now)
	default:
		return false
	}
	return true
}

func (m *manipulatorImpl) handleMouseAction(action Action) bool {
	if m.currentMove == nil || m.previousMove == nil {
		return false
	}
	prev := m.ndc(m.previousMove.X, m.previousMove.Y)
	curr := m.ndc(m.currentMove.X, m.currentMove.Y)
	d := mgl64.Vec2{curr.X() - prev.X(), -(curr.Y() - prev.Y())}
	if d.X() == 0 && d.Y() == 0 {
		return false
	}
	d = d.Mul(m.settings.MouseSensitivity())
	d = applyOptionsToDeltas(action, d)

	if m.continuous {
		m.continuousDelta = m.continuousDelta.Add(d.Mul(0.01))
		return true
	}
	m.handleMovementAction(action, d)
	return true
}

// handleContinuousAction re-applies the accumulated drag delta every frame,
// scaled by the elapsed time normalized to a 60 Hz frame, so holding a
// continuous drag produces frame-rate independent motion.
func (m *manipulatorImpl) handleContinuousAction(action Action, now time.Time) {
	tFactor := now.Sub(m.lastContinuousTime).Seconds() * 60.0
	m.lastContinuousTime = now
	if tFactor <= 0 {
		return
	}
	m.handleMovementAction(action, m.continuousDelta.Mul(tFactor))
}

func (m *manipulatorImpl) handleMovementAction(action Action, d mgl64.Vec2) {
	switch action.Type() {
	case ActionPan, ActionPanLeft, ActionPanRight, ActionPanUp, ActionPanDown:
		m.pan(d.X(), d.Y())
	case ActionRotate, ActionRotateLeft, ActionRotateRight, ActionRotateUp, ActionRotateDown:
		if m.settings.SingleAxisRotation() || action.BoolOption(OptionSingleAxis, false) {
			d = dominantAxis(d)
		}
		m.rotate(d.X(), d.Y())
	case ActionZoom, ActionZoomIn, ActionZoomOut:
		m.zoom(d.X(), d.Y())
	}
}

func (m *manipulatorImpl) handlePointAction(action Action, x, y float64) bool {
	switch action.Type() {
	case ActionGoto:
		point, err := m.screenToWorld(x, y)
		if err != nil {
			log.Printf("manipulator: goto: %v", err)
			return true
		}
		vp := m.currentViewpoint()
		vp.Lon, vp.Lat, vp.Height = m.geo.ToCartographic(point)
		vp.Range *= action.FloatOption(OptionGotoRangeFactor, 1.0)
		m.setViewpoint(vp, action.FloatOption(OptionDuration, 1.0))
		return true
	case ActionHome:
		m.home()
		return true
	default:
		return false
	}
}

// serviceTask drains the pending motion task. The applied slice is the
// elapsed time since the last service, capped so the task's total applied
// delta never exceeds rate x duration; zero-duration tasks apply their full
// delta once.
func (m *manipulatorImpl) serviceTask(now time.Time) bool {
	if m.task.typ == taskNone {
		return false
	}
	dt := now.Sub(m.task.lastService).Seconds()
	if dt <= 0 {
		return true
	}

	var dx, dy float64
	if m.task.remaining <= 0 {
		dx, dy = m.task.delta.X(), m.task.delta.Y()
	} else {
		if dt > m.task.remaining {
			dt = m.task.remaining
		}
		dx, dy = m.task.delta.X()*dt, m.task.delta.Y()*dt
		m.task.remaining -= dt
	}

	switch m.task.typ {
	case taskPan:
		m.pan(dx, dy)
	case taskRotate:
		m.rotate(dx, dy)
	case taskZoom:
		m.zoom(dx, dy)
	}

	m.task.lastService = now
	// Repeated slice subtraction can leave floating-point residue, so a
	// near-zero remainder counts as finished.
	if m.task.remaining <= common.Epsilon {
		m.task.reset()
	}
	return m.task.typ != taskNone
}

// clearEvents drops transient input state and any pending task. Continuous
// motion stops; an in-flight viewpoint transition is left alone.
func (m *manipulatorImpl) clearEvents(clearKeyPress bool) {
	if clearKeyPress {
		m.keyPress = nil
	}
	m.buttonPress = nil
	m.continuous = false
	m.continuousDelta = mgl64.Vec2{}
	m.task.reset()
}

func (m *manipulatorImpl) toggleProjection() {
	if m.savedProjection != nil {
		current := m.cam.Projection()
		m.cam.SetProjection(m.savedProjection)
		m.savedProjection = current
		return
	}
	if p, ok := m.cam.Projection().(*camera.Perspective); ok {
		m.savedProjection = p
		m.cam.SetProjection(camera.TransferProjection(p))
	}
}

// ndc converts window pixels to normalized device coordinates, with x
// scaled by the aspect ratio so a diagonal drag reads the same in both
// axes.
func (m *manipulatorImpl) ndc(x, y float64) mgl64.Vec2 {
	area := m.cam.RenderArea()
	w, h := float64(area.Width), float64(area.Height)
	if w <= 0 || h <= 0 {
		return mgl64.Vec2{}
	}
	aspect := w / h
	return mgl64.Vec2{
		((x-float64(area.X))/w*2.0 - 1.0) * aspect,
		(y-float64(area.Y))/h*2.0 - 1.0,
	}
}

func (m *manipulatorImpl) screenToWorld(x, y float64) (mgl64.Vec3, error) {
	// Needs a depth or picking pass from the renderer.
	return mgl64.Vec3{}, fmt.Errorf("screen-to-world at (%.0f, %.0f): %w", x, y, ErrNotImplemented)
}

func (m *manipulatorImpl) animating() bool {
	return m.task.typ != taskNone || m.continuous || m.transition != nil
}

func (m *manipulatorImpl) Home() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.home()
	m.cam.SetViewMatrix(m.state.worldMatrix().Inv())
}

func (m *manipulatorImpl) Reinitialize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reinitializeHome()
	m.home()
	m.cam.SetViewMatrix(m.state.worldMatrix().Inv())
}

func (m *manipulatorImpl) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *manipulatorImpl) ApplySettings(s Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adoptSettings(s)
}

func (m *manipulatorImpl) Center() mgl64.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.center
}

func (m *manipulatorImpl) Distance() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.distance
}

func (m *manipulatorImpl) HeadingPitch() (heading, pitch float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return GetEulerAngles(m.state.localRotation)
}

func (m *manipulatorImpl) RecalculateCenter() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recalculateCenter()
}

func (m *manipulatorImpl) ScreenToWorld(x, y float64) (mgl64.Vec3, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.screenToWorld(x, y)
}

func (m *manipulatorImpl) Animating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.animating()
}

// directionDeltas maps a semantic direction to the unit delta pair the
// motion operators consume. Up is negative y so "zoom in" shrinks the
// distance and "pan up" moves the view up the screen.
func directionDeltas(dir Direction) mgl64.Vec2 {
	switch dir {
	case DirLeft:
		return mgl64.Vec2{1, 0}
	case DirRight:
		return mgl64.Vec2{-1, 0}
	case DirUp:
		return mgl64.Vec2{0, -1}
	case DirDown:
		return mgl64.Vec2{0, 1}
	default:
		return mgl64.Vec2{}
	}
}

func applyOptionsToDeltas(action Action, d mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		d.X() * action.FloatOption(OptionScaleX, 1.0),
		d.Y() * action.FloatOption(OptionScaleY, 1.0),
	}
}

// dominantAxis zeroes the smaller component of a delta pair.
func dominantAxis(d mgl64.Vec2) mgl64.Vec2 {
	if math.Abs(d.X()) >= math.Abs(d.Y()) {
		return mgl64.Vec2{d.X(), 0}
	}
	return mgl64.Vec2{0, d.Y()}
}
