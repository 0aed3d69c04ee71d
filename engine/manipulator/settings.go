package manipulator

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/terra-go/common"
)

// Settings holds the binding table and tuning parameters of a Manipulator.
// A Settings value is safe for concurrent use; the manipulator snapshots it
// with Clone when applied, so later mutation of a shared Settings does not
// race with frame servicing.
type Settings interface {
	// Bind associates an action with an arbitrary input spec.
	//
	// Parameters:
	//   - action: the action to bind
	//   - spec: the input to bind it to
	Bind(action Action, spec InputSpec)

	// BindKey binds an action to a keyboard key press.
	//
	// Parameters:
	//   - action: the action to bind
	//   - key: the key code
	//   - mod: required modifier mask
	BindKey(action Action, key common.InputMask, mod common.ModMask)

	// BindMouse binds an action to a mouse drag with the given buttons held.
	//
	// Parameters:
	//   - action: the action to bind
	//   - buttons: the button mask that must be held while dragging
	//   - mod: required modifier mask
	BindMouse(action Action, buttons common.InputMask, mod common.ModMask)

	// BindMouseClick binds an action to a mouse click.
	//
	// Parameters:
	//   - action: the action to bind
	//   - button: the clicked button
	//   - mod: required modifier mask
	BindMouseClick(action Action, button common.InputMask, mod common.ModMask)

	// BindMouseDoubleClick binds an action to a mouse double click.
	//
	// Parameters:
	//   - action: the action to bind
	//   - button: the clicked button
	//   - mod: required modifier mask
	BindMouseDoubleClick(action Action, button common.InputMask, mod common.ModMask)

	// BindScroll binds an action to a scroll gesture in one direction.
	//
	// Parameters:
	//   - action: the action to bind
	//   - dir: the scroll direction that triggers it
	//   - mod: required modifier mask
	BindScroll(action Action, dir Direction, mod common.ModMask)

	// BindPinch binds an action to a two-finger pinch gesture.
	//
	// Parameters:
	//   - action: the action to bind
	//   - mod: required modifier mask
	BindPinch(action Action, mod common.ModMask)

	// BindTwist binds an action to a two-finger twist gesture.
	//
	// Parameters:
	//   - action: the action to bind
	//   - mod: required modifier mask
	BindTwist(action Action, mod common.ModMask)

	// BindMultiDrag binds an action to a multi-finger drag gesture.
	//
	// Parameters:
	//   - action: the action to bind
	//   - mod: required modifier mask
	BindMultiDrag(action Action, mod common.ModMask)

	// GetAction resolves the action bound to an input, stripping lock-state
	// modifier bits before lookup.
	//
	// Parameters:
	//   - event: the event type
	//   - input: the input code (button mask, key code, or scroll direction)
	//   - mod: the modifier mask as reported by the window layer
	//
	// Returns:
	//   - Action: the bound action, or NullAction when nothing matches
	GetAction(event EventType, input common.InputMask, mod common.ModMask) Action

	// Clone returns an independent deep copy of the settings. The dirty
	// callback is not carried over.
	//
	// Returns:
	//   - Settings: the copy
	Clone() Settings

	// SetDirtyCallback registers a callback invoked after every mutation,
	// used by the manipulator to re-snapshot applied settings.
	//
	// Parameters:
	//   - fn: the callback, or nil to clear it
	SetDirtyCallback(fn func())

	MouseSensitivity() float64
	SetMouseSensitivity(v float64)
	KeyboardSensitivity() float64
	SetKeyboardSensitivity(v float64)
	ScrollSensitivity() float64
	SetScrollSensitivity(v float64)
	TouchSensitivity() float64
	SetTouchSensitivity(v float64)

	// MinPitch and MaxPitch are in degrees, negative below the horizon.
	// Rotation never drives the camera pitch outside [MinPitch, MaxPitch],
	// nor outside the hard limits of -89.9 and -0.1 degrees.
	MinPitch() float64
	SetMinPitch(deg float64)
	MaxPitch() float64
	SetMaxPitch(deg float64)

	MinDistance() float64
	SetMinDistance(v float64)
	MaxDistance() float64
	SetMaxDistance(v float64)

	MaxXOffset() float64
	SetMaxXOffset(v float64)
	MaxYOffset() float64
	SetMaxYOffset(v float64)

	SingleAxisRotation() bool
	SetSingleAxisRotation(v bool)
	LockAzimuthWhilePanning() bool
	SetLockAzimuthWhilePanning(v bool)
	ZoomToMouse() bool
	SetZoomToMouse(v bool)

	ArcViewpointTransitions() bool
	SetArcViewpointTransitions(v bool)
	AutoViewpointDuration() bool
	SetAutoViewpointDuration(v bool)

	// MinAutoViewpointDuration and MaxAutoViewpointDuration bound the
	// duration chosen for auto-timed viewpoint transitions, in seconds.
	MinAutoViewpointDuration() float64
	SetMinAutoViewpointDuration(v float64)
	MaxAutoViewpointDuration() float64
	SetMaxAutoViewpointDuration(v float64)

	TerrainAvoidance() bool
	SetTerrainAvoidance(v bool)
	TerrainAvoidanceMinDistance() float64
	SetTerrainAvoidanceMinDistance(v float64)
}

var _ Settings = &settingsImpl{}

type settingsImpl struct {
	mu       *sync.Mutex
	bindings map[InputSpec]Action

	mouseSensitivity    float64
	keyboardSensitivity float64
	scrollSensitivity   float64
	touchSensitivity    float64

	minPitch float64
	maxPitch float64

	minDistance float64
	maxDistance float64

	maxXOffset float64
	maxYOffset float64

	singleAxisRotation      bool
	lockAzimuthWhilePanning bool
	zoomToMouse             bool

	arcViewpointTransitions  bool
	autoViewpointDuration    bool
	minAutoViewpointDuration float64
	maxAutoViewpointDuration float64

	terrainAvoidance            bool
	terrainAvoidanceMinDistance float64

	dirtyCallback func()
}

// NewSettings creates a Settings with an empty binding table and default
// tuning values, then applies the given options.
//
// Parameters:
//   - options: optional configuration for the settings
//
// Returns:
//   - Settings: the new settings
func NewSettings(options ...SettingsOption) Settings {
	s := &settingsImpl{
		mu:                          &sync.Mutex{},
		bindings:                    make(map[InputSpec]Action),
		mouseSensitivity:            1.0,
		keyboardSensitivity:         1.0,
		scrollSensitivity:           1.0,
		touchSensitivity:            0.005,
		minPitch:                    -89.9,
		maxPitch:                    -1.0,
		minDistance:                 1.0,
		maxDistance:                 math.MaxFloat64,
		lockAzimuthWhilePanning:     true,
		arcViewpointTransitions:     true,
		minAutoViewpointDuration:    3.0,
		maxAutoViewpointDuration:    8.0,
		terrainAvoidanceMinDistance: 1.0,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// DefaultSettings creates a Settings pre-populated with the stock binding
// table: space homes the camera, left drag pans, middle drag (or both
// buttons) rotates, right drag zooms continuously, the scroll wheel zooms
// in steps, arrow keys pan, double clicks fly to the pointer, and "p"
// toggles between perspective and orthographic projection.
//
// Parameters:
//   - options: optional configuration applied after the stock bindings
//
// Returns:
//   - Settings: the new settings
func DefaultSettings(options ...SettingsOption) Settings {
	s := NewSettings()

	s.BindKey(NewAction(ActionHome), common.KeySpace, 0)
	s.BindKey(NewAction(ActionToggleProjection), common.KeyP, 0)

	continuousZoom := ActionOptions{}.
		AddBool(OptionContinuous, true).
		AddFloat(OptionScaleY, 5.0)
	s.BindMouse(NewAction(ActionZoom, continuousZoom), common.MouseRightButton, 0)
	s.BindMouse(NewAction(ActionZoom, continuousZoom), common.MouseRightButton, common.ModControl)

	s.BindMouse(NewAction(ActionPan), common.MouseLeftButton, 0)
	s.BindMouse(NewAction(ActionRotate), common.MouseMiddleButton, 0)
	s.BindMouse(NewAction(ActionRotate), common.MouseLeftButton|common.MouseRightButton, 0)

	continuousRotate := ActionOptions{}.
		AddBool(OptionContinuous, true).
		AddFloat(OptionScaleX, 9.0).
		AddFloat(OptionScaleY, 9.0)
	s.BindMouse(NewAction(ActionRotate, continuousRotate), common.MouseMiddleButton, common.ModControl)
	s.BindMouse(NewAction(ActionRotate, continuousRotate), common.MouseLeftButton, common.ModControl)

	s.BindScroll(NewAction(ActionZoomIn), DirUp, 0)
	s.BindScroll(NewAction(ActionZoomOut), DirDown, 0)

	s.BindKey(NewAction(ActionPanLeft), common.KeyLeft, 0)
	s.BindKey(NewAction(ActionPanRight), common.KeyRight, 0)
	s.BindKey(NewAction(ActionPanUp), common.KeyUp, 0)
	s.BindKey(NewAction(ActionPanDown), common.KeyDown, 0)

	zoomToPoint := ActionOptions{}.AddFloat(OptionGotoRangeFactor, 0.4)
	s.BindMouseDoubleClick(NewAction(ActionGoto, zoomToPoint), common.MouseLeftButton, 0)
	backOut := ActionOptions{}.AddFloat(OptionGotoRangeFactor, 2.5)
	s.BindMouseDoubleClick(NewAction(ActionGoto, backOut), common.MouseRightButton, 0)

	s.BindPinch(NewAction(ActionZoom), 0)
	s.BindTwist(NewAction(ActionRotate), 0)
	s.BindMultiDrag(NewAction(ActionRotate), 0)

	impl := s.(*settingsImpl)
	for _, opt := range options {
		opt(impl)
	}
	return s
}

// markDirty invokes the dirty callback outside the lock so the callback may
// call back into the settings.
func (s *settingsImpl) markDirty() {
	s.mu.Lock()
	fn := s.dirtyCallback
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *settingsImpl) Bind(action Action, spec InputSpec) {
	s.mu.Lock()
	for _, expanded := range expandSpec(spec) {
		s.bindings[expanded] = action
	}
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) BindKey(action Action, key common.InputMask, mod common.ModMask) {
	s.Bind(action, InputSpec{Event: EventKeyDown, Input: key, Mod: mod})
}

func (s *settingsImpl) BindMouse(action Action, buttons common.InputMask, mod common.ModMask) {
	s.Bind(action, InputSpec{Event: EventMouseDrag, Input: buttons, Mod: mod})
}

func (s *settingsImpl) BindMouseClick(action Action, button common.InputMask, mod common.ModMask) {
	s.Bind(action, InputSpec{Event: EventMouseClick, Input: button, Mod: mod})
}

func (s *settingsImpl) BindMouseDoubleClick(action Action, button common.InputMask, mod common.ModMask) {
	s.Bind(action, InputSpec{Event: EventMouseDoubleClick, Input: button, Mod: mod})
}

func (s *settingsImpl) BindScroll(action Action, dir Direction, mod common.ModMask) {
	s.Bind(action, InputSpec{Event: EventScroll, Input: common.InputMask(dir), Mod: mod})
}

func (s *settingsImpl) BindPinch(action Action, mod common.ModMask) {
	s.Bind(action, InputSpec{Event: EventMultiPinch, Mod: mod})
}

func (s *settingsImpl) BindTwist(action Action, mod common.ModMask) {
	s.Bind(action, InputSpec{Event: EventMultiTwist, Mod: mod})
}

func (s *settingsImpl) BindMultiDrag(action Action, mod common.ModMask) {
	s.Bind(action, InputSpec{Event: EventMultiDrag, Mod: mod})
}

func (s *settingsImpl) GetAction(event EventType, input common.InputMask, mod common.ModMask) Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec := InputSpec{
		Event: event,
		Input: input,
		Mod:   mod &^ (common.ModNumLock | common.ModCapsLock),
	}
	if action, ok := s.bindings[spec]; ok {
		return action
	}
	return NullAction
}

func (s *settingsImpl) Clone() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *s
	clone.mu = &sync.Mutex{}
	clone.dirtyCallback = nil
	clone.bindings = make(map[InputSpec]Action, len(s.bindings))
	for spec, action := range s.bindings {
		clone.bindings[spec] = action
	}
	return &clone
}

func (s *settingsImpl) SetDirtyCallback(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirtyCallback = fn
}

func (s *settingsImpl) MouseSensitivity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mouseSensitivity
}

func (s *settingsImpl) SetMouseSensitivity(v float64) {
	s.mu.Lock()
	s.mouseSensitivity = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) KeyboardSensitivity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyboardSensitivity
}

func (s *settingsImpl) SetKeyboardSensitivity(v float64) {
	s.mu.Lock()
	s.keyboardSensitivity = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) ScrollSensitivity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollSensitivity
}

func (s *settingsImpl) SetScrollSensitivity(v float64) {
	s.mu.Lock()
	s.scrollSensitivity = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) TouchSensitivity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchSensitivity
}

func (s *settingsImpl) SetTouchSensitivity(v float64) {
	s.mu.Lock()
	s.touchSensitivity = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) MinPitch() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minPitch
}

// clampPitchDeg folds a pitch limit into the hard band the camera may
// actually reach.
func clampPitchDeg(deg float64) float64 {
	return common.Clamp(deg, -89.9, -0.1)
}

func (s *settingsImpl) SetMinPitch(deg float64) {
	s.mu.Lock()
	s.minPitch = clampPitchDeg(deg)
	if s.maxPitch < s.minPitch {
		s.maxPitch = s.minPitch
	}
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) MaxPitch() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxPitch
}

func (s *settingsImpl) SetMaxPitch(deg float64) {
	s.mu.Lock()
	s.maxPitch = common.Clamp(deg, s.minPitch, -0.1)
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) MinDistance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minDistance
}

func (s *settingsImpl) SetMinDistance(v float64) {
	s.mu.Lock()
	s.minDistance = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) MaxDistance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxDistance
}

func (s *settingsImpl) SetMaxDistance(v float64) {
	s.mu.Lock()
	s.maxDistance = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) MaxXOffset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxXOffset
}

func (s *settingsImpl) SetMaxXOffset(v float64) {
	s.mu.Lock()
	s.maxXOffset = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) MaxYOffset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxYOffset
}

func (s *settingsImpl) SetMaxYOffset(v float64) {
	s.mu.Lock()
	s.maxYOffset = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) SingleAxisRotation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.singleAxisRotation
}

func (s *settingsImpl) SetSingleAxisRotation(v bool) {
	s.mu.Lock()
	s.singleAxisRotation = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) LockAzimuthWhilePanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockAzimuthWhilePanning
}

func (s *settingsImpl) SetLockAzimuthWhilePanning(v bool) {
	s.mu.Lock()
	s.lockAzimuthWhilePanning = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) ZoomToMouse() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoomToMouse
}

func (s *settingsImpl) SetZoomToMouse(v bool) {
	s.mu.Lock()
	s.zoomToMouse = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) ArcViewpointTransitions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arcViewpointTransitions
}

func (s *settingsImpl) SetArcViewpointTransitions(v bool) {
	s.mu.Lock()
	s.arcViewpointTransitions = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) AutoViewpointDuration() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoViewpointDuration
}

func (s *settingsImpl) SetAutoViewpointDuration(v bool) {
	s.mu.Lock()
	s.autoViewpointDuration = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) MinAutoViewpointDuration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minAutoViewpointDuration
}

func (s *settingsImpl) SetMinAutoViewpointDuration(v float64) {
	s.mu.Lock()
	s.minAutoViewpointDuration = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) MaxAutoViewpointDuration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxAutoViewpointDuration
}

func (s *settingsImpl) SetMaxAutoViewpointDuration(v float64) {
	s.mu.Lock()
	s.maxAutoViewpointDuration = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) TerrainAvoidance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terrainAvoidance
}

func (s *settingsImpl) SetTerrainAvoidance(v bool) {
	s.mu.Lock()
	s.terrainAvoidance = v
	s.mu.Unlock()
	s.markDirty()
}

func (s *settingsImpl) TerrainAvoidanceMinDistance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terrainAvoidanceMinDistance
}

func (s *settingsImpl) SetTerrainAvoidanceMinDistance(v float64) {
	s.mu.Lock()
	s.terrainAvoidanceMinDistance = v
	s.mu.Unlock()
	s.markDirty()
}
