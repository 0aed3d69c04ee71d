package manipulator

import (
	"time"

	"github.com/Carmen-Shannon/terra-go/common"
)

// Event is an input or timing event consumed by a Manipulator. The concrete
// event set is closed; window adapters construct the event structs below and
// feed them to Apply in arrival order.
type Event interface {
	// EventTime returns the timestamp the event was observed at.
	//
	// Returns:
	//   - time.Time: the event timestamp
	EventTime() time.Time
}

// PointerEvent carries the shared fields of pointer-positioned events.
// X and Y are window coordinates in pixels, Mask is the set of mouse buttons
// held, and Mod is the keyboard modifier mask.
type PointerEvent struct {
	X, Y float64
	Mask common.InputMask
	Mod  common.ModMask
	Time time.Time
}

func (e PointerEvent) EventTime() time.Time { return e.Time }

// KeyPressEvent reports a keyboard key going down.
type KeyPressEvent struct {
	Key  common.InputMask
	Mod  common.ModMask
	Time time.Time
}

func (e KeyPressEvent) EventTime() time.Time { return e.Time }

// KeyReleaseEvent reports a keyboard key going up.
type KeyReleaseEvent struct {
	Key  common.InputMask
	Mod  common.ModMask
	Time time.Time
}

func (e KeyReleaseEvent) EventTime() time.Time { return e.Time }

// ButtonPressEvent reports a mouse button going down. Button identifies the
// button that changed; Mask includes every button held after the press.
type ButtonPressEvent struct {
	PointerEvent
	Button common.InputMask
}

// ButtonReleaseEvent reports a mouse button going up. Mask includes every
// button still held after the release.
type ButtonReleaseEvent struct {
	PointerEvent
}

// MoveEvent reports pointer motion, with or without buttons held.
type MoveEvent struct {
	PointerEvent
}

// ScrollEvent reports a scroll-wheel or trackpad scroll gesture. Deltas are
// screen-oriented: negative DeltaY scrolls up, positive scrolls down.
type ScrollEvent struct {
	DeltaX, DeltaY float64
	Mod            common.ModMask
	Time           time.Time
}

func (e ScrollEvent) EventTime() time.Time { return e.Time }

// TouchDownEvent reports a touch contact starting. ID distinguishes
// concurrent contacts.
type TouchDownEvent struct {
	ID   uint32
	X, Y float64
	Time time.Time
}

func (e TouchDownEvent) EventTime() time.Time { return e.Time }

// TouchUpEvent reports a touch contact ending.
type TouchUpEvent struct {
	ID   uint32
	X, Y float64
	Time time.Time
}

func (e TouchUpEvent) EventTime() time.Time { return e.Time }

// TouchMoveEvent reports a touch contact moving.
type TouchMoveEvent struct {
	ID   uint32
	X, Y float64
	Time time.Time
}

func (e TouchMoveEvent) EventTime() time.Time { return e.Time }

// FrameEvent drives per-frame servicing: active motion tasks, continuous
// drag integration, and viewpoint transitions all advance on frame events,
// and the camera's view matrix is recomposed afterwards.
type FrameEvent struct {
	Time time.Time
}

func (e FrameEvent) EventTime() time.Time { return e.Time }
