package manipulator

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// taskType identifies the motion a scheduled task applies per frame.
type taskType int

const (
	taskNone taskType = iota
	taskPan
	taskRotate
	taskZoom
)

// task is a time-bounded motion scheduled by a discrete input (key press or
// scroll tick) and drained by frame servicing. delta is a per-second rate;
// each service applies delta scaled by the elapsed slice, capped so the total
// applied over the task's life equals delta x duration. A task scheduled
// with duration <= 0 is an instantaneous nudge: the full delta is applied
// once at the next service.
type task struct {
	typ         taskType
	delta       mgl64.Vec2
	remaining   float64
	lastService time.Time
}

// set replaces any pending task. Scheduling while a task is in flight
// discards the remainder of the old one.
func (t *task) set(typ taskType, delta mgl64.Vec2, duration float64, now time.Time) {
	t.typ = typ
	t.delta = delta
	t.remaining = duration
	t.lastService = now
}

func (t *task) reset() {
	t.typ = taskNone
	t.delta = mgl64.Vec2{}
	t.remaining = 0
}
