package manipulator

import "github.com/Carmen-Shannon/terra-go/common"

// EventType classifies the source of an input event for binding purposes.
type EventType int

const (
	EventKeyDown EventType = iota
	EventMouseDrag
	EventMouseClick
	EventMouseDoubleClick
	EventScroll
	EventMultiPinch
	EventMultiTwist
	EventMultiDrag
)

// eventTypeNames is the diagnostic name table, indexed by EventType.
var eventTypeNames = [...]string{
	"key-down",
	"mouse-drag",
	"mouse-click",
	"mouse-double-click",
	"scroll",
	"multi-pinch",
	"multi-twist",
	"multi-drag",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return "unknown"
	}
	return eventTypeNames[t]
}

// InputSpec identifies one bindable input: an event type, the triggering
// input code (button mask, key code, or scroll direction), and a modifier
// key mask. It is used directly as the binding-table key, so two specs match
// exactly when their normalized fields are equal.
//
// NumLock state is irrelevant to camera control and is stripped on both the
// bind and lookup sides; CapsLock is additionally stripped at lookup time so
// a latched caps key never hides a binding.
type InputSpec struct {
	Event EventType
	Input common.InputMask
	Mod   common.ModMask
}

// normalized returns the spec with lock-state modifier bits that never
// participate in binding equality removed.
func (s InputSpec) normalized() InputSpec {
	s.Mod &^= common.ModNumLock
	return s
}

// expandSpec lists the concrete specs a binding should be stored under. The
// window layer reports only generic modifier bits, with no left/right
// distinction to fan out, so the generic spec itself is the sole entry and
// serves as the universal fallback.
func expandSpec(s InputSpec) []InputSpec {
	return []InputSpec{s.normalized()}
}
