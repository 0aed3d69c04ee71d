package common

// InputMask identifies the input that triggered an event. Depending on the
// event kind it holds a virtual key code, a mouse button mask, or a scroll
// direction. Button masks combine with bitwise OR.
type InputMask int

// Mouse button masks. Values are bit flags so that chord bindings
// (e.g. left+right drag) can be expressed as a single mask.
const (
	MouseLeftButton   InputMask = 1 << 0
	MouseMiddleButton InputMask = 1 << 1
	MouseRightButton  InputMask = 1 << 2
)

// ModMask is a bitmask of modifier keys held during an event.
// The bit layout matches GLFW's ModifierKey values so window adapters can
// pass modifiers through unchanged.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#ModifierKey
type ModMask int

const (
	ModShift    ModMask = 0x0001
	ModControl  ModMask = 0x0002
	ModAlt      ModMask = 0x0004
	ModSuper    ModMask = 0x0008
	ModCapsLock ModMask = 0x0010
	ModNumLock  ModMask = 0x0020
)

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace InputMask = 32  // Spacebar (ASCII)
	KeyP     InputMask = 80  // P key (ASCII)
	KeyRight InputMask = 262 // Right arrow (GLFW)
	KeyLeft  InputMask = 263 // Left arrow (GLFW)
	KeyDown  InputMask = 264 // Down arrow (GLFW)
	KeyUp    InputMask = 265 // Up arrow (GLFW)
)
