package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/terra-go/common"
	"github.com/Carmen-Shannon/terra-go/engine/manipulator"
)

// Window provides platform windowing and input event handling.
// Input arriving from the platform is translated into manipulator events and
// forwarded to the configured sink in arrival order.
type Window interface {
	// SetEventSink sets the function receiving translated input events.
	//
	// Parameters:
	//   - sink: function to receive events (or nil to discard input)
	SetEventSink(sink func(manipulator.Event))

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is
	// resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each
	// iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// sink receives translated manipulator events.
	sink func(manipulator.Event)

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)

	// buttonMask tracks the mouse buttons currently held.
	buttonMask common.InputMask

	// modMask tracks the modifier keys last reported by the platform.
	modMask common.ModMask
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Options are applied first; unset dimensions and title fall back to
// defaults.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{}
	for _, opt := range options {
		opt(w)
	}
	w.title = common.Coalesce(w.title, "terra-go viewer")
	w.width = common.Coalesce(w.width, 1280)
	w.height = common.Coalesce(w.height, 720)

	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetEventSink(sink func(manipulator.Event)) {
	w.sink = sink
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// emit forwards a translated event to the sink, if one is set.
func (w *engineWindow) emit(e manipulator.Event) {
	if w.sink != nil {
		w.sink(e)
	}
}
