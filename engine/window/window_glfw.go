package window

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/terra-go/common"
	"github.com/Carmen-Shannon/terra-go/engine/manipulator"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// buttonBit maps a GLFW mouse button to its InputMask bit.
func buttonBit(button glfw.MouseButton) common.InputMask {
	switch button {
	case glfw.MouseButtonLeft:
		return common.MouseLeftButton
	case glfw.MouseButtonMiddle:
		return common.MouseMiddleButton
	case glfw.MouseButtonRight:
		return common.MouseRightButton
	default:
		return 0
	}
}

// newPlatformWindow creates the GLFW window, registers input callbacks that
// translate platform events into manipulator events, and stores it as the
// internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// The renderer owns the graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// common.ModMask shares GLFW's modifier bit layout, so mods pass
	// through with a plain conversion.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		w.modMask = common.ModMask(mods)
		switch action {
		case glfw.Press, glfw.Repeat:
			w.emit(manipulator.KeyPressEvent{
				Key:  common.InputMask(key),
				Mod:  common.ModMask(mods),
				Time: time.Now(),
			})
		case glfw.Release:
			w.emit(manipulator.KeyReleaseEvent{
				Key:  common.InputMask(key),
				Mod:  common.ModMask(mods),
				Time: time.Now(),
			})
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		// GLFW reports wheel-up as positive y; scroll events are
		// screen-oriented, negative y up.
		w.emit(manipulator.ScrollEvent{
			DeltaX: xoff,
			DeltaY: -yoff,
			Mod:    w.modMask,
			Time:   time.Now(),
		})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		bit := buttonBit(button)
		if bit == 0 {
			return
		}
		w.modMask = common.ModMask(mods)
		x, y := win.GetCursorPos()
		switch action {
		case glfw.Press:
			w.buttonMask |= bit
			w.emit(manipulator.ButtonPressEvent{
				PointerEvent: manipulator.PointerEvent{
					X:    x,
					Y:    y,
					Mask: w.buttonMask,
					Mod:  common.ModMask(mods),
					Time: time.Now(),
				},
				Button: bit,
			})
		case glfw.Release:
			w.buttonMask &^= bit
			w.emit(manipulator.ButtonReleaseEvent{
				PointerEvent: manipulator.PointerEvent{
					X:    x,
					Y:    y,
					Mask: w.buttonMask,
					Mod:  common.ModMask(mods),
					Time: time.Now(),
				},
			})
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.emit(manipulator.MoveEvent{
			PointerEvent: manipulator.PointerEvent{
				X:    xpos,
				Y:    ypos,
				Mask: w.buttonMask,
				Mod:  w.modMask,
				Time: time.Now(),
			},
		})
	})

	// Use framebuffer size for pixel-accurate resize events. On high-DPI
	// displays the framebuffer size differs from the window size, and the
	// camera's render area needs pixel dimensions.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// platformIsRunningCheck returns whether the GLFW window is still active.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW
// library.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
