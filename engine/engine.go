// package engine ties the pieces of the viewer together: a window feeding
// input events, a camera, the geospatial model, and the manipulator that
// drives the camera from the input stream at a fixed tick rate.
package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/terra-go/engine/camera"
	"github.com/Carmen-Shannon/terra-go/engine/geo"
	"github.com/Carmen-Shannon/terra-go/engine/manipulator"
	"github.com/Carmen-Shannon/terra-go/engine/profiler"
	"github.com/Carmen-Shannon/terra-go/engine/window"
)

// eventQueueSize bounds the input backlog between ticks. Input beyond the
// bound is dropped rather than blocking the platform thread.
const eventQueueSize = 256

// engine implements the Engine interface.
// Coordinates the window thread and the fixed-rate controller tick loop.
type engine struct {
	tickRateChannel chan time.Duration

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window window.Window
	cam    camera.Camera
	geo    geo.Services
	manip  manipulator.Manipulator

	manipOptions []manipulator.ManipulatorOption

	events chan manipulator.Event

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float64)
}

// Engine is the main entry point for the viewer runtime.
// It owns the controller tick loop and window management.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the camera the manipulator drives.
	//
	// Returns:
	//   - camera.Camera: the camera instance
	Camera() camera.Camera

	// Manipulator returns the camera controller.
	//
	// Returns:
	//   - manipulator.Manipulator: the controller instance
	Manipulator() manipulator.Manipulator

	// ApplyEvent queues an input event for the next tick. Events beyond
	// the queue bound are dropped.
	//
	// Parameters:
	//   - e: the event to queue
	//
	// Returns:
	//   - bool: whether the event was queued
	ApplyEvent(e manipulator.Event) bool

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the controller tick rate in ticks per second.
	// If the engine is running, the change takes effect immediately.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers a function called after each controller
	// tick, receiving the delta time in seconds. Use it to drive rendering
	// or simulation from the freshly updated view matrix.
	//
	// Parameters:
	//   - callback: function to call each tick
	SetTickCallback(callback func(deltaTime float64))

	// Run starts the tick loop and blocks in the window message loop until
	// the window closes. With no window configured it blocks until Quit.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine with the provided options. Components not
// supplied are built with defaults: a WGS-84 globe, a perspective camera,
// and a manipulator with the stock bindings.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		events:          make(chan manipulator.Event, eventQueueSize),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.geo == nil {
		e.geo = geo.NewGeocentricServices()
	}
	if e.cam == nil {
		e.cam = camera.NewCamera()
	}
	if e.manip == nil {
		e.manip = manipulator.NewManipulator(e.cam, e.geo, e.manipOptions...)
	}

	if e.window != nil {
		e.cam.SetRenderArea(camera.RenderArea{
			Width:  e.window.Width(),
			Height: e.window.Height(),
		})
		e.window.SetEventSink(func(ev manipulator.Event) {
			e.ApplyEvent(ev)
		})
		e.window.SetResizeCallback(func(width, height int) {
			e.cam.SetRenderArea(camera.RenderArea{Width: width, Height: height})
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.cam
}

func (e *engine) Manipulator() manipulator.Manipulator {
	return e.manip
}

func (e *engine) ApplyEvent(ev manipulator.Event) bool {
	select {
	case e.events <- ev:
		return true
	default:
		return false
	}
}

func (e *engine) Run() {
	e.running = true
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the tick and quit goroutines, tracked by the engine's
// WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleTicks()
	go e.handleQuit()
}

// handleTicks runs the fixed-rate controller loop in its own goroutine.
// Each tick drains queued input into the manipulator in arrival order, then
// fires a frame event so scheduled motion integrates against real elapsed
// time. Listens for dynamic rate changes via tickRateChannel and exits when
// the quit channel is closed.
func (e *engine) handleTicks() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(lastTick).Seconds()
			lastTick = now

			e.drainEvents()
			e.manip.Apply(manipulator.FrameEvent{Time: now})

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

func (e *engine) drainEvents() {
	for {
		select {
		case ev := <-e.events:
			e.manip.Apply(ev)
			if e.profilingEnabled && e.profiler != nil {
				e.profiler.CountEvent()
			}
		default:
			return
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the
// WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the controller tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(tps float64) {
	if tps <= 0 {
		tps = 60
	}
	newRate := time.Duration(float64(time.Second) / tps)

	if e.running {
		// Non-blocking send; if a rate update is already pending, replace it.
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called after each controller tick.
func (e *engine) SetTickCallback(callback func(deltaTime float64)) {
	e.tickCallback = callback
}
