package engine

import (
	"time"

	"github.com/Carmen-Shannon/terra-go/engine/camera"
	"github.com/Carmen-Shannon/terra-go/engine/geo"
	"github.com/Carmen-Shannon/terra-go/engine/manipulator"
	"github.com/Carmen-Shannon/terra-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the
// engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets a pre-configured window for the engine to use. Without a
// window the engine runs headless and input arrives via ApplyEvent.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera sets a pre-configured camera instead of the default
// perspective camera.
//
// Parameters:
//   - c: a pre-configured Camera instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.cam = c
	}
}

// WithServices sets the geospatial model. Defaults to a WGS-84 globe.
//
// Parameters:
//   - s: the geospatial services to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithServices(s geo.Services) EngineBuilderOption {
	return func(e *engine) {
		e.geo = s
	}
}

// WithManipulator sets a pre-configured manipulator. When supplied it must
// drive the same camera the engine is configured with.
//
// Parameters:
//   - m: a pre-configured Manipulator instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithManipulator(m manipulator.Manipulator) EngineBuilderOption {
	return func(e *engine) {
		e.manip = m
	}
}

// WithManipulatorOptions forwards options to the manipulator the engine
// constructs. Ignored when WithManipulator is also used.
//
// Parameters:
//   - options: options forwarded to NewManipulator
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithManipulatorOptions(options ...manipulator.ManipulatorOption) EngineBuilderOption {
	return func(e *engine) {
		e.manipOptions = append(e.manipOptions, options...)
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the controller tick rate in ticks per second.
// Values <= 0 are treated as the default (60 Hz).
//
// Parameters:
//   - tps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		if tps <= 0 {
			tps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / tps)
	}
}
