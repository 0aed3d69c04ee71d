package manipulator

import (
	"github.com/Carmen-Shannon/terra-go/engine/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// ManipulatorOption configures a Manipulator during construction.
type ManipulatorOption func(*manipulatorImpl)

// WithSettings adopts a settings object instead of the stock defaults.
//
// Parameters:
//   - s: the settings to adopt
//
// Returns:
//   - ManipulatorOption: the option to apply
func WithSettings(s Settings) ManipulatorOption {
	return func(m *manipulatorImpl) {
		m.adoptSettings(s)
	}
}

// WithIntersector wires a scene intersector in, enabling look-ray center
// recalculation against loaded geometry and terrain avoidance.
//
// Parameters:
//   - i: the intersector to query
//
// Returns:
//   - ManipulatorOption: the option to apply
func WithIntersector(i scene.Intersector) ManipulatorOption {
	return func(m *manipulatorImpl) {
		m.intersector = i
	}
}

// WithHome overrides the derived home pose.
//
// Parameters:
//   - position: the world-space home center
//   - distance: the home eye distance
//
// Returns:
//   - ManipulatorOption: the option to apply
func WithHome(position mgl64.Vec3, distance float64) ManipulatorOption {
	return func(m *manipulatorImpl) {
		m.homePosition = position
		m.homeDistance = distance
		m.homeSet = true
	}
}
