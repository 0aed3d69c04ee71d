package manipulator

import "github.com/Carmen-Shannon/terra-go/common"

// SettingsOption configures a Settings during construction.
type SettingsOption func(*settingsImpl)

// WithMouseSensitivity sets the multiplier applied to mouse-drag deltas.
//
// Parameters:
//   - v: the sensitivity multiplier
//
// Returns:
//   - SettingsOption: the option to apply
func WithMouseSensitivity(v float64) SettingsOption {
	return func(s *settingsImpl) {
		s.mouseSensitivity = v
	}
}

// WithKeyboardSensitivity sets the multiplier applied to key-driven deltas.
//
// Parameters:
//   - v: the sensitivity multiplier
//
// Returns:
//   - SettingsOption: the option to apply
func WithKeyboardSensitivity(v float64) SettingsOption {
	return func(s *settingsImpl) {
		s.keyboardSensitivity = v
	}
}

// WithScrollSensitivity sets the multiplier applied to scroll deltas.
//
// Parameters:
//   - v: the sensitivity multiplier
//
// Returns:
//   - SettingsOption: the option to apply
func WithScrollSensitivity(v float64) SettingsOption {
	return func(s *settingsImpl) {
		s.scrollSensitivity = v
	}
}

// WithPitchLimits sets the pitch range rotation may reach, in degrees. Both
// limits are folded into the -89.9 to -0.1 band, and the high limit never
// drops below the low one.
//
// Parameters:
//   - minDeg: lowest pitch
//   - maxDeg: highest pitch
//
// Returns:
//   - SettingsOption: the option to apply
func WithPitchLimits(minDeg, maxDeg float64) SettingsOption {
	return func(s *settingsImpl) {
		s.minPitch = clampPitchDeg(minDeg)
		s.maxPitch = common.Clamp(maxDeg, s.minPitch, -0.1)
	}
}

// WithDistanceLimits sets the range the camera distance is clamped to.
//
// Parameters:
//   - min: minimum distance from the center
//   - max: maximum distance from the center
//
// Returns:
//   - SettingsOption: the option to apply
func WithDistanceLimits(min, max float64) SettingsOption {
	return func(s *settingsImpl) {
		s.minDistance = min
		s.maxDistance = max
	}
}

// WithTerrainAvoidance enables pushing the camera out of intersected
// geometry, keeping at least minDistance of clearance.
//
// Parameters:
//   - minDistance: required clearance above the intersection point
//
// Returns:
//   - SettingsOption: the option to apply
func WithTerrainAvoidance(minDistance float64) SettingsOption {
	return func(s *settingsImpl) {
		s.terrainAvoidance = true
		s.terrainAvoidanceMinDistance = minDistance
	}
}

// WithAutoViewpointDuration derives viewpoint transition durations from the
// travel distance instead of a fixed value.
//
// Parameters:
//   - min: shortest chosen duration, seconds
//   - max: longest chosen duration, seconds
//
// Returns:
//   - SettingsOption: the option to apply
func WithAutoViewpointDuration(min, max float64) SettingsOption {
	return func(s *settingsImpl) {
		s.autoViewpointDuration = true
		s.minAutoViewpointDuration = min
		s.maxAutoViewpointDuration = max
	}
}
