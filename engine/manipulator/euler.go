package manipulator

import (
	"math"

	"github.com/Carmen-Shannon/terra-go/common"
	"github.com/go-gl/mathgl/mgl64"
)

// GetEulerAngles extracts the azimuth and pitch encoded in a local camera
// rotation. Azimuth is folded to (-pi, pi]; pitch is negative below the
// horizontal, -pi/2 looking straight down. When the look vector is within
// about 25 degrees of vertical the azimuth is recovered from the up vector
// instead, which stays well conditioned through the singularity.
//
// Parameters:
//   - q: the local rotation relative to the tangent frame
//
// Returns:
//   - azimuth: heading in radians
//   - pitch: elevation in radians
func GetEulerAngles(q mgl64.Quat) (azimuth, pitch float64) {
	frame := q.Mat4()
	look := common.ZAxis(frame).Mul(-1).Normalize()
	up := common.YAxis(frame).Normalize()

	switch {
	case look.Z() < -0.9:
		azimuth = math.Atan2(up.X(), up.Y())
	case look.Z() > 0.9:
		azimuth = math.Atan2(-up.X(), -up.Y())
	default:
		azimuth = math.Atan2(look.X(), look.Y())
	}
	azimuth = common.NormalizeAzimuth(azimuth)
	pitch = math.Asin(common.Clamp(look.Z(), -1, 1))
	return azimuth, pitch
}

// GetQuaternion builds the local camera rotation that looks along the given
// azimuth with the given pitch. It is the inverse of GetEulerAngles up to
// floating-point error.
//
// Parameters:
//   - azimuth: heading in radians
//   - pitch: elevation in radians, negative below the horizontal
//
// Returns:
//   - mgl64.Quat: the local rotation
func GetQuaternion(azimuth, pitch float64) mgl64.Quat {
	azimQ := mgl64.QuatRotate(azimuth, mgl64.Vec3{0, 0, 1})
	pitchQ := mgl64.QuatRotate(-pitch-math.Pi/2, mgl64.Vec3{1, 0, 0})
	return pitchQ.Mul(azimQ).Inverse()
}
