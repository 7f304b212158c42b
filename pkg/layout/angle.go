package layout

import (
	gomath "math"

	"github.com/Faultbox/lpmtscan/pkg/math"
)

// anyInf reports whether any value is infinite. Trigonometry on an infinite
// angle has no result, so such records are not a match. NaN passes through.
func anyInf(v ...float64) bool {
	for _, x := range v {
		if gomath.IsInf(x, 0) {
			return true
		}
	}
	return false
}

// decodeEuler reads position, roll/pitch/yaw in radians and scale.
func decodeEuler(buf []byte, off int) (Transform, int, bool) {
	v, ok := floats(buf, off, 9)
	if !ok || anyInf(v[3:6]...) {
		return Transform{}, 0, false
	}
	return Transform{
		Position: math.Vec3Of(v[0:3]),
		Scale:    math.Vec3Of(v[6:9]),
		Rotation: math.QuatFromEuler(v[3], v[4], v[5]),
	}, 36, true
}

// decodeAxisAngle reads position, a rotation axis, an angle and scale. The
// axis is not normalized.
func decodeAxisAngle(buf []byte, off int) (Transform, int, bool) {
	v, ok := floats(buf, off, 10)
	if !ok || anyInf(v[6]) {
		return Transform{}, 0, false
	}
	return Transform{
		Position: math.Vec3Of(v[0:3]),
		Scale:    math.Vec3Of(v[7:10]),
		Rotation: math.QuatFromAxisAngle(math.Vec3Of(v[3:6]), v[6]),
	}, 40, true
}

// decodeDualQuat reads a real quaternion, a dual quaternion and scale.
func decodeDualQuat(buf []byte, off int) (Transform, int, bool) {
	v, ok := floats(buf, off, 11)
	if !ok {
		return Transform{}, 0, false
	}
	real := math.QuatOf(v[0:4])
	dual := math.QuatOf(v[4:8])
	return Transform{
		Position: math.DualQuatPosition(real, dual),
		Scale:    math.Vec3Of(v[8:11]),
		Rotation: real,
	}, 44, true
}

// decodeCompactQuat reads position, the XYZ part of a unit quaternion and
// scale.
func decodeCompactQuat(buf []byte, off int) (Transform, int, bool) {
	v, ok := floats(buf, off, 9)
	if !ok {
		return Transform{}, 0, false
	}
	return Transform{
		Position: math.Vec3Of(v[0:3]),
		Scale:    math.Vec3Of(v[6:9]),
		Rotation: math.QuatFromCompact(v[3], v[4], v[5]),
	}, 36, true
}

// decodeCompressedQuat stores the quaternion XYZ as unsigned 32-bit values
// mapped onto [-1, 1].
func decodeCompressedQuat(buf []byte, off int) (Transform, int, bool) {
	if !fits(buf, off, 36) {
		return Transform{}, 0, false
	}
	pos, _ := floats(buf, off, 3)
	scale, _ := floats(buf, off+24, 3)

	var q [3]float64
	for i := range q {
		q[i] = (float64(readU32(buf, off+12+i*4))/2147483647.0)*2.0 - 1.0
	}

	return Transform{
		Position: math.Vec3Of(pos),
		Scale:    math.Vec3Of(scale),
		Rotation: math.QuatFromCompact(q[0], q[1], q[2]),
	}, 36, true
}
