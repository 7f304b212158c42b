package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// Length returns the quaternion norm.
func (q Quat) Length() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalized returns q scaled to unit length.
// It reports false for a zero-length quaternion.
func (q Quat) Normalized() (Quat, bool) {
	length := q.Length()
	if length == 0 {
		return Quat{}, false
	}
	return Quat{
		X: q.X / length,
		Y: q.Y / length,
		Z: q.Z / length,
		W: q.W / length,
	}, true
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float64 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Array returns the components in X, Y, Z, W order.
func (q Quat) Array() [4]float64 {
	return [4]float64{q.X, q.Y, q.Z, q.W}
}

// QuatOf builds a quaternion from the first four values of s (X, Y, Z, W).
func QuatOf(s []float64) Quat {
	return Quat{s[0], s[1], s[2], s[3]}
}

// ToMat3 converts a unit quaternion to a row-major rotation matrix.
func (q Quat) ToMat3() Mat3 {
	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - zw), 2 * (xz + yw),
		2 * (xy + zw), 1 - 2*(xx+zz), 2 * (yz - xw),
		2 * (xz - yw), 2 * (yz + xw), 1 - 2*(xx+yy),
	}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// The axis is used as stored, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	halfAngle := angle * 0.5
	s := math.Sin(halfAngle)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(halfAngle),
	}
}

// QuatFromEuler creates a quaternion from roll (X), pitch (Y) and yaw (Z)
// in radians, composed in ZYX order.
func QuatFromEuler(roll, pitch, yaw float64) Quat {
	cy := math.Cos(yaw * 0.5)
	sy := math.Sin(yaw * 0.5)
	cp := math.Cos(pitch * 0.5)
	sp := math.Sin(pitch * 0.5)
	cr := math.Cos(roll * 0.5)
	sr := math.Sin(roll * 0.5)

	return Quat{
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cp*cy + sr*sp*sy,
	}
}

// QuatFromCompact rebuilds W from the three vector components of a unit
// quaternion. A negative radicand is clamped to zero.
func QuatFromCompact(x, y, z float64) Quat {
	wSquared := 1.0 - (x*x + y*y + z*z)
	if wSquared < 0 {
		wSquared = 0
	}
	return Quat{X: x, Y: y, Z: z, W: math.Sqrt(wSquared)}
}

// Conjugate returns the quaternion with the vector part negated.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// DualQuatPosition recovers the translation encoded by a dual quaternion
// with rotation part real and dual part dual: t = 2 * dual * conj(real).
func DualQuatPosition(real, dual Quat) Vec3 {
	t := dual.Mul(real.Conjugate())
	return Vec3{X: t.X, Y: t.Y, Z: t.Z}.Scale(2)
}

// QuatFromMatrix converts a rotation matrix to a quaternion using the trace
// method. m holds either 9 values (row-major 3x3) or 12/16 values, in which
// case the 3x3 block is read with a row stride of 4. Any other length yields
// the identity quaternion.
func QuatFromMatrix(m []float64) Quat {
	rot, ok := rotationBlock(m)
	if !ok {
		return QuatIdentity()
	}
	q, _ := quatFromMat3(rot)
	return q
}

// QuatFromMatrixStrict is QuatFromMatrix but reports false where the trace
// method would divide by zero or take the root of a negative number.
// Malformed input lengths also report false.
func QuatFromMatrixStrict(m []float64) (Quat, bool) {
	rot, ok := rotationBlock(m)
	if !ok {
		return QuatIdentity(), false
	}
	return quatFromMat3(rot)
}

func rotationBlock(m []float64) (Mat3, bool) {
	switch len(m) {
	case 9:
		var rot Mat3
		copy(rot[:], m)
		return rot, true
	case 12, 16:
		return Mat3{
			m[0], m[1], m[2],
			m[4], m[5], m[6],
			m[8], m[9], m[10],
		}, true
	default:
		return Mat3{}, false
	}
}

func quatFromMat3(m Mat3) (Quat, bool) {
	m11, m12, m13 := m[0], m[1], m[2]
	m21, m22, m23 := m[3], m[4], m[5]
	m31, m32, m33 := m[6], m[7], m[8]

	trace := m11 + m22 + m33

	var q Quat
	var s float64
	ok := true

	switch {
	case trace > 0:
		s = 0.5 / math.Sqrt(trace+1.0)
		if s == 0 {
			return q, false
		}
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	case m11 > m22 && m11 > m33:
		s, ok = branchScale(1.0 + m11 - m22 - m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	case m22 > m33:
		s, ok = branchScale(1.0 + m22 - m11 - m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	default:
		s, ok = branchScale(1.0 + m33 - m11 - m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}

	return q, ok
}

// branchScale returns 2*sqrt(r) and whether r was strictly positive.
// NaN radicands pass through as NaN.
func branchScale(r float64) (float64, bool) {
	s := 2.0 * math.Sqrt(r)
	return s, !(r <= 0)
}
