package math

import "math"

// Mat3 is a 3x3 matrix in row-major order.
// Layout: [m0 m1 m2]
//
//	[m3 m4 m5]
//	[m6 m7 m8]
type Mat3 [9]float64

// Identity3 returns an identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat3) At(r, c int) float64 {
	return m[r*3+c]
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Det returns the determinant.
func (m Mat3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// ColumnLength returns the Euclidean length of column c.
func (m Mat3) ColumnLength(c int) float64 {
	return math.Sqrt(m[c]*m[c] + m[3+c]*m[3+c] + m[6+c]*m[6+c])
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float64) Mat3 {
	c := math.Cos(angle)
	s := math.Sin(angle)

	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float64) Mat3 {
	c := math.Cos(angle)
	s := math.Sin(angle)

	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// Mul returns m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = m[r*3]*other[c] + m[r*3+1]*other[3+c] + m[r*3+2]*other[6+c]
		}
	}
	return out
}
