// Package math provides the vector and quaternion types used to describe decoded transforms.
package math

import "math"

// Vec3 is a 3D vector. It holds either a position or a per-axis scale.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Array returns the components as a fixed-size array.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Vec3Of builds a vector from the first three values of s.
func Vec3Of(s []float64) Vec3 {
	return Vec3{s[0], s[1], s[2]}
}

// Uniform returns a vector with all components set to s.
func Uniform(s float64) Vec3 {
	return Vec3{s, s, s}
}
