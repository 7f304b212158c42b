package layout

import (
	gomath "math"

	"github.com/Faultbox/lpmtscan/pkg/math"
)

// Bit layout of the 64-bit packed transform:
//
//	bits  0-9   position X, value/10 - 50
//	bits 10-19  position Y
//	bits 20-29  position Z
//	bits 30-39  rotation about Z, value/1023 of a full turn
//	bits 40-47  uniform scale, 0.5 + value/255 * 2
const (
	packedAxisBits  = 10
	packedAxisMask  = 0x3FF
	packedRotShift  = 30
	packedScaleShft = 40
	packedScaleMask = 0xFF
)

func decodeBitPacked(buf []byte, off int) (Transform, int, bool) {
	if !fits(buf, off, 8) {
		return Transform{}, 0, false
	}
	packed := readU64(buf, off)

	axis := func(i uint) float64 {
		return float64((packed>>(i*packedAxisBits))&packedAxisMask)/10.0 - 50.0
	}

	rotBits := (packed >> packedRotShift) & packedAxisMask
	angle := (float64(rotBits) / 1023.0) * gomath.Pi * 2

	scaleBits := (packed >> packedScaleShft) & packedScaleMask
	s := 0.5 + (float64(scaleBits)/255.0)*2.0

	return Transform{
		Position: math.Vec3{X: axis(0), Y: axis(1), Z: axis(2)},
		Scale:    math.Uniform(s),
		Rotation: math.Quat{X: 0, Y: 0, Z: gomath.Sin(angle / 2), W: gomath.Cos(angle / 2)},
	}, 8, true
}

// compactBits3 gathers every third bit of v, starting at bit 0, into the
// low bits of the result. The last step keeps 32 bits without folding the
// top cluster down, so only coordinates below 256 round-trip exactly.
func compactBits3(v uint64) uint64 {
	v &= 0x9249249249249249
	v = (v | (v >> 2)) & 0x30C30C30C30C30C3
	v = (v | (v >> 4)) & 0xF00F00F00F00F00F
	v = (v | (v >> 8)) & 0x00FF0000FF0000FF
	v = (v | (v >> 16)) & 0x00000000FFFFFFFF
	return v
}

// DecodeMorton3 splits a 3D Morton code into its X, Y and Z coordinates.
func DecodeMorton3(code uint64) (x, y, z uint64) {
	return compactBits3(code), compactBits3(code >> 1), compactBits3(code >> 2)
}

// decodeMorton reads a Morton-coded position in thousandths followed by a
// float rotation and scale.
func decodeMorton(buf []byte, off int) (Transform, int, bool) {
	if !fits(buf, off, 36) {
		return Transform{}, 0, false
	}
	x, y, z := DecodeMorton3(readU64(buf, off))
	rest, _ := floats(buf, off+8, 7)

	return Transform{
		Position: math.Vec3{X: float64(x) / 1000.0, Y: float64(y) / 1000.0, Z: float64(z) / 1000.0},
		Scale:    math.Vec3Of(rest[4:7]),
		Rotation: math.QuatOf(rest[0:4]),
	}, 36, true
}
