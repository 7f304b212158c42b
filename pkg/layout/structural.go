package layout

import (
	"github.com/Faultbox/lpmtscan/pkg/math"
)

// maxPrefixLength bounds the opaque payload of a length-prefixed record.
const maxPrefixLength = 256

// decodeTagged reads three sub-records (position, rotation, scale), each
// preceded by a 32-bit tag. The tags must be 1, 2 and 3.
func decodeTagged(buf []byte, off int) (Transform, int, bool) {
	if !fits(buf, off, 52) {
		return Transform{}, 0, false
	}
	if readU32(buf, off) != 1 || readU32(buf, off+16) != 2 || readU32(buf, off+36) != 3 {
		return Transform{}, 0, false
	}
	pos, _ := floats(buf, off+4, 3)
	quat, _ := floats(buf, off+20, 4)
	scale, _ := floats(buf, off+40, 3)

	return Transform{
		Position: math.Vec3Of(pos),
		Scale:    math.Vec3Of(scale),
		Rotation: math.QuatOf(quat),
	}, 52, true
}

// decodeLengthPrefixed reads a 32-bit length N (0 < N < 256), skips N bytes
// of payload such as a name, then decodes a 4x4 matrix.
func decodeLengthPrefixed(buf []byte, off int) (Transform, int, bool) {
	if !fits(buf, off, 4) {
		return Transform{}, 0, false
	}
	n := readU32(buf, off)
	if n == 0 || n >= maxPrefixLength {
		return Transform{}, 0, false
	}
	skip := 4 + int(n)
	t, size, ok := matrixLayout(skip, 16, shape4x4)(buf, off)
	if !ok {
		return Transform{}, 0, false
	}
	return t, size, true
}
