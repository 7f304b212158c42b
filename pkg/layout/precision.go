package layout

import (
	"github.com/x448/float16"

	"github.com/Faultbox/lpmtscan/pkg/math"
)

// halfRecordWidth is the span read by the half-precision layout: twenty
// halves, of which the first ten carry position, rotation and scale.
const halfRecordWidth = 40

// decodeHalf reads IEEE 754 binary16 values. Subnormals, infinities and NaN
// decode to their float64 equivalents.
func decodeHalf(buf []byte, off int) (Transform, int, bool) {
	if !fits(buf, off, halfRecordWidth) {
		return Transform{}, 0, false
	}
	var v [10]float64
	for i := range v {
		v[i] = float64(float16.Frombits(readU16(buf, off+i*2)).Float32())
	}
	return orderPosQuatScale.extract(v[:]), halfRecordWidth, true
}

// decodeDouble reads ten float64 values: position, rotation, scale.
func decodeDouble(buf []byte, off int) (Transform, int, bool) {
	v, ok := doubles(buf, off, 10)
	if !ok {
		return Transform{}, 0, false
	}
	return orderPosQuatScale.extract(v), 80, true
}

// decodeMixed reads a float64 position followed by float32 rotation and
// scale.
func decodeMixed(buf []byte, off int) (Transform, int, bool) {
	pos, ok := doubles(buf, off, 3)
	if !ok {
		return Transform{}, 0, false
	}
	rest, ok := floats(buf, off+24, 7)
	if !ok {
		return Transform{}, 0, false
	}
	return Transform{
		Position: math.Vec3Of(pos),
		Scale:    math.Vec3Of(rest[4:7]),
		Rotation: math.QuatOf(rest[0:4]),
	}, 52, true
}
