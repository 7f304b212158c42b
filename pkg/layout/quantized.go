package layout

import (
	gomath "math"

	"github.com/Faultbox/lpmtscan/pkg/math"
)

// Candidate divisors for fixed-point records, tried outer (position) by
// inner (scale). The first pair whose transform validates is accepted.
var (
	I32PositionDivisors = [...]float64{1000.0, 1024.0, 4096.0, 16384.0}
	I32ScaleDivisors    = [...]float64{100.0, 256.0, 1000.0, 1024.0, 4096.0}

	I16PositionDivisors = [...]float64{10.0, 50.0, 100.0, 256.0, 512.0, 1000.0, 1024.0, 4096.0}
	I16ScaleDivisors    = [...]float64{10.0, 100.0, 256.0, 1000.0, 1024.0, 4096.0}
)

// minFixedScale keeps fixed-point scale components strictly positive.
const minFixedScale = 1e-6

// snorm16Quat maps four signed shorts onto a unit quaternion.
func snorm16Quat(buf []byte, off int) (math.Quat, bool) {
	q := math.Quat{
		X: float64(readI16(buf, off)) / 32767.0,
		Y: float64(readI16(buf, off+2)) / 32767.0,
		Z: float64(readI16(buf, off+4)) / 32767.0,
		W: float64(readI16(buf, off+6)) / 32767.0,
	}
	return q.Normalized()
}

// unorm16Quat maps four unsigned shorts from [0, 65535] onto [-1, 1] and
// normalizes the result.
func unorm16Quat(buf []byte, off int) (math.Quat, bool) {
	u := func(o int) float64 {
		return (float64(readU16(buf, off+o))/65535.0)*2.0 - 1.0
	}
	q := math.Quat{X: u(0), Y: u(2), Z: u(4), W: u(6)}
	return q.Normalized()
}

// shortQuatLayout reads skip header bytes, a float position, four quaternion
// shorts and a float scale (32 bytes after the header). The result must
// validate.
func shortQuatLayout(skip int, quat func([]byte, int) (math.Quat, bool)) DecodeFunc {
	return func(buf []byte, off int) (Transform, int, bool) {
		if !fits(buf, off, skip+32) {
			return Transform{}, 0, false
		}
		base := off + skip
		pos, _ := floats(buf, base, 3)
		scale, _ := floats(buf, base+20, 3)

		q, ok := quat(buf, base+12)
		if !ok {
			return Transform{}, 0, false
		}

		t := Transform{
			Position: math.Vec3Of(pos),
			Scale:    math.Vec3Of(scale),
			Rotation: q,
		}
		if !t.Valid() {
			return Transform{}, 0, false
		}
		return t, skip + 32, true
	}
}

// fixedPoint holds the raw integers of a quantized record.
type fixedPoint struct {
	pos   [3]float64
	quat  [4]float64
	scale [3]float64
}

// resolve searches the divisor lists for the first plausible transform.
func (f fixedPoint) resolve(posDivisors, scaleDivisors []float64) (Transform, bool) {
	for _, pd := range posDivisors {
		pos := math.Vec3{X: f.pos[0] / pd, Y: f.pos[1] / pd, Z: f.pos[2] / pd}
		for _, sd := range scaleDivisors {
			scale := math.Vec3{
				X: gomath.Max(minFixedScale, f.scale[0]/sd),
				Y: gomath.Max(minFixedScale, f.scale[1]/sd),
				Z: gomath.Max(minFixedScale, f.scale[2]/sd),
			}
			q, ok := math.Quat{
				X: f.quat[0] / 32767.0,
				Y: f.quat[1] / 32767.0,
				Z: f.quat[2] / 32767.0,
				W: f.quat[3] / 32767.0,
			}.Normalized()
			if !ok {
				continue
			}
			if Validate(pos, scale, q) {
				return Transform{Position: pos, Scale: scale, Rotation: q}, true
			}
		}
	}
	return Transform{}, false
}

// decodeFixedI32 reads an int32 position, int16 quaternion and int16 scale
// (26 bytes).
func decodeFixedI32(buf []byte, off int) (Transform, int, bool) {
	if !fits(buf, off, 26) {
		return Transform{}, 0, false
	}
	var f fixedPoint
	for i := 0; i < 3; i++ {
		f.pos[i] = float64(readI32(buf, off+i*4))
		f.scale[i] = float64(readI16(buf, off+20+i*2))
	}
	for i := 0; i < 4; i++ {
		f.quat[i] = float64(readI16(buf, off+12+i*2))
	}

	t, ok := f.resolve(I32PositionDivisors[:], I32ScaleDivisors[:])
	if !ok {
		return Transform{}, 0, false
	}
	return t, 26, true
}

// decodeFixedI16 reads ten int16 values: position, quaternion, scale
// (20 bytes).
func decodeFixedI16(buf []byte, off int) (Transform, int, bool) {
	if !fits(buf, off, 20) {
		return Transform{}, 0, false
	}
	var f fixedPoint
	for i := 0; i < 3; i++ {
		f.pos[i] = float64(readI16(buf, off+i*2))
		f.scale[i] = float64(readI16(buf, off+14+i*2))
	}
	for i := 0; i < 4; i++ {
		f.quat[i] = float64(readI16(buf, off+6+i*2))
	}

	t, ok := f.resolve(I16PositionDivisors[:], I16ScaleDivisors[:])
	if !ok {
		return Transform{}, 0, false
	}
	return t, 20, true
}
