package layout

import (
	gomath "math"

	"github.com/Faultbox/lpmtscan/pkg/math"
)

// matrixShape describes where the pieces of an affine matrix live inside a
// run of floats stored row by row.
type matrixShape struct {
	scaleStride int    // row stride used when measuring column lengths
	rotStride   int    // row stride used when gathering the rotation block
	pos         [3]int // indices of the translation components
	strictScale bool   // a zero-length column rejects the record
}

var (
	// shape4x4 is a 4x4 matrix with the translation in the last row.
	shape4x4 = matrixShape{scaleStride: 4, rotStride: 4, pos: [3]int{12, 13, 14}}

	// shape3x4 is a 3x3 block followed by a translation row.
	shape3x4 = matrixShape{scaleStride: 3, rotStride: 3, pos: [3]int{9, 10, 11}}

	// shapeVar16 matches the variable-header 16 float search, which measures
	// scale on 4-wide rows but gathers rotation on 3-wide rows.
	shapeVar16 = matrixShape{scaleStride: 4, rotStride: 3, pos: [3]int{12, 13, 14}}

	// shapeVar12 is a 3x4 matrix whose translation is the fourth column.
	shapeVar12 = matrixShape{scaleStride: 4, rotStride: 4, pos: [3]int{3, 7, 11}, strictScale: true}
)

// decompose splits v into translation, per-column scale and rotation.
// Rotation columns are divided by their scale, a zero scale leaves a zero
// column unless the shape is strict.
func (s matrixShape) decompose(v []float64) (Transform, bool) {
	var scale [3]float64
	for j := 0; j < 3; j++ {
		a, b, c := v[j], v[s.scaleStride+j], v[2*s.scaleStride+j]
		scale[j] = gomath.Sqrt(a*a + b*b + c*c)
		if s.strictScale && scale[j] == 0 {
			return Transform{}, false
		}
	}

	var rot math.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if scale[j] != 0 {
				rot[i*3+j] = v[i*s.rotStride+j] / scale[j]
			}
		}
	}

	q, ok := math.QuatFromMatrixStrict(rot[:])
	if !ok {
		return Transform{}, false
	}

	return Transform{
		Position: math.Vec3{X: v[s.pos[0]], Y: v[s.pos[1]], Z: v[s.pos[2]]},
		Scale:    math.Vec3{X: scale[0], Y: scale[1], Z: scale[2]},
		Rotation: q,
	}, true
}

// matrixLayout reads count floats after a header of skip bytes and decomposes
// them with shape. The record width is skip plus the float block.
func matrixLayout(skip, count int, shape matrixShape) DecodeFunc {
	return func(buf []byte, off int) (Transform, int, bool) {
		if !fits(buf, off, skip+count*4) {
			return Transform{}, 0, false
		}
		v, _ := floats(buf, off+skip, count)
		t, ok := shape.decompose(v)
		if !ok {
			return Transform{}, 0, false
		}
		return t, skip + count*4, true
	}
}

// transposedScale measures the first three rows of a column-major block.
func transposedScale(v []float64) [3]float64 {
	var scale [3]float64
	for i := 0; i < 3; i++ {
		a, b, c := v[i*4], v[i*4+1], v[i*4+2]
		scale[i] = gomath.Sqrt(a*a + b*b + c*c)
	}
	return scale
}

func transposedResult(v []float64, scale [3]float64, rot math.Mat3) (Transform, bool) {
	q, ok := math.QuatFromMatrixStrict(rot[:])
	if !ok {
		return Transform{}, false
	}
	return Transform{
		Position: math.Vec3{X: v[3], Y: v[7], Z: v[11]},
		Scale:    math.Vec3{X: scale[0], Y: scale[1], Z: scale[2]},
		Rotation: q,
	}, true
}

// decodeTransposed4x4 reads a column-major 4x4 matrix with the translation
// in the fourth column.
func decodeTransposed4x4(buf []byte, off int) (Transform, int, bool) {
	v, ok := floats(buf, off, 16)
	if !ok {
		return Transform{}, 0, false
	}
	scale := transposedScale(v)

	var rot math.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if scale[i] != 0 {
				rot[i*3+j] = v[j*4+i] / scale[i]
			}
		}
	}

	t, ok := transposedResult(v, scale, rot)
	return t, 64, ok
}

// decodeTransposed3x4 reads three 4-wide rows. Unlike the 4x4 variant the
// rotation block is gathered row by row, each element divided by the scale
// of its column.
func decodeTransposed3x4(buf []byte, off int) (Transform, int, bool) {
	v, ok := floats(buf, off, 12)
	if !ok {
		return Transform{}, 0, false
	}
	scale := transposedScale(v)

	var rot math.Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			if scale[row] != 0 {
				rot[col*3+row] = v[col*4+row] / scale[row]
			}
		}
	}

	t, ok := transposedResult(v, scale, rot)
	return t, 48, ok
}

// minInvertibleDet is the smallest |det| accepted for an inverted matrix.
const minInvertibleDet = 0.0001

// decodeInverted4x4 reads a 4x4 matrix stored as the inverse of the object
// transform: translation is negated and scale reciprocated.
func decodeInverted4x4(buf []byte, off int) (Transform, int, bool) {
	v, ok := floats(buf, off, 16)
	if !ok {
		return Transform{}, 0, false
	}

	upper := math.Mat3{
		v[0], v[1], v[2],
		v[4], v[5], v[6],
		v[8], v[9], v[10],
	}
	if gomath.Abs(upper.Det()) < minInvertibleDet {
		return Transform{}, 0, false
	}

	var scale [3]float64
	for j := 0; j < 3; j++ {
		n := upper.ColumnLength(j)
		if n == 0 {
			return Transform{}, 0, false
		}
		scale[j] = 1.0 / n
	}

	var rot math.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot[i*3+j] = upper[i*3+j] * scale[j]
		}
	}

	q, ok := math.QuatFromMatrixStrict(rot[:])
	if !ok {
		return Transform{}, 0, false
	}

	return Transform{
		Position: math.Vec3Of(v[12:15]).Neg(),
		Scale:    math.Vec3{X: scale[0], Y: scale[1], Z: scale[2]},
		Rotation: q,
	}, 64, true
}

// rotationBlockLayout reads a 3x3 rotation block followed by position and
// scale (15 floats). Column-major blocks are transposed first.
func rotationBlockLayout(columnMajor bool) DecodeFunc {
	return func(buf []byte, off int) (Transform, int, bool) {
		v, ok := floats(buf, off, 15)
		if !ok {
			return Transform{}, 0, false
		}

		var rot math.Mat3
		copy(rot[:], v[0:9])
		if columnMajor {
			rot = rot.Transpose()
		}

		q, ok := math.QuatFromMatrixStrict(rot[:])
		if !ok {
			return Transform{}, 0, false
		}

		return Transform{
			Position: math.Vec3Of(v[9:12]),
			Scale:    math.Vec3Of(v[12:15]),
			Rotation: q,
		}, 60, true
	}
}
