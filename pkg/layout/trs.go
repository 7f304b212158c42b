package layout

import (
	"github.com/Faultbox/lpmtscan/pkg/math"
)

// trsOrder gives the float index of each component inside a 10 float block.
type trsOrder struct {
	pos, quat, scale int
}

var (
	orderPosQuatScale = trsOrder{pos: 0, quat: 3, scale: 7}
	orderQuatPosScale = trsOrder{pos: 4, quat: 0, scale: 7}
	orderScalePosQuat = trsOrder{pos: 3, quat: 6, scale: 0}
	orderPosScaleQuat = trsOrder{pos: 0, quat: 6, scale: 3}
)

func (o trsOrder) extract(v []float64) Transform {
	return Transform{
		Position: math.Vec3Of(v[o.pos:]),
		Scale:    math.Vec3Of(v[o.scale:]),
		Rotation: math.QuatOf(v[o.quat:]),
	}
}

// trsLayout reads ten floats after skip header bytes and extracts the
// components in the given order, without any derivation.
func trsLayout(skip int, order trsOrder) DecodeFunc {
	return func(buf []byte, off int) (Transform, int, bool) {
		if !fits(buf, off, skip+40) {
			return Transform{}, 0, false
		}
		v, _ := floats(buf, off+skip, 10)
		return order.extract(v), skip + 40, true
	}
}

// decodeDecomposed reads position, rotation, scale and a translation offset
// that is added to the position.
func decodeDecomposed(buf []byte, off int) (Transform, int, bool) {
	v, ok := floats(buf, off, 13)
	if !ok {
		return Transform{}, 0, false
	}
	t := orderPosQuatScale.extract(v)
	t.Position = t.Position.Add(math.Vec3Of(v[10:13]))
	return t, 52, true
}

// decodePivot reads a pivot, rotation, scale and position. The pivot is
// skipped.
func decodePivot(buf []byte, off int) (Transform, int, bool) {
	v, ok := floats(buf, off, 13)
	if !ok {
		return Transform{}, 0, false
	}
	return Transform{
		Position: math.Vec3Of(v[10:13]),
		Scale:    math.Vec3Of(v[7:10]),
		Rotation: math.QuatOf(v[3:7]),
	}, 52, true
}
