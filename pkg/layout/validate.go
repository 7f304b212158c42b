package layout

import (
	gomath "math"

	"github.com/Faultbox/lpmtscan/pkg/math"
)

// Plausibility bounds.
const (
	MaxPositionAbs    = 1e6
	MaxScale          = 1000.0
	QuatNormTolerance = 0.1
)

// Validate reports whether a decoded transform is plausible: finite
// components, |position| <= 1e6, 0 < scale <= 1000 and a quaternion norm
// within 0.1 of 1.
func Validate(pos, scale math.Vec3, quat math.Quat) bool {
	for _, p := range pos.Array() {
		if !finite(p) || gomath.Abs(p) > MaxPositionAbs {
			return false
		}
	}
	for _, s := range scale.Array() {
		if !finite(s) || s <= 0 || s > MaxScale {
			return false
		}
	}
	for _, q := range quat.Array() {
		if !finite(q) {
			return false
		}
	}
	return gomath.Abs(quat.Length()-1.0) <= QuatNormTolerance
}

func finite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}
