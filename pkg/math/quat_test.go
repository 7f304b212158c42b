package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalized(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n, ok := q.Normalized()
	if !ok {
		t.Fatal("Normalized reported a zero-length quaternion")
	}
	if math.Abs(n.Length()-1.0) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Length())
	}

	if _, ok := (Quat{}).Normalized(); ok {
		t.Error("zero quaternion should not normalize")
	}
}

func TestQuatFromMatrixIdentity(t *testing.T) {
	id := Identity3()
	q := QuatFromMatrix(id[:])
	if q != QuatIdentity() {
		t.Errorf("QuatFromMatrix(identity) = %v, want exactly (0,0,0,1)", q)
	}
}

func TestQuatFromMatrixStrides(t *testing.T) {
	// 90 degrees around Z, in 9, 12 and 16 element layouts.
	r := RotateZ(math.Pi / 2)
	m12 := []float64{r[0], r[1], r[2], 0, r[3], r[4], r[5], 0, r[6], r[7], r[8], 0}
	m16 := append(append([]float64{}, m12...), 0, 0, 0, 1)

	want := QuatFromMatrix(r[:])
	for _, m := range [][]float64{m12, m16} {
		got := QuatFromMatrix(m)
		if math.Abs(got.Dot(want)-1) > 1e-9 {
			t.Errorf("len %d: got %v, want %v", len(m), got, want)
		}
	}

	expectedZ := math.Sin(math.Pi / 4)
	if math.Abs(want.Z-expectedZ) > 1e-9 || math.Abs(want.W-expectedZ) > 1e-9 {
		t.Errorf("90deg Z rotation: got %v", want)
	}
}

func TestQuatFromMatrixMalformed(t *testing.T) {
	for _, n := range []int{0, 3, 8, 10, 15} {
		if got := QuatFromMatrix(make([]float64, n)); got != QuatIdentity() {
			t.Errorf("len %d: expected identity, got %v", n, got)
		}
		if _, ok := QuatFromMatrixStrict(make([]float64, n)); ok {
			t.Errorf("len %d: strict conversion should fail", n)
		}
	}
}

func TestQuatFromMatrixBranches(t *testing.T) {
	// Each case drives a different branch of the trace method.
	tests := []struct {
		name  string
		angle float64
		axis  mgl64.Vec3
	}{
		{"positive trace", 0.3, mgl64.Vec3{0, 1, 0}},
		{"x dominant", math.Pi, mgl64.Vec3{1, 0, 0}},
		{"y dominant", math.Pi, mgl64.Vec3{0, 1, 0}},
		{"z dominant", math.Pi, mgl64.Vec3{0, 0, 1}},
		{"oblique", 2.5, mgl64.Vec3{1, 2, 3}.Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := mgl64.QuatRotate(tt.angle, tt.axis)
			// mgl64 matrices are column-major, so the transpose reads row-major.
			rowMajor := Mat3(ref.Mat4().Mat3().Transpose())

			got, ok := QuatFromMatrixStrict(rowMajor[:])
			if !ok {
				t.Fatalf("strict conversion failed for %v", rowMajor)
			}
			want := Quat{X: ref.V[0], Y: ref.V[1], Z: ref.V[2], W: ref.W}
			if d := math.Abs(got.Dot(want)); math.Abs(d-1) > 1e-6 {
				t.Errorf("got %v, want +/-%v", got, want)
			}
		})
	}
}

func TestQuatFromMatrixOrthonormalUnitNorm(t *testing.T) {
	for i := 0; i < 64; i++ {
		a := float64(i) * 0.37
		m := RotateZ(a).Mul(RotateX(a * 1.9))
		q := QuatFromMatrix(m[:])
		if math.Abs(q.Length()-1) > 1e-4 {
			t.Errorf("angle %v: norm %v", a, q.Length())
		}
	}
}

func TestQuatFromMatrixStrictRejects(t *testing.T) {
	// Zero matrix: trace 0, the m33 branch radicand is exactly 1.
	if _, ok := QuatFromMatrixStrict(make([]float64, 9)); !ok {
		t.Error("zero matrix should convert")
	}
	// Infinite trace drives s to zero.
	inf := math.Inf(1)
	if _, ok := QuatFromMatrixStrict([]float64{inf, 0, 0, 0, 1, 0, 0, 0, 1}); ok {
		t.Error("infinite trace should be rejected")
	}
	// NaN propagates instead of failing.
	q, ok := QuatFromMatrixStrict([]float64{math.NaN(), 0, 0, 0, 1, 0, 0, 0, 1})
	if !ok || !math.IsNaN(q.W) {
		t.Errorf("NaN input: got %v ok=%v", q, ok)
	}
}

func TestQuatToMat3RoundTrip(t *testing.T) {
	q := QuatFromEuler(0.4, -0.2, 1.1)
	m := q.ToMat3()
	back := QuatFromMatrix(m[:])
	if math.Abs(math.Abs(back.Dot(q))-1) > 1e-9 {
		t.Errorf("round trip: got %v, want %v", back, q)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, math.Pi/2)

	expectedW := math.Cos(math.Pi / 4)
	expectedY := math.Sin(math.Pi / 4)

	if math.Abs(q.W-expectedW) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(q.Y-expectedY) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatFromEuler(t *testing.T) {
	// Pure yaw matches an axis-angle rotation about Z.
	q := QuatFromEuler(0, 0, 1.2)
	want := QuatFromAxisAngle(Vec3{Z: 1}, 1.2)
	if math.Abs(q.Dot(want)-1) > 1e-9 {
		t.Errorf("yaw only: got %v, want %v", q, want)
	}

	// Pure roll matches a rotation about X.
	q = QuatFromEuler(0.8, 0, 0)
	want = QuatFromAxisAngle(Vec3{X: 1}, 0.8)
	if math.Abs(q.Dot(want)-1) > 1e-9 {
		t.Errorf("roll only: got %v, want %v", q, want)
	}
}

func TestQuatFromCompact(t *testing.T) {
	q := QuatFromCompact(0, 0, 0.6)
	if math.Abs(q.W-0.8) > 1e-9 {
		t.Errorf("W = %v, want 0.8", q.W)
	}

	// Out-of-range components clamp W to zero instead of producing NaN.
	q = QuatFromCompact(1, 1, 1)
	if q.W != 0 {
		t.Errorf("W = %v, want 0", q.W)
	}
}

func TestDualQuatPosition(t *testing.T) {
	// Identity rotation with translation t has dual part (t/2, 0).
	real := QuatIdentity()
	dual := Quat{X: 5, Y: -1.5, Z: 2, W: 0}
	got := DualQuatPosition(real, dual)
	want := Vec3{10, -3, 4}
	if got != want {
		t.Errorf("DualQuatPosition() = %v, want %v", got, want)
	}
}
