package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], tol)
	assert.InDelta(t, want[1], got[1], tol)
	assert.InDelta(t, want[2], got[2], tol)
}

func TestRotZ(t *testing.T) {
	// 90 degrees about Z turns +X into +Y.
	assertVec3(t, Vec3{0, 1, 0}, RotZ(Deg2Rad(90)).MulVec3(Vec3{1, 0, 0}))
	assertVec3(t, Vec3{-1, 0, 0}, RotZ(Deg2Rad(90)).MulVec3(Vec3{0, 1, 0}))
}

func TestRotX(t *testing.T) {
	assertVec3(t, Vec3{0, 0, 1}, RotX(Deg2Rad(90)).MulVec3(Vec3{0, 1, 0}))
}

func TestEulerXYZOrder(t *testing.T) {
	// X applied first, then Y, then Z: a +Y vector rotated (90, 0, 90)
	// goes +Y -> +Z under X, and Z is unaffected by the final Z turn.
	r := EulerXYZDeg(Vec3{90, 0, 90})
	assertVec3(t, Vec3{0, 0, 1}, r.MulVec3(Vec3{0, 1, 0}))

	// Compare against explicit composition Rz*Ry*Rx.
	want := Mat3Mul(Mat3Mul(RotZ(Deg2Rad(30)), RotY(Deg2Rad(20))), RotX(Deg2Rad(10)))
	got := EulerXYZDeg(Vec3{10, 20, 30})
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol)
	}
}

func TestPivotRotationFixesPivot(t *testing.T) {
	pivot := Vec3{0.1, 0.2, 0.3}
	m := PivotRotation(EulerXYZDeg(Vec3{35, -20, 110}), pivot, Vec3{})
	assertVec3(t, pivot, m.MulPoint(pivot))
}

func TestPivotRotationOffset(t *testing.T) {
	pivot := Vec3{0, 0, 0.37}
	off := Vec3{0, -0.05, 0.05}
	m := PivotRotation(EulerXYZDeg(Vec3{0, 0, 90}), pivot, off)

	// The pivot itself lands exactly at pivot+offset.
	assertVec3(t, pivot.Add(off), m.MulPoint(pivot))

	// A point one unit along +X from the pivot swings to +Y, then offsets.
	p := pivot.Add(Vec3{1, 0, 0})
	assertVec3(t, pivot.Add(Vec3{0, 1, 0}).Add(off), m.MulPoint(p))
}

func TestMat4MulIdentity(t *testing.T) {
	m := PivotRotation(EulerXYZDeg(Vec3{12, 34, 56}), Vec3{1, 2, 3}, Vec3{4, 5, 6})
	assert.Equal(t, m, Mat4Mul(Mat4Identity(), m))
	assert.Equal(t, m, Mat4Mul(m, Mat4Identity()))
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -2, 1}
	assertVec3(t, Vec3{5, 0, 4}, a.Add(b))
	assertVec3(t, Vec3{-3, 4, 2}, a.Sub(b))
	assertVec3(t, Vec3{2, 4, 6}, a.Scale(2))
	assertVec3(t, Vec3{4, -4, 3}, a.MulPerAxis(b))
	assert.InDelta(t, 5.0, Vec3{3, 4, 0}.Len(), tol)
	assert.True(t, Vec3{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, -4, 2}
	assertVec3(t, a, a.Lerp(b, 0))
	assertVec3(t, b, a.Lerp(b, 1))
	assertVec3(t, Vec3{5, -2, 1}, a.Lerp(b, 0.5))
}
