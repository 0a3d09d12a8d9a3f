package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := TRS(Vec3{1, 2, 3}, QuatFromAxisAngle(Vec3{0, 0, 1}, 0.7))
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMulComposes(t *testing.T) {
	rot := QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2)
	m := Translate(Vec3{5, 0, 0}).Mul(rot.ToMat4())

	// Rotate (1,0,0) onto (0,1,0), then move by (5,0,0).
	got := m.TransformPoint(Vec3{1, 0, 0})
	if !approxVec3(got, Vec3{5, 1, 0}, 1e-5) {
		t.Errorf("TransformPoint: got %v, want (5,1,0)", got)
	}
	if want := TRS(Vec3{5, 0, 0}, rot); !approxVec3(want.TransformPoint(Vec3{1, 0, 0}), got, 1e-5) {
		t.Error("TRS disagrees with Translate * rotation")
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
	if m.Translation() != (Vec3{10, 20, 30}) {
		t.Errorf("Translation: got %v, want (10,20,30)", m.Translation())
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformDirection(Vec3{1, 0, 0})
	if got != (Vec3{1, 0, 0}) {
		t.Errorf("TransformDirection: got %v, want (1,0,0)", got)
	}
}

func TestInverseRigid(t *testing.T) {
	rot := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/3)
	m := TRS(Vec3{4, -1, 2}, rot)
	inv := m.InverseRigid()

	p := Vec3{1, 2, 3}
	back := inv.TransformPoint(m.TransformPoint(p))
	if !approxVec3(back, p, 1e-4) {
		t.Errorf("InverseRigid round trip: got %v, want %v", back, p)
	}

	id := m.Mul(inv)
	for i, want := range Identity() {
		if math.Abs(float64(id[i]-want)) > 1e-5 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, id[i], want)
		}
	}
}
