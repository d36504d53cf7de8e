package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[4] != 1 || m[8] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[3] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestFromColumns(t *testing.T) {
	h := Vec3{1, 0, 0}
	v := Vec3{0, 0, -1}
	o := Vec3{0, 1, 0}
	m := FromColumns(h, v, o)

	if m.Col(0) != h || m.Col(1) != v || m.Col(2) != o {
		t.Errorf("columns not preserved: %v", m)
	}
	if m.Row(1) != (Vec3{0, 0, 1}) {
		t.Errorf("Row(1) = %v, want (0,0,1)", m.Row(1))
	}
	if !m.IsOrthonormal(1e-12) {
		t.Error("camera default frame should be orthonormal")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Mat3{1, 2, 3, 4, 5, 6, 7, 8, 10}
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I should equal M, got %v", got)
	}
}

func TestMulVec(t *testing.T) {
	// 90 degrees around Z
	m := Mat3{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	}
	got := m.MulVec(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("MulVec = %v, want (0,1,0)", got)
	}
}

func TestInverse(t *testing.T) {
	m := Mat3{2, 0, 1, 1, 3, 0, 0, 1, 4}
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected invertible matrix")
	}
	p := m.Mul(inv)
	id := Identity()
	for i := range p {
		if math.Abs(p[i]-id[i]) > 1e-12 {
			t.Fatalf("M * M^-1 element %d = %v, want %v", i, p[i], id[i])
		}
	}

	if _, ok := (Mat3{1, 2, 3, 2, 4, 6, 0, 0, 1}).Inverse(); ok {
		t.Error("singular matrix reported as invertible")
	}
}

func TestIsOrthonormal(t *testing.T) {
	if (Mat3{2, 0, 0, 0, 1, 0, 0, 0, 1}).IsOrthonormal(1e-9) {
		t.Error("scaled matrix reported as orthonormal")
	}
	// reflection: orthogonal but not a rotation
	if (Mat3{-1, 0, 0, 0, 1, 0, 0, 0, 1}).IsOrthonormal(1e-9) {
		t.Error("reflection reported as rotation")
	}
}
