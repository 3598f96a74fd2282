package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in row 3 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v", got)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	result := m.TransformPoint(Vec3{1, 0, 0})

	// Left-handed: +X rotates onto -Z
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestThenOrder(t *testing.T) {
	// Scale first, then translate: (1,0,0) -> (2,0,0) -> (12,0,0)
	m := Scale(2, 2, 2).Then(Translate(10, 0, 0))
	got := m.TransformPoint(Vec3{1, 0, 0})
	if got != (Vec3{12, 0, 0}) {
		t.Errorf("Scale.Then(Translate): got %v, want (12, 0, 0)", got)
	}

	// Translate first, then scale: (1,0,0) -> (11,0,0) -> (22,0,0)
	m = Translate(10, 0, 0).Then(Scale(2, 2, 2))
	got = m.TransformPoint(Vec3{1, 0, 0})
	if got != (Vec3{22, 0, 0}) {
		t.Errorf("Translate.Then(Scale): got %v, want (22, 0, 0)", got)
	}
}

func TestTranspose(t *testing.T) {
	m := Mat4{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
		12, 13, 14, 15,
	}
	tr := m.Transpose()
	if tr[1] != 4 || tr[4] != 1 || tr[3] != 12 || tr[12] != 3 {
		t.Errorf("Transpose: got %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("Transpose twice should be identity operation")
	}
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"translate", Translate(3, -4, 5)},
		{"scale", Scale(2, 4, 0.5)},
		{"rotate", RotateAxis(Vec3{0, 1, 1}.Normalize(), 0.7)},
		{"composite", Scale(2, 2, 2).Then(RotateX(1.1)).Then(Translate(1, 2, 3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Then(tt.m.Inverse())
			if !got.ApproxEqual(Identity(), 1e-5) {
				t.Errorf("M * M^-1 = %v, want identity", got)
			}
		})
	}
}

func TestInverseSingular(t *testing.T) {
	if got := (Mat4{}).Inverse(); got != Identity() {
		t.Errorf("singular inverse: got %v, want identity", got)
	}
}

func TestPerspectiveFovLH(t *testing.T) {
	m := PerspectiveFovLH(ToRadians(90), 2, 1, 101)

	if abs(m[5]-1) > 0.0001 {
		t.Errorf("PerspectiveFovLH [5] should be 1 for 90 degrees, got %f", m[5])
	}
	if abs(m[0]-0.5) > 0.0001 {
		t.Errorf("PerspectiveFovLH [0] should be 1/aspect, got %f", m[0])
	}
	if m[11] != 1 || m[15] != 0 {
		t.Errorf("PerspectiveFovLH w row: [11]=%f [15]=%f", m[11], m[15])
	}

	// Near plane maps to depth 0, far plane to depth 1
	near := m.MulVec4(Point(0, 0, 1))
	far := m.MulVec4(Point(0, 0, 101))
	if abs(near.Z/near.W) > 0.0001 {
		t.Errorf("near depth: got %f, want 0", near.Z/near.W)
	}
	if abs(far.Z/far.W-1) > 0.0001 {
		t.Errorf("far depth: got %f, want 1", far.Z/far.W)
	}
}

func TestOrthographicOffCenterLH(t *testing.T) {
	// Screen points with the origin top-left
	m := OrthographicOffCenterLH(0, 800, 600, 0, 0, 1)

	tests := []struct {
		in   Vec3
		want Vec3
	}{
		{Vec3{0, 0, 0}, Vec3{-1, 1, 0}},
		{Vec3{800, 600, 1}, Vec3{1, -1, 1}},
		{Vec3{400, 300, 0.5}, Vec3{0, 0, 0.5}},
	}
	for _, tt := range tests {
		got := m.TransformPoint(tt.in)
		if abs(got.X-tt.want.X) > 0.0001 || abs(got.Y-tt.want.Y) > 0.0001 || abs(got.Z-tt.want.Z) > 0.0001 {
			t.Errorf("ortho %v: got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLookAtLH(t *testing.T) {
	eye := Vec3{0, 0, -5}
	target := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAtLH(eye, target, up)

	if m[15] != 1 {
		t.Errorf("LookAtLH [15] should be 1, got %f", m[15])
	}

	// Eye maps to origin, target lies on +Z
	if got := m.TransformPoint(eye); got.Length() > 0.0001 {
		t.Errorf("eye in view space: got %v, want origin", got)
	}
	got := m.TransformPoint(target)
	if abs(got.X) > 0.0001 || abs(got.Y) > 0.0001 || abs(got.Z-5) > 0.0001 {
		t.Errorf("target in view space: got %v, want (0, 0, 5)", got)
	}
}

func TestToRadians(t *testing.T) {
	if got := ToRadians(180); abs(got-float32(math.Pi)) > 0.00001 {
		t.Errorf("ToRadians(180) = %f", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
