package math32

import "testing"

func TestQuat_RotateVecIdentity(t *testing.T) {
	tests := []struct {
		name string
		v    Vector3
	}{
		{"zero", V3(0, 0, 0)},
		{"unit_x", V3(1, 0, 0)},
		{"unit_y", V3(0, 1, 0)},
		{"unit_z", V3(0, 0, 1)},
		{"mixed", V3(1.5, -2.25, 3.75)},
		{"large", V3(1e4, -1e4, 5e3)},
	}

	id := QuatIdentity()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := id.RotateVec(tt.v)
			if !got.Approx(tt.v, 1e-6) {
				t.Errorf("identity.RotateVec(%v) = %v, want %v", tt.v, got, tt.v)
			}
		})
	}
}

func TestQuat_RotateVecKnownRotations(t *testing.T) {
	// 90 degrees around Z: (cos45, 0, 0, sin45).
	const s = 0.70710678
	qz := Quat{W: s, Z: s}

	tests := []struct {
		name string
		q    Quat
		v    Vector3
		want Vector3
	}{
		{"z90_x_to_y", qz, V3(1, 0, 0), V3(0, 1, 0)},
		{"z90_y_to_negx", qz, V3(0, 1, 0), V3(-1, 0, 0)},
		{"z90_z_fixed", qz, V3(0, 0, 1), V3(0, 0, 1)},
		{"x180_y_to_negy", Quat{W: 0, X: 1}, V3(0, 1, 0), V3(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.RotateVec(tt.v)
			if !got.Approx(tt.want, 1e-5) {
				t.Errorf("%+v.RotateVec(%v) = %v, want %v", tt.q, tt.v, got, tt.want)
			}
		})
	}
}

func TestQuat_RotateVecPreservesMagnitude(t *testing.T) {
	quats := []Quat{
		QuatIdentity(),
		(Quat{W: 1, X: 2, Y: -0.5, Z: 0.25}).Normal(),
		(Quat{W: -0.3, X: 0.1, Y: 0.9, Z: 0.4}).Normal(),
		(Quat{W: 0, X: 0, Y: 1, Z: 0}).Normal(),
	}
	vecs := []Vector3{
		V3(1, 0, 0),
		V3(3, 4, 0),
		V3(-2.5, 7, 0.125),
		V3(1e3, -2e3, 3e3),
	}

	for _, q := range quats {
		for _, v := range vecs {
			got := q.RotateVec(v).Length()
			want := v.Length()
			// Relative tolerance: large vectors accumulate more float32 error.
			tol := 1e-4 * Max(want, 1)
			if Abs(got-want) > tol {
				t.Errorf("RotateVec by %+v changed |%v| from %v to %v", q, v, want, got)
			}
		}
	}
}

func TestQuat_Normal(t *testing.T) {
	q := (Quat{W: 2, X: 0, Y: 0, Z: 0}).Normal()
	if q != QuatIdentity() {
		t.Errorf("Normal() = %+v, want identity", q)
	}
	if got := (Quat{}).Normal(); got != QuatIdentity() {
		t.Errorf("zero quat Normal() = %+v, want identity", got)
	}
}

func TestQuat_Matrix3MatchesRotateVec(t *testing.T) {
	q := (Quat{W: 0.8, X: 0.1, Y: -0.5, Z: 0.3}).Normal()
	m := q.Matrix3()
	for _, v := range []Vector3{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), V3(1, 2, 3)} {
		a := q.RotateVec(v)
		b := m.MulVector3(v)
		if !a.Approx(b, 1e-5) {
			t.Errorf("Matrix3()*%v = %v, RotateVec = %v", v, b, a)
		}
	}
}
