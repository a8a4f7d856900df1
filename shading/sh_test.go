package shading

import (
	"testing"

	"github.com/gogpu/splat/math32"
)

func TestEvalSH_Degree0(t *testing.T) {
	// Degree 0 is view-independent: 0.5 + C0*coeff.
	coeffs := []float32{1, 0.5, -0.5}
	for _, dir := range []math32.Vector3{
		math32.V3(0, 0, 1),
		math32.V3(1, 0, 0).Normal(),
		math32.V3(1, 1, 1).Normal(),
	} {
		got := EvalSH(coeffs, dir)
		want := math32.V3(
			0.5+shC0*1,
			0.5+shC0*0.5,
			math32.Clamp(0.5+shC0*-0.5, 0, 1),
		)
		if !got.Approx(want, 1e-5) {
			t.Errorf("EvalSH(deg0, %v) = %v, want %v", dir, got, want)
		}
	}
}

func TestEvalSH_EmptyCoeffs(t *testing.T) {
	got := EvalSH(nil, math32.V3(0, 0, 1))
	if !got.Approx(math32.V3(0.5, 0.5, 0.5), 1e-6) {
		t.Errorf("EvalSH(nil) = %v, want mid gray", got)
	}
}

func TestEvalSH_Degree1ViewDependent(t *testing.T) {
	// A degree-1 coefficient makes the color vary with direction.
	coeffs := make([]float32, 12)
	coeffs[0] = 0.2           // base red
	coeffs[2*3] = 1           // z band, red channel
	front := EvalSH(coeffs, math32.V3(0, 0, 1))
	back := EvalSH(coeffs, math32.V3(0, 0, -1))
	if math32.Abs(front.X-back.X) < 1e-3 {
		t.Errorf("degree-1 SH not view dependent: front %v back %v", front.X, back.X)
	}
	// Green and blue carry no band-1 coefficients, so they match.
	if math32.Abs(front.Y-back.Y) > 1e-6 || math32.Abs(front.Z-back.Z) > 1e-6 {
		t.Error("channels without coefficients changed with view")
	}
}

func TestEvalSH_ClampsToUnit(t *testing.T) {
	coeffs := []float32{100, -100, 0}
	got := EvalSH(coeffs, math32.V3(0, 0, 1))
	if got.X != 1 || got.Y != 0 {
		t.Errorf("EvalSH clamping failed: %v", got)
	}
}

func TestEvalSH_Degree2(t *testing.T) {
	coeffs := make([]float32, 27)
	coeffs[0] = 0.3
	coeffs[6*3] = 0.8 // (2z^2 - x^2 - y^2) band, red channel

	up := EvalSH(coeffs, math32.V3(0, 0, 1))
	side := EvalSH(coeffs, math32.V3(1, 0, 0))
	if math32.Abs(up.X-side.X) < 1e-3 {
		t.Error("degree-2 SH not view dependent")
	}
}
