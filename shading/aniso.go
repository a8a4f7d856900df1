package shading

import (
	"github.com/gogpu/splat"
	"github.com/gogpu/splat/math32"
)

// Covariance3 builds the 3D covariance of a splat from its diagonal
// scale and rotation: sigma = R * S * S^T * R^T. The result is
// symmetric positive semi-definite for any unit rotation and positive
// scale.
func Covariance3(scale math32.Vector3, rot math32.Quat) math32.Matrix3 {
	r := rot.Matrix3()
	rs := r.Mul(math32.Matrix3Diag(scale))
	return rs.Mul(rs.Transposed())
}

// Cov2 is a symmetric 2x2 screen-space covariance [[A, B], [B, C]],
// the projection of a splat's 3D covariance through the camera.
type Cov2 struct {
	A, B, C float32
}

// ProjectCovariance projects a world-space covariance into screen
// space using the local linearization (Jacobian) of the perspective
// projection at the splat's camera-space depth: sigma' = J*W*sigma*W^T*J^T,
// where W is the rotational part of the view matrix and J the EWA
// Jacobian scaled by the focal lengths in pixels.
//
// The second return value is false when the splat sits at or behind
// the camera plane, where the linearization is meaningless and the
// splat should be culled.
func ProjectCovariance(cov math32.Matrix3, worldPos math32.Vector3, u *Uniforms) (Cov2, bool) {
	t4 := u.View.MulVector4(math32.V4(worldPos.X, worldPos.Y, worldPos.Z, 1))

	// Flip into a +Z-forward frame so the standard Jacobian applies.
	tz := -t4.Z
	if tz <= 0 {
		return Cov2{}, false
	}
	tx, ty := t4.X, t4.Y

	w := u.View.Upper3()
	// Negating the third row of W is the same reflection applied to t.
	w[6], w[7], w[8] = -w[6], -w[7], -w[8]

	// J is the 2x3 Jacobian of (fx*x/z, -fy*y/z) at (tx, ty, tz). The
	// second row is negated because the fragment stage evaluates the
	// conic on pixel offsets, where y grows downward while camera-space
	// y grows upward.
	j := math32.Matrix3{
		u.Focal.X / tz, 0, -u.Focal.X * tx / (tz * tz),
		0, -u.Focal.Y / tz, u.Focal.Y * ty / (tz * tz),
		0, 0, 0,
	}

	jw := j.Mul(w)
	s := jw.Mul(cov).Mul(jw.Transposed())
	return Cov2{A: s[0], B: s[1], C: s[4]}, true
}

// Radius returns a conservative pixel radius covering the projected
// Gaussian: three standard deviations along its major axis.
func (c Cov2) Radius() float32 {
	mid := (c.A + c.C) / 2
	// Larger eigenvalue of the symmetric 2x2 matrix. The discriminant
	// is non-negative up to float error; clamp before the sqrt.
	disc := math32.Max(mid*mid-(c.A*c.C-c.B*c.B), 0)
	lambda := mid + math32.Sqrt(disc)
	if lambda <= 0 {
		return 0
	}
	return 3 * math32.Sqrt(lambda)
}

// Inverted returns the inverse covariance (the conic) used for
// fragment evaluation. ok is false when the matrix is degenerate,
// which discards the whole splat.
func (c Cov2) Inverted() (Cov2, bool) {
	det := c.A*c.C - c.B*c.B
	if det <= 1e-12 {
		return Cov2{}, false
	}
	inv := 1 / det
	return Cov2{A: c.C * inv, B: -c.B * inv, C: c.A * inv}, true
}

// ShadeAnisotropic runs the fragment stage for one covered pixel of an
// anisotropic splat. d is the pixel offset from the projected center
// in pixels, conic the inverted screen-space covariance, and color the
// already-evaluated (possibly view-dependent) splat color.
//
// The falloff is exp(-0.5 * d^T * conic * d); the same Epsilon discard
// law applies as in the isotropic path, so the two strategies are
// interchangeable per batch.
func ShadeAnisotropic(d math32.Vector2, conic Cov2, color math32.Vector3, opacity float32, p *splat.Profile) (Fragment, bool) {
	power := -0.5 * (conic.A*d.X*d.X + 2*conic.B*d.X*d.Y + conic.C*d.Y*d.Y)
	if power > 0 {
		// Numerical noise; the true quadratic form is non-positive.
		power = 0
	}
	alpha := opacity * math32.Exp(power)
	if alpha < p.Epsilon {
		return Fragment{}, false
	}
	return Fragment{Color: color, Alpha: alpha}, true
}
