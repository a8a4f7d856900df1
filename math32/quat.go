package math32

// Quat is a quaternion in (w, x, y, z) order, the convention used by
// splat producers. Rotation methods assume q is unit-norm; callers own
// that precondition.
type Quat struct {
	W, X, Y, Z float32
}

// QuatIdentity returns the identity rotation (1, 0, 0, 0).
func QuatIdentity() Quat { return Quat{W: 1} }

// RotateVec rotates v by the unit quaternion q using the standard
// two-cross-product expansion:
//
//	uv  = cross(q.xyz, v)
//	uuv = cross(q.xyz, uv)
//	v'  = v + 2*(uv*q.w + uuv)
//
// For unit q this preserves the magnitude of v.
func (q Quat) RotateVec(v Vector3) Vector3 {
	qv := Vector3{X: q.X, Y: q.Y, Z: q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.MulScalar(q.W).Add(uuv).MulScalar(2))
}

// Normal returns the normalized quaternion.
// Returns the identity if q has zero length.
func (q Quat) Normal() Quat {
	l := Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

// Matrix3 returns the rotation matrix equivalent to the unit quaternion q.
func (q Quat) Matrix3() Matrix3 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z
	return Matrix3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}
