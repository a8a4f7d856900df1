package math32

// Matrix3 is a row-major 3x3 matrix. Element (row, col) is m[row*3+col].
// It is used for rotation and covariance math on the CPU shading path.
type Matrix3 [9]float32

// Matrix3Identity returns the 3x3 identity matrix.
func Matrix3Identity() Matrix3 {
	return Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Matrix3Diag returns a diagonal matrix with d on the diagonal.
func Matrix3Diag(d Vector3) Matrix3 {
	return Matrix3{d.X, 0, 0, 0, d.Y, 0, 0, 0, d.Z}
}

// Mul returns the matrix product m * n.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	var out Matrix3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = m[r*3+0]*n[0*3+c] + m[r*3+1]*n[1*3+c] + m[r*3+2]*n[2*3+c]
		}
	}
	return out
}

// MulVector3 returns m * v.
func (m Matrix3) MulVector3(v Vector3) Vector3 {
	return Vector3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Transposed returns the transpose of m.
func (m Matrix3) Transposed() Matrix3 {
	return Matrix3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Matrix4 is a column-major 4x4 matrix, matching the wgpu uniform
// convention and the producer-side math libraries. Element (row, col)
// is m[col*4+row].
type Matrix4 [16]float32

// Matrix4Identity returns the 4x4 identity matrix.
func Matrix4Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// MulMatrix4 returns the matrix product m * n.
func (m Matrix4) MulMatrix4(n Matrix4) Matrix4 {
	var out Matrix4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// MulVector4 returns m * v.
func (m Matrix4) MulVector4(v Vector4) Vector4 {
	return Vector4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Upper3 returns the upper-left 3x3 block of m as a row-major Matrix3.
func (m Matrix4) Upper3() Matrix3 {
	return Matrix3{
		m[0], m[4], m[8],
		m[1], m[5], m[9],
		m[2], m[6], m[10],
	}
}

// LookAt returns a right-handed view matrix positioned at eye, looking
// at center, with the given up direction.
func LookAt(eye, center, up Vector3) Matrix4 {
	f := center.Sub(eye).Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	return Matrix4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Perspective returns a right-handed perspective projection with a
// [0, 1] clip-space depth range (the wgpu convention). fovY is the
// vertical field of view in radians.
func Perspective(fovY, aspect, near, far float32) Matrix4 {
	f := 1 / Tan(fovY/2)
	r := far / (near - far)
	return Matrix4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, r, -1,
		0, 0, r * near, 0,
	}
}
