package math32

// Vector2 is a 2D float32 vector.
type Vector2 struct {
	X, Y float32
}

// V2 is a convenience constructor for Vector2.
func V2(x, y float32) Vector2 { return Vector2{X: x, Y: y} }

// Dot returns the dot product of two vectors.
func (v Vector2) Dot(w Vector2) float32 { return v.X*w.X + v.Y*w.Y }

// LengthSq returns the squared length of the vector.
func (v Vector2) LengthSq() float32 { return v.X*v.X + v.Y*v.Y }

// Length returns the length (magnitude) of the vector.
func (v Vector2) Length() float32 { return Sqrt(v.LengthSq()) }

// Vector3 is a 3D float32 vector.
type Vector3 struct {
	X, Y, Z float32
}

// V3 is a convenience constructor for Vector3.
func V3(x, y, z float32) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// Add returns the sum of two vectors.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// MulScalar returns the vector scaled by s.
func (v Vector3) MulScalar(s float32) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Negated returns the negation of the vector.
func (v Vector3) Negated() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors.
func (v Vector3) Dot(w Vector3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of two vectors.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// LengthSq returns the squared length of the vector.
// This is faster than Length when only comparing magnitudes.
func (v Vector3) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the length (magnitude) of the vector.
func (v Vector3) Length() float32 {
	return Sqrt(v.LengthSq())
}

// Normal returns a unit vector in the same direction.
// Returns the zero vector if v has zero length.
func (v Vector3) Normal() Vector3 {
	l := v.Length()
	if l == 0 {
		return Vector3{}
	}
	return v.MulScalar(1 / l)
}

// DistanceTo returns the euclidean distance between v and w.
func (v Vector3) DistanceTo(w Vector3) float32 {
	return v.Sub(w).Length()
}

// Lerp performs linear interpolation between two vectors.
func (v Vector3) Lerp(w Vector3, t float32) Vector3 {
	return Vector3{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
		Z: v.Z + (w.Z-v.Z)*t,
	}
}

// Min returns the componentwise minimum of v and w.
func (v Vector3) Min(w Vector3) Vector3 {
	return Vector3{X: Min(v.X, w.X), Y: Min(v.Y, w.Y), Z: Min(v.Z, w.Z)}
}

// Max returns the componentwise maximum of v and w.
func (v Vector3) Max(w Vector3) Vector3 {
	return Vector3{X: Max(v.X, w.X), Y: Max(v.Y, w.Y), Z: Max(v.Z, w.Z)}
}

// Approx reports whether v and w are equal within tolerance eps per component.
func (v Vector3) Approx(w Vector3, eps float32) bool {
	return Abs(v.X-w.X) <= eps && Abs(v.Y-w.Y) <= eps && Abs(v.Z-w.Z) <= eps
}

// Vector4 is a 4D float32 vector, typically a homogeneous position.
type Vector4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience constructor for Vector4.
func V4(x, y, z, w float32) Vector4 { return Vector4{X: x, Y: y, Z: z, W: w} }

// Vector3 returns the X, Y, Z components as a Vector3, dropping W.
func (v Vector4) Vector3() Vector3 { return Vector3{X: v.X, Y: v.Y, Z: v.Z} }
