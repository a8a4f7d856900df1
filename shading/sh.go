package shading

import "github.com/gogpu/splat/math32"

// Real spherical-harmonics basis constants for degrees 0-2, in the
// ordering used by Gaussian Splatting tooling.
const (
	shC0 = 0.28209479177387814

	shC1 = 0.4886025119029199

	shC20 = 1.0925484305920792
	shC21 = -1.0925484305920792
	shC22 = 0.31539156525252005
	shC23 = -1.0925484305920792
	shC24 = 0.5462742152960396
)

// EvalSH evaluates a splat's spherical-harmonics color for a view
// direction. coeffs holds 3 floats (RGB) per basis function: length 3
// evaluates degree 0, length 12 degrees 0-1, length 27 degrees 0-2.
// Longer slices are truncated to degree 2; other lengths evaluate the
// largest complete degree they cover.
//
// dir must be the normalized direction from the camera to the splat.
// The result includes the conventional +0.5 offset and is clamped to
// [0, 1] per channel.
func EvalSH(coeffs []float32, dir math32.Vector3) math32.Vector3 {
	if len(coeffs) < 3 {
		return math32.V3(0.5, 0.5, 0.5)
	}

	band := func(i int) math32.Vector3 {
		return math32.V3(coeffs[i*3], coeffs[i*3+1], coeffs[i*3+2])
	}

	c := band(0).MulScalar(shC0)

	x, y, z := dir.X, dir.Y, dir.Z
	if len(coeffs) >= 12 {
		c = c.Add(band(1).MulScalar(-shC1 * y))
		c = c.Add(band(2).MulScalar(shC1 * z))
		c = c.Add(band(3).MulScalar(-shC1 * x))
	}
	if len(coeffs) >= 27 {
		xx, yy, zz := x*x, y*y, z*z
		c = c.Add(band(4).MulScalar(shC20 * x * y))
		c = c.Add(band(5).MulScalar(shC21 * y * z))
		c = c.Add(band(6).MulScalar(shC22 * (2*zz - xx - yy)))
		c = c.Add(band(7).MulScalar(shC23 * x * z))
		c = c.Add(band(8).MulScalar(shC24 * (xx - yy)))
	}

	c = c.Add(math32.V3(0.5, 0.5, 0.5))
	return math32.V3(
		math32.Clamp(c.X, 0, 1),
		math32.Clamp(c.Y, 0, 1),
		math32.Clamp(c.Z, 0, 1),
	)
}
