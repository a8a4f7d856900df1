// Package math32 provides float32 vector, quaternion, and matrix math
// for 3D splat rendering. It wraps github.com/chewxy/math32 for the
// scalar functions, which has optimized float32 implementations.
package math32

import "github.com/chewxy/math32"

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 { return math32.Sqrt(x) }

// Exp returns e**x.
func Exp(x float32) float32 { return math32.Exp(x) }

// Abs returns the absolute value of x.
func Abs(x float32) float32 { return math32.Abs(x) }

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 { return math32.Sin(x) }

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 { return math32.Cos(x) }

// Tan returns the tangent of the radian argument x.
func Tan(x float32) float32 { return math32.Tan(x) }

// Max returns the larger of x or y.
func Max(x, y float32) float32 { return math32.Max(x, y) }

// Min returns the smaller of x or y.
func Min(x, y float32) float32 { return math32.Min(x, y) }

// IsNaN reports whether x is a NaN.
func IsNaN(x float32) bool { return math32.IsNaN(x) }

// Inf returns positive infinity if sign >= 0, negative infinity otherwise.
func Inf(sign int) float32 { return math32.Inf(sign) }

// Clamp limits x to the range [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 { return deg * (math32.Pi / 180) }
