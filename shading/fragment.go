package shading

import (
	"github.com/gogpu/splat"
	"github.com/gogpu/splat/math32"
)

// Gaussian evaluates the isotropic falloff exp(-distSq / (2*sigma^2))
// for a squared point-local distance. At the point center (distSq 0)
// it is exactly 1; with the default sigma 0.5 it decays to about
// 0.1353 at the point edge (|coord| = 1).
func Gaussian(distSq, sigma float32) float32 {
	return math32.Exp(-distSq / (2 * sigma * sigma))
}

// ShadeIsotropic runs the fragment stage for one covered pixel of an
// isotropic splat. coord is the point-local coordinate in [-1, 1]^2,
// centered on the splat's projected center. The software rasterizer
// derives it from the pixel center and the projected splat center, so
// no rasterizer-specific point-sprite convention is assumed.
//
// The returned bool is false when the composited opacity falls below
// the profile's Epsilon: the fragment is discarded and must produce no
// color or depth write. Discarding is a rendering decision, not an
// error.
func ShadeIsotropic(coord math32.Vector2, color math32.Vector3, opacity float32, p *splat.Profile) (Fragment, bool) {
	alpha := opacity * Gaussian(coord.LengthSq(), p.Sigma)
	if alpha < p.Epsilon {
		return Fragment{}, false
	}
	return Fragment{Color: color, Alpha: alpha}, true
}
