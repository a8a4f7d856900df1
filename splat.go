package splat

import "github.com/gogpu/splat/math32"

// Splat is the atomic rendering primitive: an anisotropic 3D Gaussian
// described by its center, base color, opacity, per-axis standard
// deviation, and orientation.
//
// Invariants are the producer's responsibility and are not checked
// here: Rotation must be unit-norm, Scale components positive, Color
// and Opacity in [0, 1]. A violated invariant renders wrong, it does
// not fail.
type Splat struct {
	// Position is the Gaussian center in world space.
	Position math32.Vector3

	// Color is the base color in linear RGB, each channel in [0, 1].
	// Splats carrying spherical-harmonics coefficients use Color only
	// as the fallback for the isotropic shading path.
	Color math32.Vector3

	// Opacity is the peak alpha at the Gaussian center, in [0, 1].
	Opacity float32

	// Scale is the per-axis standard deviation, each component > 0.
	Scale math32.Vector3

	// Rotation orients the Gaussian's principal axes, (w, x, y, z).
	Rotation math32.Quat
}
