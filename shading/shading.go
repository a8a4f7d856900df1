// Package shading implements the per-splat vertex stage and per-pixel
// fragment stage of the Gaussian splat renderer, as pure functions over
// immutable inputs.
//
// Every function here is stateless and safe to invoke from any number
// of goroutines concurrently: one invocation per splat for the vertex
// stage, one per covered pixel for the fragment stage, with no shared
// mutable state and no ordering guarantees between invocations.
// Compositing order is the renderer's concern, not this package's.
//
// Two shading strategies share the same external contract (clip
// position in, color + alpha out) and are selected per draw batch via
// [Mode]: the cheap isotropic screen-space approximation, and the
// anisotropic covariance-projection path with optional
// spherical-harmonics color.
package shading

import (
	"github.com/gogpu/splat/math32"
)

// Mode selects the shading strategy for a draw batch. The renderer
// binds the corresponding fragment evaluation once per batch; the hot
// path never switches on the mode per fragment.
type Mode uint8

const (
	// ModeIsotropic sizes each splat from camera distance and mean
	// scale and applies a circular Gaussian falloff. Cheap, and
	// systematically wrong for highly anisotropic splats viewed
	// edge-on; a known approximation, not a bug.
	ModeIsotropic Mode = iota

	// ModeAnisotropic projects the full 3D covariance to a screen-space
	// ellipse and shades with spherical harmonics when the splat
	// carries coefficients.
	ModeAnisotropic
)

// String returns the mode name for logs and flags.
func (m Mode) String() string {
	switch m {
	case ModeIsotropic:
		return "isotropic"
	case ModeAnisotropic:
		return "anisotropic"
	default:
		return "unknown"
	}
}

// Uniforms is the camera state shared by every invocation within one
// frame: single-writer (the host, once per frame), many concurrent
// readers. No invocation mutates it.
type Uniforms struct {
	// ViewProj transforms world-space positions to clip space.
	ViewProj math32.Matrix4

	// View transforms world space to camera space. Only the
	// anisotropic strategy reads it.
	View math32.Matrix4

	// CameraPos is the camera's world-space position, used by the size
	// model and by view-dependent shading.
	CameraPos math32.Vector3

	// Focal is the projection's focal length in pixels per axis. Only
	// the anisotropic strategy reads it.
	Focal math32.Vector2
}

// Fragment is the output of a fragment-stage invocation: a linear RGB
// color and the composited alpha for one covered pixel.
type Fragment struct {
	Color math32.Vector3
	Alpha float32
}
