package splat

import (
	"errors"
	"sync/atomic"

	"github.com/gogpu/splat/math32"
)

// Cloud is a structure-of-arrays container for splats, matching the
// layout producers emit: one slice per attribute, all the same length.
//
// A Cloud is immutable for the duration of a draw call. The renderer
// holds a read-only view; producers that update splat data mid-session
// must publish a fresh Cloud through a [Handle] rather than mutate one
// a renderer may be reading.
type Cloud struct {
	Positions []math32.Vector3
	Scales    []math32.Vector3
	Rotations []math32.Quat
	Colors    []math32.Vector3
	Opacities []float32

	// SH optionally carries spherical-harmonics coefficients for
	// view-dependent color, one coefficient slice per splat. Length
	// must be 0 (absent) or match the other slices. Each inner slice
	// holds 3*n floats (RGB per basis function) for SH degrees 0-2.
	SH [][]float32
}

// NewCloud creates an empty cloud.
func NewCloud() *Cloud {
	return &Cloud{}
}

// NewCloudCapacity creates an empty cloud with preallocated capacity.
func NewCloudCapacity(capacity int) *Cloud {
	return &Cloud{
		Positions: make([]math32.Vector3, 0, capacity),
		Scales:    make([]math32.Vector3, 0, capacity),
		Rotations: make([]math32.Quat, 0, capacity),
		Colors:    make([]math32.Vector3, 0, capacity),
		Opacities: make([]float32, 0, capacity),
	}
}

// Len returns the number of splats in the cloud.
func (c *Cloud) Len() int {
	return len(c.Positions)
}

// Add appends a single splat.
func (c *Cloud) Add(s Splat) {
	c.Positions = append(c.Positions, s.Position)
	c.Scales = append(c.Scales, s.Scale)
	c.Rotations = append(c.Rotations, s.Rotation)
	c.Colors = append(c.Colors, s.Color)
	c.Opacities = append(c.Opacities, s.Opacity)
}

// At returns the splat at index i as a value. It panics if i is out of
// range, consistent with slice indexing.
func (c *Cloud) At(i int) Splat {
	return Splat{
		Position: c.Positions[i],
		Scale:    c.Scales[i],
		Rotation: c.Rotations[i],
		Color:    c.Colors[i],
		Opacity:  c.Opacities[i],
	}
}

// Bounds returns the axis-aligned bounding box of all splat centers.
// It returns zero vectors for an empty cloud.
func (c *Cloud) Bounds() (min, max math32.Vector3) {
	if c.Len() == 0 {
		return math32.Vector3{}, math32.Vector3{}
	}
	min, max = c.Positions[0], c.Positions[0]
	for _, p := range c.Positions[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// ErrInconsistentCloud reports attribute slices of mismatched length.
var ErrInconsistentCloud = errors.New("splat: inconsistent attribute slice lengths")

// Validate checks that all attribute slices have consistent length.
// It does not check numerical well-formedness (unit quaternions,
// positive scales); those are producer preconditions.
func (c *Cloud) Validate() error {
	n := len(c.Positions)
	if len(c.Scales) != n || len(c.Rotations) != n ||
		len(c.Colors) != n || len(c.Opacities) != n {
		return ErrInconsistentCloud
	}
	if len(c.SH) != 0 && len(c.SH) != n {
		return ErrInconsistentCloud
	}
	return nil
}

// Handle is an atomically swappable published cloud. Producers publish
// a new version with Swap at a draw-call boundary; renderers Load the
// current version once per draw and never observe a mix of old and new
// attribute data.
//
// Handle is safe for concurrent use.
type Handle struct {
	ptr atomic.Pointer[Cloud]
}

// NewHandle creates a handle publishing the given cloud (may be nil).
func NewHandle(c *Cloud) *Handle {
	h := &Handle{}
	h.ptr.Store(c)
	return h
}

// Load returns the currently published cloud, or nil.
func (h *Handle) Load() *Cloud {
	return h.ptr.Load()
}

// Swap publishes a new cloud version and returns the previous one.
func (h *Handle) Swap(c *Cloud) *Cloud {
	return h.ptr.Swap(c)
}
