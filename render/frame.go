// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
	"sync/atomic"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/math32"
	"github.com/gogpu/splat/shading"
)

// Batch pairs one splat cloud with the shading mode used to draw it.
// The cloud must not be mutated while a renderer may be reading it;
// producers publish updates through a [splat.Handle] instead.
type Batch struct {
	Cloud *splat.Cloud
	Mode  shading.Mode
}

// Frame is the complete input for one Render call: the camera, the
// background, and the batches to composite. Batches draw in the order
// they were added, and splats within a batch draw in cloud order.
type Frame struct {
	Camera     *splat.Camera
	Background color.RGBA
	Batches    []Batch
}

// NewFrame creates a frame with a transparent black background.
func NewFrame(camera *splat.Camera) *Frame {
	return &Frame{Camera: camera}
}

// Add appends a batch drawing cloud with the given mode. It returns
// the frame for chaining.
func (f *Frame) Add(cloud *splat.Cloud, mode shading.Mode) *Frame {
	f.Batches = append(f.Batches, Batch{Cloud: cloud, Mode: mode})
	return f
}

// Splats returns the total splat count across all batches.
func (f *Frame) Splats() int {
	n := 0
	for _, b := range f.Batches {
		if b.Cloud != nil {
			n += b.Cloud.Len()
		}
	}
	return n
}

// UniformsFor derives the per-frame shading uniforms for a target of
// the given pixel dimensions. The projection aspect ratio follows the
// target, not the camera's stored Aspect, so one camera serves targets
// of any shape without manual bookkeeping.
func UniformsFor(cam *splat.Camera, width, height int) shading.Uniforms {
	aspect := float32(width) / float32(height)
	proj := math32.Perspective(math32.DegToRad(cam.FOV), aspect, cam.Near, cam.Far)
	view := cam.ViewMatrix()
	return shading.Uniforms{
		ViewProj:  proj.MulMatrix4(view),
		View:      view,
		CameraPos: cam.Position,
		// proj[0] = 1/(aspect*tan(fov/2)), proj[5] = 1/tan(fov/2);
		// scaled by half the viewport they give focal length in pixels.
		Focal: math32.V2(proj[0]*float32(width)/2, proj[5]*float32(height)/2),
	}
}

// UniformRing is a two-slot ring of uniform blocks. A frame in flight
// may still be reading slot N while the host fills slot N+1, so the
// writer must never reuse a slot until the previous submission using
// it has completed. Two slots are enough for the one-frame-deep
// pipelines the renderers here run.
type UniformRing struct {
	slots [2]shading.Uniforms
	next  atomic.Uint32
}

// Next fills the next slot with u and returns a pointer to it. The
// returned pointer stays valid until the slot is reused, one call
// later.
func (r *UniformRing) Next(u shading.Uniforms) *shading.Uniforms {
	i := (r.next.Add(1) - 1) % 2
	r.slots[i] = u
	return &r.slots[i]
}
