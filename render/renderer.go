// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// ErrNoPixels is returned when a renderer needs CPU pixel access and
// the target does not provide it.
var ErrNoPixels = errors.New("render: target has no CPU pixel access")

// ErrEmptyTarget is returned for targets with zero width or height.
var ErrEmptyTarget = errors.New("render: target has zero size")

// Renderer turns a frame of splat batches into pixels on a target.
//
// Renderers are stateless between Render calls, so one renderer can
// serve targets of different sizes across frames. They are NOT safe
// for concurrent Render calls; use one per goroutine or serialize
// externally.
type Renderer interface {
	// Render composites every batch of the frame onto the target, in
	// submission order, over the frame's background color. The frame
	// is not modified and can be rendered again to another target.
	Render(target RenderTarget, frame *Frame) error

	// Close releases renderer resources (worker pools, GPU devices).
	// The renderer must not be used after Close.
	Close() error
}

// Capabilities describes what a renderer implementation supports.
type Capabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// Anisotropic indicates support for covariance-projection shading.
	Anisotropic bool

	// SphericalHarmonics indicates support for view-dependent color
	// from SH coefficients.
	SphericalHarmonics bool

	// MaxPointSize is the largest screen-space point size the backend
	// can rasterize (0 = unlimited).
	MaxPointSize float32
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() Capabilities
}
