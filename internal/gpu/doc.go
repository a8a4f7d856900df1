// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu holds the wgpu hal render pipeline for splat quads.
//
// The host shapes each splat into a SplatInstance (screen-space center,
// half extents, conic coefficients, color); this package expands
// instances into quad vertices, rasterizes them with a Gaussian
// fragment shader, and reads the composited image back into CPU
// memory. It knows nothing about cameras, clouds, or shading modes.
package gpu
