// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render executes splat frames against render targets.
//
// The package defines the two abstractions the rest of the module
// plugs into:
//
//   - RenderTarget: where pixels go (PixmapTarget wraps *image.RGBA
//     for CPU output)
//   - Renderer: what turns a [Frame] into pixels (SoftwareRenderer on
//     the CPU, GPURenderer over wgpu hal)
//
// A Frame is the per-draw input: an orbit camera plus one or more
// batches, each batch pairing a splat cloud with a shading mode.
// Batches composite in submission order, and splats within a batch
// composite in cloud order. There is no depth sorting; back-to-front
// output is the producer's responsibility.
//
//	target := render.NewPixmapTarget(800, 600)
//	r := render.NewSoftwareRenderer()
//	defer r.Close()
//
//	frame := render.NewFrame(camera)
//	frame.Add(cloud, shading.ModeIsotropic)
//	if err := r.Render(target, frame); err != nil {
//	    log.Fatal(err)
//	}
//	_ = target.SavePNG("out.png")
//
// Renderers are not safe for concurrent Render calls. Use one renderer
// per goroutine or serialize externally.
package render
