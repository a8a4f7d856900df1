// Package splat provides a point-based renderer for 3D Gaussian
// Splatting primitives.
//
// # Overview
//
// splat consumes a cloud of Gaussian records (position, color, opacity,
// per-axis scale, orientation) plus a per-frame camera transform and
// composites an RGBA image using a cheap isotropic screen-space
// approximation of each Gaussian. It is designed to integrate with the
// GoGPU ecosystem: the software renderer is pure Go, and an offscreen
// GPU path is available via gogpu/wgpu.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/splat"
//	    "github.com/gogpu/splat/render"
//	)
//
//	cloud := splat.NewCloud()
//	cloud.Add(splat.Splat{
//	    Position: math32.V3(0, 0, 0),
//	    Color:    math32.V3(1, 0, 0),
//	    Opacity:  1,
//	    Scale:    math32.V3(1, 1, 1),
//	    Rotation: math32.QuatIdentity(),
//	})
//
//	cam := splat.NewCamera(math32.V3(0, 0, 0), 5)
//	target := render.NewPixmapTarget(512, 512)
//	r := render.NewSoftwareRenderer()
//	defer r.Close()
//
//	frame := render.NewFrame(cam).Add(cloud, shading.ModeIsotropic)
//	if err := r.Render(target, frame); err != nil {
//	    log.Fatal(err)
//	}
//	_ = target.SavePNG("output.png")
//
// # Architecture
//
// The library is organized into:
//   - Public API: Splat, Cloud, Camera, Profile (this package)
//   - math32: float32 vector/quaternion/matrix math
//   - shading: vertex and fragment stages, isotropic and anisotropic strategies
//   - render: targets, software renderer, GPU renderer wrapper
//   - internal: parallel (band workers), gpu (wgpu pipeline)
//
// # Compositing model
//
// Splats are composited in submission order with source-over alpha
// blending. There is no depth sorting and no order-independent
// transparency: overlapping translucent splats produce different
// results under different submission orders. That trade-off is
// deliberate; producers that care should sort before submitting.
//
// # Input contract
//
// The renderer does not validate numerical well-formedness of its
// inputs. Quaternions are assumed unit-norm, scales positive, colors
// and opacity in [0, 1]. Violations produce visual artifacts (NaN
// propagation, flicker), never a crash or an error.
package splat

// Version is the current version of the library.
const Version = "0.1.0-alpha.1"
