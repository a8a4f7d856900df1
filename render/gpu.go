// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/splat"
	"github.com/gogpu/splat/internal/gpu"
	"github.com/gogpu/splat/shading"
)

// GPURenderer rasterizes splat frames on the GPU through wgpu hal.
//
// The vertex stage still runs on the CPU (projection, size model,
// covariance projection, SH color); the GPU expands quads and
// evaluates the Gaussian falloff per fragment. Quads draw in vertex
// order, so compositing matches the software renderer's submission
// order.
type GPURenderer struct {
	profile  splat.Profile
	ctx      *gpu.Context
	pipeline *gpu.SplatPipeline
	uniforms UniformRing

	instances []gpu.SplatInstance
}

// NewGPURenderer acquires a GPU device and creates the splat pipeline.
// It fails when no usable adapter exists; callers typically fall back
// to NewSoftwareRenderer.
func NewGPURenderer(opts ...Option) (*GPURenderer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx, err := gpu.OpenContext()
	if err != nil {
		return nil, fmt.Errorf("open gpu context: %w", err)
	}
	splat.Logger().Info("gpu renderer initialized", "adapter", ctx.AdapterName())
	return &GPURenderer{
		profile:  cfg.profile,
		ctx:      ctx,
		pipeline: gpu.NewSplatPipeline(ctx.Device, ctx.Queue),
	}, nil
}

// Capabilities reports what the GPU path supports.
func (r *GPURenderer) Capabilities() Capabilities {
	return Capabilities{
		IsGPU:              true,
		Anisotropic:        true,
		SphericalHarmonics: true,
		MaxPointSize:       0,
	}
}

// Profile returns the shading profile in use.
func (r *GPURenderer) Profile() splat.Profile {
	return r.profile
}

// Close destroys the pipeline and releases the device.
func (r *GPURenderer) Close() error {
	if r.pipeline != nil {
		r.pipeline.Destroy()
		r.pipeline = nil
	}
	if r.ctx != nil {
		r.ctx.Destroy()
		r.ctx = nil
	}
	return nil
}

// Render composites the frame onto the target and reads the result
// back into the target's pixel buffer.
func (r *GPURenderer) Render(target RenderTarget, frame *Frame) error {
	if frame == nil || frame.Camera == nil {
		return ErrNilFrame
	}
	if target == nil || target.Width() <= 0 || target.Height() <= 0 {
		return ErrEmptyTarget
	}
	pix := target.Pixels()
	if pix == nil {
		return ErrNoPixels
	}

	width, height := target.Width(), target.Height()
	// Readback writes tightly packed rows.
	if target.Stride() != width*4 {
		return fmt.Errorf("render: gpu target stride %d, want %d", target.Stride(), width*4)
	}
	u := r.uniforms.Next(UniformsFor(frame.Camera, width, height))

	r.instances = r.instances[:0]
	for _, batch := range frame.Batches {
		r.appendBatch(batch, u, width, height)
	}

	bg := frame.Background
	clear := gputypes.Color{
		R: float64(bg.R) / 255,
		G: float64(bg.G) / 255,
		B: float64(bg.B) / 255,
		A: float64(bg.A) / 255,
	}
	//nolint:gosec // target dimensions fit uint32
	return r.pipeline.Render(uint32(width), uint32(height), clear, r.profile.Epsilon, r.instances, pix)
}

// appendBatch runs the CPU vertex stage for one batch and appends the
// surviving splats as pipeline instances, preserving cloud order.
func (r *GPURenderer) appendBatch(batch Batch, u *shading.Uniforms, width, height int) {
	cloud := batch.Cloud
	if cloud == nil {
		return
	}
	p := &r.profile
	aniso := batch.Mode == shading.ModeAnisotropic

	for i := 0; i < cloud.Len(); i++ {
		s := cloud.At(i)
		v := shading.TransformVertex(s, u, p)
		if v.ClipPos.W <= 0 {
			continue
		}
		invW := 1 / v.ClipPos.W
		inst := gpu.SplatInstance{
			X: (v.ClipPos.X*invW + 1) * 0.5 * float32(width),
			Y: (1 - v.ClipPos.Y*invW) * 0.5 * float32(height),
			R: v.Color.X, G: v.Color.Y, B: v.Color.Z,
			A: v.Opacity,
		}

		if aniso {
			cov := shading.Covariance3(v.Scale, v.Rotation)
			cov2, ok := shading.ProjectCovariance(cov, s.Position, u)
			if !ok {
				continue
			}
			conic, ok := cov2.Inverted()
			if !ok {
				continue
			}
			radius := cov2.Radius()
			inst.ExtX, inst.ExtY = radius, radius
			inst.ConicA, inst.ConicB, inst.ConicC = conic.A, conic.B, conic.C
			if sh := cloud.SH; i < len(sh) && len(sh[i]) > 0 {
				dir := s.Position.Sub(u.CameraPos).Normal()
				col := shading.EvalSH(sh[i], dir)
				inst.R, inst.G, inst.B = col.X, col.Y, col.Z
			}
		} else {
			ext := v.PointSize * 0.5
			inst.ExtX, inst.ExtY = ext, ext
			// The isotropic Gaussian in quad-local [-1,1] coordinates
			// maps to a diagonal conic in pixel units.
			k := 1 / (p.Sigma * p.Sigma * ext * ext)
			inst.ConicA, inst.ConicC = k, k
		}

		if inst.X+inst.ExtX < 0 || inst.X-inst.ExtX >= float32(width) ||
			inst.Y+inst.ExtY < 0 || inst.Y-inst.ExtY >= float32(height) {
			continue
		}
		r.instances = append(r.instances, inst)
	}
}

// Ensure GPURenderer implements CapableRenderer.
var _ CapableRenderer = (*GPURenderer)(nil)
