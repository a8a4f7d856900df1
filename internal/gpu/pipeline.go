// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/splat.wgsl
var splatShaderSource string

// splatVertexStride is the byte stride per vertex in the splat pipeline.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	local    (vec2<f32>) = 8 bytes  (location 1)
//	conic    (vec3<f32>) = 12 bytes (location 2)
//	color    (vec4<f32>) = 16 bytes (location 3)
//
// Total = 44 bytes per vertex.
const splatVertexStride = 44

// splatUniformSize is the byte size of the splat uniform buffer.
// Layout: viewport (vec2<f32>) + epsilon (f32) + padding (f32) = 16 bytes.
const splatUniformSize = 16

// SplatInstance is one splat after the CPU vertex stage, ready for quad
// expansion: screen-space center and half extents in pixels, conic
// coefficients of the 2D Gaussian, and straight (non-premultiplied)
// color. The fragment shader premultiplies.
type SplatInstance struct {
	X, Y       float32
	ExtX, ExtY float32
	ConicA     float32
	ConicB     float32
	ConicC     float32
	R, G, B, A float32
}

// SplatPipeline manages GPU resources for rendering splat quads with a
// Gaussian fragment shader. Quads draw in vertex-buffer order into a
// single-sample RGBA8 color texture; the Gaussian edge is already
// smooth, so no MSAA pass is needed. The texture is copied to a staging
// buffer and read back after each frame.
type SplatPipeline struct {
	device hal.Device
	queue  hal.Queue

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	colorTex  hal.Texture
	colorView hal.TextureView

	width, height uint32
}

// NewSplatPipeline creates a pipeline bound to the given device and
// queue. GPU objects are created lazily on the first Render call.
func NewSplatPipeline(device hal.Device, queue hal.Queue) *SplatPipeline {
	return &SplatPipeline{
		device: device,
		queue:  queue,
	}
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times or on a pipeline with no allocated resources.
func (p *SplatPipeline) Destroy() {
	p.destroyPipeline()
	p.destroyTextures()
}

// Size returns the current texture dimensions.
func (p *SplatPipeline) Size() (uint32, uint32) {
	return p.width, p.height
}

// Render draws the instances over the clear color and reads the result
// back into dst, which must hold w*h*4 bytes of RGBA. Instances
// composite in slice order.
func (p *SplatPipeline) Render(w, h uint32, clear gputypes.Color, epsilon float32, instances []SplatInstance, dst []byte) error {
	if uint64(len(dst)) < uint64(w)*uint64(h)*4 {
		return fmt.Errorf("dst too small: %d bytes for %dx%d", len(dst), w, h)
	}
	if err := p.ensureReady(w, h); err != nil {
		return err
	}

	var vertBuf hal.Buffer
	var vertexCount uint32
	if len(instances) > 0 {
		vertexData := buildSplatVertices(instances)
		vertexCount = uint32(len(instances) * 6) //nolint:gosec // instance count fits uint32
		var err error
		vertBuf, err = p.createAndUploadBuffer("splat_verts", vertexData,
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return fmt.Errorf("create vertex buffer: %w", err)
		}
		defer p.device.DestroyBuffer(vertBuf)
	}

	uniformBuf, err := p.createAndUploadBuffer("splat_uniform", makeSplatUniform(w, h, epsilon),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	defer p.device.DestroyBuffer(uniformBuf)

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "splat_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: splatUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer p.device.DestroyBindGroup(bindGroup)

	return p.encodeAndReadback(w, h, clear, vertBuf, vertexCount, bindGroup, dst)
}

// ensureReady creates textures and the pipeline if needed.
func (p *SplatPipeline) ensureReady(w, h uint32) error {
	if err := p.ensureTextures(w, h); err != nil {
		return fmt.Errorf("ensure textures: %w", err)
	}
	if p.pipeline == nil {
		if err := p.createPipeline(); err != nil {
			return fmt.Errorf("create pipeline: %w", err)
		}
	}
	return nil
}

// ensureTextures creates or recreates the color texture if the
// requested dimensions differ from the current size.
func (p *SplatPipeline) ensureTextures(w, h uint32) error {
	if p.width == w && p.height == h && p.colorTex != nil {
		return nil
	}
	p.destroyTextures()

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	colorTex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "splat_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	p.colorTex = colorTex

	colorView, err := p.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label:         "splat_color_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.destroyTextures()
		return fmt.Errorf("create color view: %w", err)
	}
	p.colorView = colorView

	p.width = w
	p.height = h
	return nil
}

func (p *SplatPipeline) destroyTextures() {
	if p.colorView != nil {
		p.device.DestroyTextureView(p.colorView)
		p.colorView = nil
	}
	if p.colorTex != nil {
		p.device.DestroyTexture(p.colorTex)
		p.colorTex = nil
	}
	p.width = 0
	p.height = 0
}

// createPipeline compiles the splat shader and creates the render
// pipeline with premultiplied alpha blending.
func (p *SplatPipeline) createPipeline() error {
	if splatShaderSource == "" {
		return fmt.Errorf("splat shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "splat_shader",
		Source: hal.ShaderSource{WGSL: splatShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile splat shader: %w", err)
	}
	p.shader = shader

	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "splat_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "splat_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "splat_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    splatVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatRGBA8Unorm,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (p *SplatPipeline) destroyPipeline() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// encodeAndReadback encodes the render pass, copies the color texture
// to a staging buffer, submits, waits, and reads back pixels into dst.
func (p *SplatPipeline) encodeAndReadback(
	w, h uint32, clear gputypes.Color, vertBuf hal.Buffer, vertexCount uint32,
	bindGroup hal.BindGroup, dst []byte,
) error {
	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "splat_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("splat_render"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "splat_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       p.colorView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clear,
			},
		},
	})
	if vertexCount > 0 {
		rp.SetPipeline(p.pipeline)
		rp.SetBindGroup(0, bindGroup, nil)
		rp.SetVertexBuffer(0, vertBuf, 0)
		rp.Draw(vertexCount, 1, 0, 0)
	}
	rp.End()

	// After the pass the texture is in COLOR_ATTACHMENT_OPTIMAL layout
	// on Vulkan; CopyTextureToBuffer requires TRANSFER_SRC_OPTIMAL.
	// No-op on other backends.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: p.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// WebGPU (and DX12) requires BytesPerRow aligned to 256 bytes.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingBufSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "splat_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer p.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(p.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: p.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	// Transition back so the next frame's render pass finds the
	// texture in the attachment usage it expects.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: p.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer p.device.DestroyFence(fence)

	if err := p.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := p.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	if alignedBytesPerRow == bytesPerRow {
		if err := p.queue.ReadBuffer(stagingBuf, 0, dst[:stagingBufSize]); err != nil {
			return fmt.Errorf("readback: %w", err)
		}
		return nil
	}

	// Strip per-row padding from the aligned readback.
	readback := make([]byte, stagingBufSize)
	if err := p.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	for row := uint32(0); row < h; row++ {
		srcOff := int(row) * int(alignedBytesPerRow)
		dstOff := int(row) * int(bytesPerRow)
		copy(dst[dstOff:dstOff+int(bytesPerRow)], readback[srcOff:srcOff+int(bytesPerRow)])
	}
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (p *SplatPipeline) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	p.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// splatVertexLayout returns the vertex buffer layout for the splat pipeline.
func splatVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: splatVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // local
				{Format: gputypes.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 2}, // conic
				{Format: gputypes.VertexFormatFloat32x4, Offset: 28, ShaderLocation: 3}, // color
			},
		},
	}
}

// buildSplatVertices expands each instance into 6 vertices (2 triangles
// forming a screen-aligned quad over the splat's extent).
func buildSplatVertices(instances []SplatInstance) []byte {
	buf := make([]byte, len(instances)*6*splatVertexStride)
	offset := 0

	for i := range instances {
		s := &instances[i]

		// Quad corners in pixel and splat-local coordinates.
		// Triangle 1: TL, TR, BL; triangle 2: TR, BR, BL.
		type corner struct {
			px, py float32
			lx, ly float32
		}
		tl := corner{s.X - s.ExtX, s.Y - s.ExtY, -s.ExtX, -s.ExtY}
		tr := corner{s.X + s.ExtX, s.Y - s.ExtY, s.ExtX, -s.ExtY}
		bl := corner{s.X - s.ExtX, s.Y + s.ExtY, -s.ExtX, s.ExtY}
		br := corner{s.X + s.ExtX, s.Y + s.ExtY, s.ExtX, s.ExtY}

		corners := [6]corner{tl, tr, bl, tr, br, bl}
		for _, c := range corners {
			writeSplatVertex(buf[offset:], c.px, c.py, c.lx, c.ly, s)
			offset += splatVertexStride
		}
	}

	return buf
}

// writeSplatVertex writes a single vertex at the start of buf.
func writeSplatVertex(buf []byte, px, py, lx, ly float32, s *SplatInstance) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(px))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(py))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(lx))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(ly))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(s.ConicA))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(s.ConicB))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(s.ConicC))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(s.R))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(s.G))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(s.B))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(s.A))
}

// makeSplatUniform creates the 16-byte uniform buffer.
// Layout: viewport (vec2<f32>) + epsilon (f32) + padding (f32).
func makeSplatUniform(w, h uint32, epsilon float32) []byte {
	buf := make([]byte, splatUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(w)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(h)))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(epsilon))
	// Padding bytes 12..15 remain zero.
	return buf
}
