// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/internal/parallel"
	"github.com/gogpu/splat/math32"
	"github.com/gogpu/splat/shading"
)

// ErrNilFrame is returned when Render is called without a frame or
// without a camera.
var ErrNilFrame = errors.New("render: nil frame or camera")

// Stats counts what the last Render call did. Counters are totals
// across all batches of the frame.
type Stats struct {
	// Splats is the number of splats submitted.
	Splats int64

	// Culled is the number of splats skipped before rasterization:
	// behind the camera, degenerate covariance, or fully offscreen.
	Culled int64

	// SizeClampedMin and SizeClampedMax count isotropic splats whose
	// point size hit the profile's floor or ceiling. A high clamp rate
	// usually means the size gain does not match the scene scale.
	SizeClampedMin int64
	SizeClampedMax int64

	// FragmentsShaded and FragmentsDiscarded count fragment-stage
	// invocations that did and did not survive the alpha threshold.
	FragmentsShaded    int64
	FragmentsDiscarded int64
}

// config collects the knobs shared by renderer constructors.
type config struct {
	profile splat.Profile
	workers int
}

func defaultConfig() config {
	return config{profile: splat.DefaultProfile()}
}

// Option configures a renderer at construction time.
type Option func(*config)

// WithProfile overrides the default shading profile.
func WithProfile(p splat.Profile) Option {
	return func(c *config) {
		c.profile = p
	}
}

// WithWorkers sets the worker count for the software render pool.
// n <= 0 selects GOMAXPROCS. GPU renderers ignore it.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// SoftwareRenderer rasterizes splat frames on the CPU.
//
// Parallelism does not disturb compositing order: the vertex stage
// runs data-parallel over splats (order-free by construction), and the
// fragment stage splits the target into horizontal bands where each
// band walks every batch and splat in submission order. Pixels never
// race because a pixel belongs to exactly one band, and every band
// applies the same deterministic blend sequence.
type SoftwareRenderer struct {
	profile splat.Profile
	workers int
	pool    *parallel.Pool

	stats Stats

	// prepared is the per-batch vertex-stage output, reused across
	// frames to keep steady-state rendering allocation-free.
	prepared [][]drawSplat
}

// NewSoftwareRenderer creates a CPU renderer with the default profile
// and one worker per CPU.
func NewSoftwareRenderer(opts ...Option) *SoftwareRenderer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SoftwareRenderer{
		profile: cfg.profile,
		workers: cfg.workers,
		pool:    parallel.NewPool(cfg.workers),
	}
}

// Capabilities reports what the software path supports.
func (r *SoftwareRenderer) Capabilities() Capabilities {
	return Capabilities{
		IsGPU:              false,
		Anisotropic:        true,
		SphericalHarmonics: true,
		MaxPointSize:       0,
	}
}

// Profile returns the shading profile in use.
func (r *SoftwareRenderer) Profile() splat.Profile {
	return r.profile
}

// Stats returns the counters from the most recent Render call.
func (r *SoftwareRenderer) Stats() Stats {
	return r.stats
}

// Close releases the worker pool. Close is idempotent.
func (r *SoftwareRenderer) Close() error {
	r.pool.Close()
	return nil
}

// drawSplat is one splat after the vertex stage: screen-space center,
// rasterization half-extents, and resolved fragment inputs. Culled
// splats stay in the slice with live=false so indices keep matching
// the cloud.
type drawSplat struct {
	sx, sy     float32
	extX, extY float32
	color      math32.Vector3
	alpha      float32
	conic      shading.Cov2
	live       bool
}

// Render composites the frame onto the target.
func (r *SoftwareRenderer) Render(target RenderTarget, frame *Frame) error {
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

	start := time.Now()
	width, height, stride := target.Width(), target.Height(), target.Stride()
	uniforms := UniformsFor(frame.Camera, width, height)

	r.stats = Stats{}
	fillBackground(pix, width, height, stride, frame.Background)

	r.prepareFrame(frame, &uniforms, width, height)
	r.rasterize(frame, pix, width, height, stride)

	splat.Logger().Debug("software render",
		"splats", r.stats.Splats,
		"culled", r.stats.Culled,
		"shaded", r.stats.FragmentsShaded,
		"discarded", r.stats.FragmentsDiscarded,
		"elapsed", time.Since(start))
	return nil
}

func fillBackground(pix []byte, width, height, stride int, bg color.RGBA) {
	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+width*4]
		for x := 0; x < width; x++ {
			row[x*4+0] = bg.R
			row[x*4+1] = bg.G
			row[x*4+2] = bg.B
			row[x*4+3] = bg.A
		}
	}
}

// prepChunk is the vertex-stage grain: small enough to balance across
// workers, large enough to amortize task dispatch.
const prepChunk = 1024

// prepareFrame runs the vertex stage for every batch, data-parallel
// over fixed-size chunks of each cloud.
func (r *SoftwareRenderer) prepareFrame(frame *Frame, u *shading.Uniforms, width, height int) {
	if cap(r.prepared) < len(frame.Batches) {
		r.prepared = make([][]drawSplat, len(frame.Batches))
	}
	r.prepared = r.prepared[:len(frame.Batches)]

	var tasks []func()
	for bi, batch := range frame.Batches {
		cloud := batch.Cloud
		if cloud == nil || cloud.Len() == 0 {
			r.prepared[bi] = r.prepared[bi][:0]
			continue
		}
		n := cloud.Len()
		atomic.AddInt64(&r.stats.Splats, int64(n))
		if cap(r.prepared[bi]) < n {
			r.prepared[bi] = make([]drawSplat, n)
		}
		out := r.prepared[bi][:n]
		r.prepared[bi] = out

		mode := batch.Mode
		for lo := 0; lo < n; lo += prepChunk {
			lo, hi := lo, min(lo+prepChunk, n)
			tasks = append(tasks, func() {
				r.prepareChunk(cloud, mode, out[lo:hi], lo, u, width, height)
			})
		}
	}
	r.pool.Run(tasks)
}

func (r *SoftwareRenderer) prepareChunk(cloud *splat.Cloud, mode shading.Mode, out []drawSplat, base int, u *shading.Uniforms, width, height int) {
	var culled, clampedMin, clampedMax int64
	p := &r.profile

	for i := range out {
		out[i].live = false
		s := cloud.At(base + i)
		v := shading.TransformVertex(s, u, p)
		if v.ClipPos.W <= 0 {
			culled++
			continue
		}

		invW := 1 / v.ClipPos.W
		sx := (v.ClipPos.X*invW + 1) * 0.5 * float32(width)
		sy := (1 - v.ClipPos.Y*invW) * 0.5 * float32(height)

		ds := drawSplat{sx: sx, sy: sy, color: v.Color, alpha: v.Opacity}
		switch mode {
		case shading.ModeAnisotropic:
			cov := shading.Covariance3(v.Scale, v.Rotation)
			cov2, ok := shading.ProjectCovariance(cov, s.Position, u)
			if !ok {
				culled++
				continue
			}
			conic, ok := cov2.Inverted()
			if !ok {
				culled++
				continue
			}
			radius := cov2.Radius()
			ds.conic = conic
			ds.extX, ds.extY = radius, radius
			if sh := cloud.SH; base+i < len(sh) && len(sh[base+i]) > 0 {
				dir := s.Position.Sub(u.CameraPos).Normal()
				ds.color = shading.EvalSH(sh[base+i], dir)
			}
		default:
			size := v.PointSize
			if size <= p.MinSize {
				clampedMin++
			} else if size >= p.MaxSize {
				clampedMax++
			}
			ds.extX, ds.extY = size*0.5, size*0.5
		}

		// Fully offscreen splats never reach the fragment stage.
		if sx+ds.extX < 0 || sx-ds.extX >= float32(width) ||
			sy+ds.extY < 0 || sy-ds.extY >= float32(height) {
			culled++
			continue
		}
		ds.live = true
		out[i] = ds
	}

	atomic.AddInt64(&r.stats.Culled, culled)
	atomic.AddInt64(&r.stats.SizeClampedMin, clampedMin)
	atomic.AddInt64(&r.stats.SizeClampedMax, clampedMax)
}

// rasterize runs the fragment stage over horizontal bands. Each band
// owns its rows exclusively and walks batches and splats in submission
// order, so compositing stays deterministic under parallelism.
func (r *SoftwareRenderer) rasterize(frame *Frame, pix []byte, width, height, stride int) {
	bands := parallel.Bands(height, r.pool.Workers())
	tasks := make([]func(), 0, len(bands))
	for _, band := range bands {
		y0, y1 := band[0], band[1]
		tasks = append(tasks, func() {
			r.rasterizeBand(frame, pix, width, stride, y0, y1)
		})
	}
	r.pool.Run(tasks)
}

func (r *SoftwareRenderer) rasterizeBand(frame *Frame, pix []byte, width, stride, y0, y1 int) {
	var shaded, discarded int64
	p := &r.profile

	for bi := range frame.Batches {
		aniso := frame.Batches[bi].Mode == shading.ModeAnisotropic
		for si := range r.prepared[bi] {
			ds := &r.prepared[bi][si]
			if !ds.live {
				continue
			}

			x0 := max(int(ds.sx-ds.extX), 0)
			x1 := min(int(ds.sx+ds.extX)+1, width)
			ry0 := max(int(ds.sy-ds.extY), y0)
			ry1 := min(int(ds.sy+ds.extY)+1, y1)

			for y := ry0; y < ry1; y++ {
				py := float32(y) + 0.5
				row := pix[y*stride:]
				for x := x0; x < x1; x++ {
					px := float32(x) + 0.5

					var frag shading.Fragment
					var ok bool
					if aniso {
						d := math32.V2(px-ds.sx, py-ds.sy)
						frag, ok = shading.ShadeAnisotropic(d, ds.conic, ds.color, ds.alpha, p)
					} else {
						coord := math32.V2((px-ds.sx)/ds.extX, (py-ds.sy)/ds.extY)
						frag, ok = shading.ShadeIsotropic(coord, ds.color, ds.alpha, p)
					}
					if !ok {
						discarded++
						continue
					}
					shaded++
					blendPixel(row[x*4:x*4+4], frag)
				}
			}
		}
	}

	atomic.AddInt64(&r.stats.FragmentsShaded, shaded)
	atomic.AddInt64(&r.stats.FragmentsDiscarded, discarded)
}

// blendPixel applies non-premultiplied source-over:
//
//	out.rgb = src.rgb*a + dst.rgb*(1-a)
//	out.a   = a + dst.a*(1-a)
func blendPixel(dst []byte, f shading.Fragment) {
	a := f.Alpha
	ia := 1 - a
	dr := float32(dst[0]) / 255
	dg := float32(dst[1]) / 255
	db := float32(dst[2]) / 255
	da := float32(dst[3]) / 255

	dst[0] = toByte(f.Color.X*a + dr*ia)
	dst[1] = toByte(f.Color.Y*a + dg*ia)
	dst[2] = toByte(f.Color.Z*a + db*ia)
	dst[3] = toByte(a + da*ia)
}

func toByte(v float32) byte {
	return byte(math32.Clamp(v, 0, 1)*255 + 0.5)
}

// Ensure SoftwareRenderer implements CapableRenderer.
var _ CapableRenderer = (*SoftwareRenderer)(nil)
