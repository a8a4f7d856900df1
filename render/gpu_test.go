// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/math32"
	"github.com/gogpu/splat/shading"
)

// prepRenderer builds a GPURenderer without a device, enough to
// exercise the CPU vertex stage.
func prepRenderer() *GPURenderer {
	return &GPURenderer{profile: splat.DefaultProfile()}
}

func TestGPUAppendBatchIsotropic(t *testing.T) {
	r := prepRenderer()
	cloud := splat.NewCloud()
	cloud.Add(testSplat(math32.V3(0, 0, 0), math32.V3(1, 0, 0), 0.8))

	cam := splat.NewCamera(math32.V3(0, 0, 0), 5)
	u := UniformsFor(cam, 64, 64)
	r.appendBatch(Batch{Cloud: cloud, Mode: shading.ModeIsotropic}, &u, 64, 64)

	if len(r.instances) != 1 {
		t.Fatalf("len(instances) = %d, want 1", len(r.instances))
	}
	inst := r.instances[0]
	if math32.Abs(inst.X-32) > 1e-3 || math32.Abs(inst.Y-32) > 1e-3 {
		t.Errorf("center = (%g, %g), want (32, 32)", inst.X, inst.Y)
	}
	// Point size 100/5 = 20 px, so half extent 10.
	if math32.Abs(inst.ExtX-10) > 1e-3 || math32.Abs(inst.ExtY-10) > 1e-3 {
		t.Errorf("extent = (%g, %g), want (10, 10)", inst.ExtX, inst.ExtY)
	}
	// Conic k = 1/(sigma^2 * ext^2) = 1/(0.25*100).
	if math32.Abs(inst.ConicA-0.04) > 1e-5 || inst.ConicB != 0 {
		t.Errorf("conic = (%g, %g, %g), want (0.04, 0, 0.04)", inst.ConicA, inst.ConicB, inst.ConicC)
	}
	if inst.A != 0.8 || inst.R != 1 {
		t.Errorf("color/alpha = (%g, %g), want (1, 0.8)", inst.R, inst.A)
	}
}

func TestGPUAppendBatchCulls(t *testing.T) {
	r := prepRenderer()
	cloud := splat.NewCloud()
	cloud.Add(testSplat(math32.V3(0, 0, 10), math32.V3(1, 1, 1), 1))  // behind camera
	cloud.Add(testSplat(math32.V3(100, 0, 0), math32.V3(1, 1, 1), 1)) // offscreen
	cloud.Add(testSplat(math32.V3(0, 0, 0), math32.V3(1, 1, 1), 1))   // visible

	cam := splat.NewCamera(math32.V3(0, 0, 0), 5)
	u := UniformsFor(cam, 64, 64)
	r.appendBatch(Batch{Cloud: cloud, Mode: shading.ModeIsotropic}, &u, 64, 64)

	if len(r.instances) != 1 {
		t.Fatalf("len(instances) = %d, want 1 visible", len(r.instances))
	}
}

func TestGPUAppendBatchAnisotropic(t *testing.T) {
	r := prepRenderer()
	cloud := splat.NewCloud()
	s := testSplat(math32.V3(0, 0, 0), math32.V3(1, 1, 1), 1)
	s.Scale = math32.V3(1, 0.1, 0.1)
	cloud.Add(s)

	cam := splat.NewCamera(math32.V3(0, 0, 0), 5)
	u := UniformsFor(cam, 64, 64)
	r.appendBatch(Batch{Cloud: cloud, Mode: shading.ModeAnisotropic}, &u, 64, 64)

	if len(r.instances) != 1 {
		t.Fatalf("len(instances) = %d, want 1", len(r.instances))
	}
	inst := r.instances[0]
	// Elongated along x: the Gaussian decays slower along x, so the
	// conic's x coefficient is the smaller one.
	if inst.ConicA >= inst.ConicC {
		t.Errorf("conic A=%g C=%g, want A < C for x-elongated splat", inst.ConicA, inst.ConicC)
	}
	if inst.ExtX <= 0 || inst.ExtX != inst.ExtY {
		t.Errorf("extent = (%g, %g), want equal positive radius", inst.ExtX, inst.ExtY)
	}
}

func TestGPUAppendBatchAnisotropicTilt(t *testing.T) {
	r := prepRenderer()
	cloud := splat.NewCloud()
	s := testSplat(math32.V3(0, 0, 0), math32.V3(1, 1, 1), 1)
	s.Scale = math32.V3(1, 0.05, 0.05)
	s.Rotation = math32.Quat{W: 0.9238795, Z: 0.3826834} // 45 degrees about +z
	cloud.Add(s)

	cam := splat.NewCamera(math32.V3(0, 0, 0), 5)
	u := UniformsFor(cam, 64, 64)
	r.appendBatch(Batch{Cloud: cloud, Mode: shading.ModeAnisotropic}, &u, 64, 64)

	if len(r.instances) != 1 {
		t.Fatalf("len(instances) = %d, want 1", len(r.instances))
	}
	// Up-right elongation in y-down pixel space means a negative
	// covariance off-diagonal, so the inverted conic's B is positive.
	if b := r.instances[0].ConicB; b <= 0 {
		t.Errorf("ConicB = %g, want > 0 for an up-right tilt", b)
	}
}

func TestGPUAppendBatchPreservesOrder(t *testing.T) {
	r := prepRenderer()
	cloud := splat.NewCloud()
	cloud.Add(testSplat(math32.V3(0, 0, 0), math32.V3(1, 0, 0), 1))
	cloud.Add(testSplat(math32.V3(0, 0, 0), math32.V3(0, 1, 0), 1))
	cloud.Add(testSplat(math32.V3(0, 0, 0), math32.V3(0, 0, 1), 1))

	cam := splat.NewCamera(math32.V3(0, 0, 0), 5)
	u := UniformsFor(cam, 64, 64)
	r.appendBatch(Batch{Cloud: cloud, Mode: shading.ModeIsotropic}, &u, 64, 64)

	if len(r.instances) != 3 {
		t.Fatalf("len(instances) = %d, want 3", len(r.instances))
	}
	if r.instances[0].R != 1 || r.instances[1].G != 1 || r.instances[2].B != 1 {
		t.Error("instances do not preserve cloud order")
	}
}
