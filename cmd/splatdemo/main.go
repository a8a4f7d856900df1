// Command splatdemo renders a generated splat cloud to a PNG file.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/math32"
	"github.com/gogpu/splat/render"
	"github.com/gogpu/splat/shading"
)

func main() {
	var (
		width       = flag.Int("width", 800, "image width")
		height      = flag.Int("height", 600, "image height")
		output      = flag.String("output", "splats.png", "output PNG file")
		profilePath = flag.String("profile", "", "TOML shading profile (optional)")
		plyPath     = flag.String("ply", "", "also export the cloud as binary PLY (optional)")
		aniso       = flag.Bool("aniso", false, "use anisotropic covariance shading")
		useGPU      = flag.Bool("gpu", false, "render on the GPU, falling back to CPU")
		count       = flag.Int("count", 2000, "number of generated splats")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		splat.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	profile := splat.DefaultProfile()
	if *profilePath != "" {
		var err error
		profile, err = splat.LoadProfile(*profilePath)
		if err != nil {
			slog.Error("load profile", "path", *profilePath, "err", err)
			os.Exit(1)
		}
	}

	cloud := demoCloud(*count)
	if *plyPath != "" {
		f, err := os.Create(*plyPath)
		if err != nil {
			slog.Error("create ply", "path", *plyPath, "err", err)
			os.Exit(1)
		}
		if err := cloud.WritePLY(f); err != nil {
			f.Close()
			slog.Error("write ply", "err", err)
			os.Exit(1)
		}
		if err := f.Close(); err != nil {
			slog.Error("close ply", "err", err)
			os.Exit(1)
		}
		slog.Info("exported cloud", "path", *plyPath, "splats", cloud.Len())
	}

	renderer := pickRenderer(*useGPU, profile)
	defer renderer.Close()

	camera := splat.NewCamera(math32.V3(0, 0, 0), 6)
	camera.Rotate(30, -20)

	mode := shading.ModeIsotropic
	if *aniso {
		mode = shading.ModeAnisotropic
	}
	frame := render.NewFrame(camera).Add(cloud, mode)

	target := render.NewPixmapTarget(*width, *height)
	if err := renderer.Render(target, frame); err != nil {
		slog.Error("render", "err", err)
		os.Exit(1)
	}
	if err := target.SavePNG(*output); err != nil {
		slog.Error("save png", "err", err)
		os.Exit(1)
	}
	slog.Info("saved", "path", *output, "width", *width, "height", *height, "mode", mode.String())
}

func pickRenderer(useGPU bool, profile splat.Profile) render.Renderer {
	if useGPU {
		r, err := render.NewGPURenderer(render.WithProfile(profile))
		if err == nil {
			return r
		}
		slog.Warn("gpu unavailable, using software renderer", "err", err)
	}
	return render.NewSoftwareRenderer(render.WithProfile(profile))
}

// demoCloud builds a swirl of colored splats on a sphere shell plus a
// few large translucent ones near the center.
func demoCloud(count int) *splat.Cloud {
	cloud := splat.NewCloudCapacity(count)

	for i := 0; i < count; i++ {
		t := float32(i) / float32(count)
		theta := t * 40
		phi := math32.DegToRad(-80 + t*160)
		r := float32(2.0)

		pos := math32.V3(
			r*math32.Cos(phi)*math32.Cos(theta),
			r*math32.Sin(phi),
			r*math32.Cos(phi)*math32.Sin(theta),
		)
		cloud.Add(splat.Splat{
			Position: pos,
			Color:    math32.V3(0.5+0.5*math32.Sin(theta), t, 1-t),
			Opacity:  0.85,
			Scale:    math32.V3(0.05, 0.05, 0.05),
			Rotation: math32.QuatIdentity(),
		})
	}

	for i := 0; i < 3; i++ {
		fi := float32(i)
		cloud.Add(splat.Splat{
			Position: math32.V3(fi*0.4-0.4, 0, 0),
			Color:    math32.V3(1-fi*0.3, 0.4, fi*0.3),
			Opacity:  0.35,
			Scale:    math32.V3(0.6, 0.6, 0.6),
			Rotation: math32.QuatIdentity(),
		})
	}

	return cloud
}
