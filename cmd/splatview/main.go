// Command splatview displays a splat cloud in a window with an orbit
// camera. Drag with the left mouse button to rotate, scroll to zoom,
// drag with the right button to pan.
package main

import (
	"flag"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/math32"
	"github.com/gogpu/splat/render"
	"github.com/gogpu/splat/shading"
)

const (
	viewWidth  = 960
	viewHeight = 540
)

func main() {
	var (
		aniso   = flag.Bool("aniso", false, "use anisotropic covariance shading")
		count   = flag.Int("count", 2000, "number of generated splats")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		splat.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	mode := shading.ModeIsotropic
	if *aniso {
		mode = shading.ModeAnisotropic
	}

	camera := splat.NewCamera(math32.V3(0, 0, 0), 6)
	g := &game{
		renderer: render.NewSoftwareRenderer(),
		target:   render.NewPixmapTarget(viewWidth, viewHeight),
		handle:   splat.NewHandle(demoCloud(*count)),
		camera:   camera,
		mode:     mode,
	}
	defer g.renderer.Close()

	ebiten.SetWindowTitle("splatview")
	ebiten.SetWindowSize(viewWidth, viewHeight)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
}

type game struct {
	renderer *render.SoftwareRenderer
	target   *render.PixmapTarget
	handle   *splat.Handle
	camera   *splat.Camera
	mode     shading.Mode

	screen *ebiten.Image

	lastX, lastY int
	rotating     bool
	panning      bool
}

func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	dx, dy := float32(x-g.lastX), float32(y-g.lastY)
	g.lastX, g.lastY = x, y

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.rotating {
			g.camera.Rotate(dx*0.4, -dy*0.4)
		}
		g.rotating = true
	} else {
		g.rotating = false
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if g.panning {
			g.camera.Pan(-dx*0.01, dy*0.01)
		}
		g.panning = true
	} else {
		g.panning = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.camera.Zoom(float32(-wy) * 0.3)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := render.NewFrame(g.camera).Add(g.handle.Load(), g.mode)
	// Opaque background keeps the alpha channel at 255, so the
	// straight-alpha pixels upload to ebiten unchanged.
	frame.Background = color.RGBA{R: 18, G: 18, B: 26, A: 255}
	if err := g.renderer.Render(g.target, frame); err != nil {
		slog.Error("render", "err", err)
		return
	}

	if g.screen == nil {
		g.screen = ebiten.NewImage(viewWidth, viewHeight)
	}
	g.screen.WritePixels(g.target.Pixels())
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return viewWidth, viewHeight
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
