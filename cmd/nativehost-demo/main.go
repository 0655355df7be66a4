//go:build !android

// Command nativehost-demo runs the controls example. Off Android there is
// no native window, so it renders one frame of the UI to a PNG instead.
package main

import (
	"flag"
	"image"
	"image/png"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/nativehost"
	"github.com/gogpu/nativehost/controls"
	"github.com/gogpu/nativehost/paint"
	"github.com/gogpu/nativehost/store"
	"github.com/gogpu/nativehost/ui"
	"github.com/gogpu/nativehost/viewport"
)

func main() {
	var (
		width    = flag.Uint("width", 1080, "physical width")
		height   = flag.Uint("height", 2280, "physical height")
		scale    = flag.Float64("scale", 2.75, "device pixels per logical unit")
		output   = flag.String("output", "controls.png", "output file")
		snapshot = flag.String("snapshot", "", "snapshot database to restore from")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	nativehost.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log := nativehost.Logger()

	c := controls.New()
	if *snapshot != "" {
		if err := restore(c, *snapshot); err != nil {
			log.Error("restore failed", "err", err)
			os.Exit(1)
		}
	}

	vp := viewport.New(viewport.Size{Width: uint32(*width), Height: uint32(*height)}, *scale)
	img := render(c, vp)

	f, err := os.Create(*output)
	if err != nil {
		log.Error("create output", "err", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Error("encode png", "err", err)
		os.Exit(1)
	}
	log.Info("frame written", "file", *output, "viewport", vp.String())
}

func restore(c *controls.Controls, path string) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	data, err := db.Load(controls.SnapshotKey)
	if err != nil {
		return err
	}
	return c.Restore(data)
}

// render clears to the program background and draws the UI over it, the
// same two layers the GPU compositor produces.
func render(p ui.Program, vp viewport.Viewport) *image.RGBA {
	l := vp.Logical()
	h := ui.NewHost(p, ui.Size{Width: l.Width, Height: l.Height})

	phys := vp.Physical()
	canvas := paint.NewCanvas(int(phys.Width), int(phys.Height), vp.ScaleFactor())
	h.Draw(canvas)

	out := image.NewRGBA(canvas.Image().Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(p.BackgroundColor().NRGBA()), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), canvas.Image(), image.Point{}, draw.Over)
	return out
}
