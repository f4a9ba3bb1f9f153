// Command dotmorph-render runs the animation offscreen and writes PNG frames.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/iburimskiy/dotmorph/internal/anim"
	"github.com/iburimskiy/dotmorph/internal/config"
	"github.com/iburimskiy/dotmorph/internal/logging"
	"github.com/iburimskiy/dotmorph/internal/render"
)

func main() {
	var (
		configPath string
		outDir     string
		frames     int
		every      int
		explodeAt  int
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "dotmorph.json", "JSON config file (missing file = defaults)")
	flag.StringVar(&outDir, "out", "frames", "Output directory for PNG frames")
	flag.IntVar(&frames, "frames", 180, "Number of frames to simulate")
	flag.IntVar(&every, "every", 1, "Save every k-th frame")
	flag.IntVar(&explodeAt, "explode-at", 0, "Explode on this frame (0 = never)")
	flag.BoolVar(&verbose, "v", false, "Log debug output to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] image\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logging.SetLogger(logging.Text(os.Stderr, verbose))

	if err := run(configPath, outDir, frames, every, explodeAt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, outDir string, frames, every, explodeAt int) error {
	if every <= 0 {
		return fmt.Errorf("-every must be positive, got %d", every)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flag.NArg() > 0 {
		cfg.Images = flag.Args()
	}
	if len(cfg.Images) == 0 {
		flag.Usage()
		return fmt.Errorf("no image given")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := anim.New(cfg)
	if err != nil {
		return err
	}
	a.Start()
	if err := a.SetImage(ctx, cfg.Images[0]); err != nil {
		return err
	}

	canvas := render.NewCanvas(cfg.Width, cfg.Height)
	defer canvas.Close()
	out, err := render.NewFrameWriter(outDir)
	if err != nil {
		return err
	}

	hook := func(frame uint64, _ bool) error {
		if explodeAt > 0 && frame == uint64(explodeAt) {
			a.Explode()
		}
		if frame%uint64(every) != 0 {
			return nil
		}
		_, err := out.Write(canvas)
		return err
	}
	if err := a.Run(ctx, anim.NewCountScheduler(frames), canvas, hook); err != nil {
		return err
	}

	logging.Logger().Info("render finished", "frames", a.Frames(), "saved", out.Count(), "dir", outDir)
	return nil
}
