package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/dotmorph/internal/anim"
	"github.com/iburimskiy/dotmorph/internal/audio"
	"github.com/iburimskiy/dotmorph/internal/config"
	"github.com/iburimskiy/dotmorph/internal/game"
	"github.com/iburimskiy/dotmorph/internal/logging"
)

func main() {
	var (
		configPath string
		verbose    bool
		sound      bool
	)
	flag.StringVar(&configPath, "config", "dotmorph.json", "JSON config file (missing file = defaults)")
	flag.BoolVar(&verbose, "v", false, "Log debug output to stderr")
	flag.BoolVar(&sound, "sound", false, "Chime when a new shape is applied")
	flag.Parse()

	logging.SetLogger(logging.Text(os.Stderr, verbose))

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Sound = cfg.Sound || sound
	if flag.NArg() > 0 {
		cfg.Images = flag.Args()
	}

	chime := &audio.Chime{}
	if cfg.Sound {
		if err := chime.Init(); err != nil {
			// Non-fatal, the dots run fine without sound
			logging.Logger().Warn("audio init failed", "err", err)
		}
	}

	var g *game.Game
	a, err := anim.New(cfg, anim.WithOnShape(func(src string, points int) {
		g.OnShape(src, points)
		chime.Play(points)
	}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g = game.New(ctx, a, cfg.Width, cfg.Height, cfg.Images)

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("dotmorph - O: open image, N: next, E: explode, R: reset, Esc/Q: quit")
	ebiten.SetTPS(cfg.FPS)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logging.Logger().Error("game stopped", "err", err)
		os.Exit(1)
	}
}
