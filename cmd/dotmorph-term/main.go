// Command dotmorph-term plays the animation in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/dotmorph/internal/anim"
	"github.com/iburimskiy/dotmorph/internal/config"
	"github.com/iburimskiy/dotmorph/internal/logging"
	"github.com/iburimskiy/dotmorph/internal/render"
)

const loadTimeout = 30 * time.Second

func main() {
	var (
		configPath string
		logPath    string
	)
	flag.StringVar(&configPath, "config", "dotmorph.json", "JSON config file (missing file = defaults)")
	flag.StringVar(&logPath, "log", "", "Write debug log to this file (the screen is taken)")
	flag.Parse()

	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logging.SetLogger(logging.Text(f, true))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		cfg.Images = flag.Args()
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	a, err := anim.New(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	next := 0
	loadNext := func() {
		if len(cfg.Images) == 0 {
			return
		}
		src := cfg.Images[next%len(cfg.Images)]
		next++
		go func() {
			lctx, lcancel := context.WithTimeout(ctx, loadTimeout)
			defer lcancel()
			if err := a.SetImage(lctx, src); err != nil && !errors.Is(err, anim.ErrSuperseded) {
				logging.Logger().Error("load failed", "src", src, "err", err)
			}
		}()
	}

	a.Start()
	loadNext()

	var resized atomic.Bool
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				resized.Store(true)
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					cancel()
					return
				case ev.Rune() == 'e':
					a.Explode()
				case ev.Rune() == 'r':
					a.Start()
				case ev.Rune() == 'n':
					loadNext()
				}
			}
		}
	}()

	term := render.NewTerminal(screen, cfg.Width, cfg.Height)
	sched := anim.NewTickerScheduler(cfg.FPS)
	defer sched.Stop()

	err = a.Run(ctx, sched, term, func(_ uint64, drawn bool) error {
		if drawn {
			term.Show()
		}
		if resized.Swap(false) {
			a.Invalidate()
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
