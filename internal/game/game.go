// Package game hosts the animation in an ebiten window.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/dotmorph/internal/anim"
	"github.com/iburimskiy/dotmorph/internal/logging"
)

const loadTimeout = 30 * time.Second

type Game struct {
	ctx     context.Context
	anim    *anim.Animator
	surface Surface

	width, height int

	images []string
	next   int

	// status is written by loader goroutines and read by Draw
	mu          sync.Mutex
	current     string
	dots        int
	lastErr     error
	statusDirty atomic.Bool

	dialogOpen   atomic.Bool
	openDialogFn func() (string, error)
}

// New builds a game around a and queues the first image, if any.
func New(ctx context.Context, a *anim.Animator, width, height int, images []string) *Game {
	g := &Game{
		ctx:          ctx,
		anim:         a,
		width:        width,
		height:       height,
		images:       images,
		openDialogFn: selectImageFile,
	}
	a.Start()
	g.loadNext()
	return g
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyO),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.openDialog()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.loadNext()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.anim.Explode()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.restart()
	}

	if g.statusDirty.Swap(false) {
		g.anim.Invalidate()
	}
	g.anim.Update()
	return nil
}

// Draw repaints only when the animation moved; the screen keeps the last
// frame otherwise.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target = screen
	if g.anim.Draw(&g.surface) {
		ebitenutil.DebugPrintAt(screen, g.statusLine(), 8, 8)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) restart() {
	g.anim.Start()
	g.mu.Lock()
	current := g.current
	g.mu.Unlock()
	if current != "" {
		go g.load(current)
	}
}

// loadNext cycles through the configured image list.
func (g *Game) loadNext() {
	if len(g.images) == 0 {
		return
	}
	src := g.images[g.next%len(g.images)]
	g.next++
	go g.load(src)
}

func (g *Game) openDialog() {
	if !g.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer g.dialogOpen.Store(false)
		src, err := g.openDialogFn()
		if err != nil {
			if !errors.Is(err, zenity.ErrCanceled) {
				g.setError(err)
			}
			return
		}
		g.load(src)
	}()
}

func (g *Game) load(src string) {
	ctx, cancel := context.WithTimeout(g.ctx, loadTimeout)
	defer cancel()

	start := time.Now()
	err := g.anim.SetImage(ctx, src)
	if errors.Is(err, anim.ErrSuperseded) {
		return
	}
	if err != nil {
		g.setError(err)
		return
	}
	logging.Logger().Info("shape queued", "src", src, "elapsed", formatElapsed(time.Since(start)))
	g.setError(nil)
}

// OnShape is wired as the animator's shape callback to keep the status
// line current.
func (g *Game) OnShape(src string, points int) {
	g.mu.Lock()
	g.current = src
	g.dots = points
	g.mu.Unlock()
	g.statusDirty.Store(true)
}

func (g *Game) setError(err error) {
	g.mu.Lock()
	g.lastErr = err
	g.mu.Unlock()
	g.statusDirty.Store(true)
}

func (g *Game) statusLine() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	status := "Press O or click to open an image"
	if g.current != "" {
		status = fmt.Sprintf("%s: %d dots", shortName(g.current), g.dots)
	}
	status += " | O open  N next  E explode  R reset  Q quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func selectImageFile() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Open Image"),
		zenity.FileFilters{{
			Name:     "Images",
			Patterns: []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.bmp", "*.tif", "*.tiff"},
		}},
	)
}
