package game

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/ncruces/zenity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/dotmorph/internal/anim"
	"github.com/iburimskiy/dotmorph/internal/config"
	"github.com/iburimskiy/dotmorph/internal/shape"
)

type mapLoader map[string]image.Image

func (m mapLoader) Load(_ context.Context, src string) (image.Image, error) {
	if img, ok := m[src]; ok {
		return img, nil
	}
	return nil, shape.ErrLoad
}

func square() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func newGame(t *testing.T, images ...string) *Game {
	t.Helper()
	cfg := config.NewDefault()
	cfg.Width, cfg.Height = 200, 100

	var g *Game
	a, err := anim.New(cfg,
		anim.WithLoader(mapLoader{"a.png": square(), "b.png": square()}),
		anim.WithOnShape(func(src string, n int) { g.OnShape(src, n) }))
	require.NoError(t, err)
	g = New(context.Background(), a, cfg.Width, cfg.Height, images)
	return g
}

// waitForShape ticks the animator until a shape has been applied.
func waitForShape(t *testing.T, g *Game) {
	t.Helper()
	require.Eventually(t, func() bool {
		g.anim.Update()
		g.mu.Lock()
		defer g.mu.Unlock()
		return g.current != ""
	}, time.Second, time.Millisecond)
}

func TestNewLoadsFirstImage(t *testing.T) {
	g := newGame(t, "a.png", "b.png")
	waitForShape(t, g)

	assert.Equal(t, "a.png", g.current)
	assert.Positive(t, g.dots)
	assert.Equal(t, g.anim.Pool().Len(), g.dots)
	assert.True(t, g.statusDirty.Load())
	assert.Contains(t, g.statusLine(), "a.png: ")
}

func TestLoadNextCycles(t *testing.T) {
	g := newGame(t, "a.png", "b.png")
	waitForShape(t, g)

	g.mu.Lock()
	g.current = ""
	g.mu.Unlock()
	g.loadNext()
	waitForShape(t, g)
	assert.Equal(t, "b.png", g.current)
	assert.Equal(t, 2, g.next)
}

func TestLoadErrorShowsInStatus(t *testing.T) {
	g := newGame(t)
	assert.Contains(t, g.statusLine(), "Press O")

	g.load("missing.png")
	assert.Contains(t, g.statusLine(), "Error: "+shape.ErrLoad.Error())
}

func TestOpenDialog(t *testing.T) {
	for _, tc := range []struct {
		name    string
		pick    func() (string, error)
		current string
		wantErr bool
	}{
		{"picked", func() (string, error) { return "b.png", nil }, "b.png", false},
		{"canceled", func() (string, error) { return "", zenity.ErrCanceled }, "", false},
		{"failed", func() (string, error) { return "", errors.New("no display") }, "", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(t)
			g.openDialogFn = tc.pick
			g.openDialog()
			require.Eventually(t, func() bool { return !g.dialogOpen.Load() }, time.Second, time.Millisecond)

			if tc.current != "" {
				waitForShape(t, g)
			}
			g.mu.Lock()
			defer g.mu.Unlock()
			assert.Equal(t, tc.current, g.current)
			assert.Equal(t, tc.wantErr, g.lastErr != nil)
		})
	}
}

func TestLayoutIsFixed(t *testing.T) {
	g := newGame(t)
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "cat.png", shortName("/tmp/shapes/cat.png"))
	assert.Equal(t, "cat.png", shortName("https://example.com/img/cat.png"))
	assert.Equal(t, "https://example.com/", shortName("https://example.com/"))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "850ms", formatElapsed(850*time.Millisecond))
	assert.Equal(t, "1.2s", formatElapsed(1200*time.Millisecond))
}
