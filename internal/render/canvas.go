package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
)

// Canvas is an offscreen Surface backed by a gg software context.
type Canvas struct {
	dc *gg.Context
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

func (c *Canvas) Size() (int, int) { return c.dc.Width(), c.dc.Height() }

func (c *Canvas) Clear(col color.Color) {
	c.dc.ClearWithColor(gg.FromColor(col))
}

func (c *Canvas) FillCircle(x, y, r float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(x, y, r)
	_ = c.dc.Fill()
}

// Image returns a copy of the current pixels.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// SavePNG writes the current frame to path.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Close releases the gg context.
func (c *Canvas) Close() error { return c.dc.Close() }

// FrameWriter saves numbered PNG frames into a directory.
type FrameWriter struct {
	Dir    string
	Prefix string
	n      int
}

func NewFrameWriter(dir string) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FrameWriter{Dir: dir, Prefix: "frame"}, nil
}

// Write saves c as the next frame and returns its path.
func (w *FrameWriter) Write(c *Canvas) (string, error) {
	path := filepath.Join(w.Dir, fmt.Sprintf("%s-%05d.png", w.Prefix, w.n))
	if err := c.SavePNG(path); err != nil {
		return "", err
	}
	w.n++
	return path, nil
}

// Count is the number of frames written so far.
func (w *FrameWriter) Count() int { return w.n }
