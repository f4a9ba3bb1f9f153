// Package render defines the drawing surface the animation paints on and
// the backends that implement it.
package render

import (
	"image/color"

	"github.com/iburimskiy/dotmorph/internal/dots"
)

// Surface is a fixed-size drawable canvas.
type Surface interface {
	Size() (w, h int)
	Clear(c color.Color)
	FillCircle(x, y, r float64, c color.Color)
}

// Dots clears s to background and paints every dot of pool as a disc of
// radius r. Fully transparent dots are skipped.
func Dots(s Surface, pool *dots.Pool, background color.Color, r float64) {
	s.Clear(background)
	pool.Each(func(_ int, d *dots.Dot) {
		if d.Color.A <= 0 {
			return
		}
		s.FillCircle(d.X, d.Y, r, d.Color.NRGBA())
	})
}
