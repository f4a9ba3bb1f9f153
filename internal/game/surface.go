package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface paints onto the ebiten screen handed to Draw.
type Surface struct {
	Target *ebiten.Image
}

func (s *Surface) Size() (int, int) {
	b := s.Target.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Clear(c color.Color) {
	s.Target.Fill(c)
}

func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(s.Target, float32(x), float32(y), float32(r), c, true)
}
