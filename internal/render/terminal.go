package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

const dotRune = '●'

// Terminal maps a canvas of fixed size onto the cells of a tcell screen.
// Each dot lights the cell its center falls into, blended over the
// background by its alpha.
type Terminal struct {
	screen        tcell.Screen
	width, height int
	bg            color.NRGBA
}

func NewTerminal(screen tcell.Screen, width, height int) *Terminal {
	return &Terminal{screen: screen, width: width, height: height}
}

func (t *Terminal) Size() (int, int) { return t.width, t.height }

func (t *Terminal) Clear(c color.Color) {
	t.bg = color.NRGBAModel.Convert(c).(color.NRGBA)
	t.bg.A = 255
	style := tcell.StyleDefault.Background(tcellColor(t.bg))
	cols, rows := t.screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (t *Terminal) FillCircle(x, y, _ float64, c color.Color) {
	col, row, ok := t.cell(x, y)
	if !ok {
		return
	}
	fg := blend(t.bg, color.NRGBAModel.Convert(c).(color.NRGBA))
	style := tcell.StyleDefault.Background(tcellColor(t.bg)).Foreground(tcellColor(fg))
	t.screen.SetContent(col, row, dotRune, nil, style)
}

// Show flushes the frame to the terminal.
func (t *Terminal) Show() { t.screen.Show() }

func (t *Terminal) cell(x, y float64) (int, int, bool) {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	col := int(x * float64(cols) / float64(t.width))
	row := int(y * float64(rows) / float64(t.height))
	if col >= cols || row >= rows {
		return 0, 0, false
	}
	return col, row, true
}

func blend(bg, fg color.NRGBA) color.NRGBA {
	a := float64(fg.A) / 255
	mix := func(b, f uint8) uint8 {
		return uint8(float64(b)*(1-a) + float64(f)*a + 0.5)
	}
	return color.NRGBA{R: mix(bg.R, fg.R), G: mix(bg.G, fg.G), B: mix(bg.B, fg.B), A: 255}
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
