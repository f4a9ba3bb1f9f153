package shape

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/iburimskiy/dotmorph/internal/config"
	"github.com/iburimskiy/dotmorph/internal/dots"
)

// Sampler turns an image into the grid points its opaque pixels cover.
type Sampler struct {
	Width, Height int
	Gap           int
	MinAlpha      uint8
	Scaler        draw.Interpolator
}

// NewSampler builds a sampler for the configured canvas.
func NewSampler(cfg *config.Config) (*Sampler, error) {
	scaler, err := ParseScaler(cfg.Scaler)
	if err != nil {
		return nil, err
	}
	return &Sampler{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Gap:      cfg.Gap,
		MinAlpha: cfg.MinAlpha,
		Scaler:   scaler,
	}, nil
}

// ParseScaler maps a config name to an x/image interpolator.
func ParseScaler(name string) (draw.Interpolator, error) {
	switch name {
	case "nearest":
		return draw.NearestNeighbor, nil
	case "", "approx-bilinear":
		return draw.ApproxBiLinear, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "catmull-rom":
		return draw.CatmullRom, nil
	}
	return nil, fmt.Errorf("unknown scaler %q", name)
}

// Fit returns where img lands on the canvas: scaled uniformly to fit and
// centered.
func (s *Sampler) Fit(src image.Rectangle) image.Rectangle {
	iw, ih := float64(src.Dx()), float64(src.Dy())
	if iw <= 0 || ih <= 0 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(s.Width)/iw, float64(s.Height)/ih)
	w, h := iw*scale, ih*scale
	x0 := (float64(s.Width) - w) / 2
	y0 := (float64(s.Height) - h) / 2
	return image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x0+w)), int(math.Round(y0+h)),
	)
}

// Letterbox draws img onto a transparent canvas of the sampler's size.
func (s *Sampler) Letterbox(img image.Image) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	dst := s.Fit(img.Bounds())
	if dst.Empty() {
		return canvas
	}
	scaler := s.Scaler
	if scaler == nil {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(canvas, dst, img, img.Bounds(), draw.Src, nil)
	return canvas
}

// Points scans canvas on the gap grid, rows top to bottom, and keeps every
// cell whose alpha reaches MinAlpha. Color channels are ignored.
func (s *Sampler) Points(canvas *image.NRGBA) []dots.Point {
	gap := s.Gap
	if gap <= 0 {
		gap = 1
	}
	minAlpha := s.MinAlpha
	if minAlpha == 0 {
		minAlpha = 1
	}

	b := canvas.Bounds()
	var pts []dots.Point
	for y := b.Min.Y; y < b.Max.Y; y += gap {
		for x := b.Min.X; x < b.Max.X; x += gap {
			if canvas.Pix[canvas.PixOffset(x, y)+3] >= minAlpha {
				pts = append(pts, dots.Point{X: float64(x - b.Min.X), Y: float64(y - b.Min.Y)})
			}
		}
	}
	return pts
}

// Sample letterboxes img and returns its grid points.
func (s *Sampler) Sample(img image.Image) []dots.Point {
	return s.Points(s.Letterbox(img))
}
