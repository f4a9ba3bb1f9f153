package dots

import (
	"fmt"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/dotmorph/internal/config"
)

// Point is a canvas-space coordinate.
type Point struct {
	X, Y float64
}

// Color has 0-255 channels and a 0-1 alpha.
type Color struct {
	R, G, B float64
	A       float64
}

// NRGBA converts c for drawing.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(clamp(c.R, 0, 255))),
		G: uint8(math.Round(clamp(c.G, 0, 255))),
		B: uint8(math.Round(clamp(c.B, 0, 255))),
		A: uint8(math.Round(clamp(c.A, 0, 1) * 255)),
	}
}

var lastID atomic.Uint64

func nextID() uint64 { return lastID.Add(1) }

// Dot is one animated point. A nil Target means the dot has arrived and
// does not move.
type Dot struct {
	ID      uint64
	X, Y    float64
	Color   Color
	Target  *Point
	Visible bool
}

func newDot(at Point) *Dot {
	return &Dot{ID: nextID(), X: at.X, Y: at.Y}
}

// Motion is the movement half of a dot's state.
type Motion uint8

const (
	Idle Motion = iota
	Seeking
)

func (m Motion) String() string {
	switch m {
	case Idle:
		return "idle"
	case Seeking:
		return "seeking"
	}
	return fmt.Sprintf("Motion(%d)", uint8(m))
}

// Fade is the opacity half of a dot's state.
type Fade uint8

const (
	Stable Fade = iota
	FadingIn
	FadingOut
)

func (f Fade) String() string {
	switch f {
	case Stable:
		return "stable"
	case FadingIn:
		return "fading-in"
	case FadingOut:
		return "fading-out"
	}
	return fmt.Sprintf("Fade(%d)", uint8(f))
}

func (d *Dot) Motion() Motion {
	if d.Target == nil {
		return Idle
	}
	return Seeking
}

func (d *Dot) Fade() Fade {
	switch {
	case d.Visible && d.Color.A != 1:
		return FadingIn
	case !d.Visible && d.Color.A != 0:
		return FadingOut
	}
	return Stable
}

// Params are the per-tick constants shared by every dot.
type Params struct {
	Height      float64
	Top, Bottom colorful.Color

	Damping     float64
	AlphaGrowth float64
	AlphaSeed   float64
	AlphaDecay  float64
	AlphaSnap   float64
}

// NewParams derives tick parameters from cfg.
func NewParams(cfg *config.Config) (Params, error) {
	top, bottom, _, err := cfg.Colors()
	if err != nil {
		return Params{}, err
	}
	return Params{
		Height:      float64(cfg.Height),
		Top:         top,
		Bottom:      bottom,
		Damping:     cfg.Damping,
		AlphaGrowth: cfg.AlphaGrowth,
		AlphaSeed:   cfg.AlphaSeed,
		AlphaDecay:  cfg.AlphaDecay,
		AlphaSnap:   cfg.AlphaSnap,
	}, nil
}

// Gradient returns the 0-255 channels for vertical position y.
func (p *Params) Gradient(y float64) (r, g, b float64) {
	t := 0.0
	if p.Height > 0 {
		t = clamp(y/p.Height, 0, 1)
	}
	c := p.Top.BlendRgb(p.Bottom, t)
	return c.R * 255, c.G * 255, c.B * 255
}

// Step advances d by one tick and reports whether anything drawable changed.
func (d *Dot) Step(p *Params) bool {
	changed := false

	if d.Target != nil {
		dx := d.Target.X - d.X
		dy := d.Target.Y - d.Y
		if math.Hypot(dx, dy) > 1 {
			d.X += dx * p.Damping
			d.Y += dy * p.Damping
			changed = true
		} else {
			d.Target = nil
		}
	}

	r, g, b := p.Gradient(d.Y)
	if r != d.Color.R || g != d.Color.G || b != d.Color.B {
		d.Color.R, d.Color.G, d.Color.B = r, g, b
		changed = true
	}

	switch {
	case d.Visible && d.Color.A != 1:
		if d.Color.A == 0 {
			d.Color.A = p.AlphaSeed
		} else {
			d.Color.A = math.Min(1, d.Color.A*p.AlphaGrowth)
		}
		changed = true
	case !d.Visible && d.Color.A != 0:
		d.Color.A *= p.AlphaDecay
		if d.Color.A < p.AlphaSnap {
			d.Color.A = 0
		}
		changed = true
	}

	return changed
}

// DecayTicks is the number of ticks a fully opaque, invisible dot needs to
// reach alpha 0.
func DecayTicks(decay, snap float64) int {
	return int(math.Floor(math.Log(snap)/math.Log(decay))) + 1
}

// GrowTicks is the number of ticks a transparent, visible dot needs to reach
// alpha 1. The first tick only plants the seed.
func GrowTicks(seed, growth float64) int {
	return 1 + int(math.Ceil(math.Log(1/seed)/math.Log(growth)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
