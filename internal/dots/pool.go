package dots

import "math"

// goldenAngle spreads dots that sit exactly on the center when exploding.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Pool is an arena of dot slots addressed by index.
//
// Reconcile maps sample point i to slot i. Slots are created on demand and
// are never removed; surplus slots are parked at the center and faded out so
// a later, larger shape can reuse them.
type Pool struct {
	center Point
	dots   []*Dot
}

func NewPool(width, height float64) *Pool {
	return &Pool{center: Point{X: width / 2, Y: height / 2}}
}

func (p *Pool) Center() Point { return p.center }

func (p *Pool) Len() int { return len(p.dots) }

// At returns slot i, or nil when i is out of range.
func (p *Pool) At(i int) *Dot {
	if i < 0 || i >= len(p.dots) {
		return nil
	}
	return p.dots[i]
}

func (p *Pool) Each(fn func(i int, d *Dot)) {
	for i, d := range p.dots {
		fn(i, d)
	}
}

// Reset drops every slot.
func (p *Pool) Reset() {
	p.dots = nil
}

// Reconcile retargets the pool at points and returns how many slots it had
// to create.
func (p *Pool) Reconcile(points []Point) int {
	grown := 0
	for i, pt := range points {
		if i == len(p.dots) {
			p.dots = append(p.dots, newDot(p.center))
			grown++
		}
		d := p.dots[i]
		target := pt
		d.Target = &target
		d.Visible = true
	}
	for _, d := range p.dots[min(len(points), len(p.dots)):] {
		target := p.center
		d.Target = &target
		d.Visible = false
	}
	return grown
}

// Explode sends every dot outward along the ray from the center through its
// current position, to the given radius.
func (p *Pool) Explode(radius float64) {
	for _, d := range p.dots {
		dx := d.X - p.center.X
		dy := d.Y - p.center.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			a := float64(d.ID) * goldenAngle
			dx, dy, l = math.Cos(a), math.Sin(a), 1
		}
		target := Point{
			X: p.center.X + dx/l*radius,
			Y: p.center.Y + dy/l*radius,
		}
		d.Target = &target
	}
}

// Step ticks every dot and reports whether any of them changed.
func (p *Pool) Step(params *Params) bool {
	changed := false
	for _, d := range p.dots {
		if d.Step(params) {
			changed = true
		}
	}
	return changed
}
