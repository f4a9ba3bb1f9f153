// Package anim drives the dot pool frame by frame.
//
// All pool mutation happens inside Update, on whichever goroutine runs the
// loop. Start, SetImage and Explode may be called from anywhere: they only
// leave a request that the next Update applies between ticks.
package anim

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"sync/atomic"

	"github.com/iburimskiy/dotmorph/internal/config"
	"github.com/iburimskiy/dotmorph/internal/dots"
	"github.com/iburimskiy/dotmorph/internal/logging"
	"github.com/iburimskiy/dotmorph/internal/render"
	"github.com/iburimskiy/dotmorph/internal/shape"
)

var (
	ErrInvalidCanvas = errors.New("invalid canvas")
	// ErrSuperseded is returned by SetImage when a newer call was made
	// before this one finished loading.
	ErrSuperseded = errors.New("superseded by a newer image")
)

// ImageLoader resolves a source identifier to a decoded image.
type ImageLoader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

type Option func(*Animator)

// WithLoader replaces the default file/http loader.
func WithLoader(l ImageLoader) Option {
	return func(a *Animator) { a.loader = l }
}

// WithOnShape registers fn to run on the loop goroutine each time a new
// sample set is applied.
func WithOnShape(fn func(src string, points int)) Option {
	return func(a *Animator) { a.onShape = fn }
}

type shapeRequest struct {
	src    string
	points []dots.Point
}

type Animator struct {
	pool    *dots.Pool
	params  dots.Params
	sampler *shape.Sampler
	loader  ImageLoader
	onShape func(string, int)

	background    color.NRGBA
	radius        float64
	explodeRadius float64

	gen atomic.Uint64

	mu      sync.Mutex
	reset   bool
	pending *shapeRequest
	explode bool

	dirty  bool
	frames uint64
}

// New builds an animator for the canvas described by cfg.
func New(cfg *config.Config, opts ...Option) (*Animator, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params, err := dots.NewParams(cfg)
	if err != nil {
		return nil, err
	}
	sampler, err := shape.NewSampler(cfg)
	if err != nil {
		return nil, err
	}
	_, _, bg, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	r, g, b := bg.RGB255()

	explodeRadius := cfg.ExplodeRadius
	if explodeRadius == 0 {
		explodeRadius = math.Hypot(float64(cfg.Width), float64(cfg.Height)) / 2
	}

	a := &Animator{
		pool:          dots.NewPool(float64(cfg.Width), float64(cfg.Height)),
		params:        params,
		sampler:       sampler,
		background:    color.NRGBA{R: r, G: g, B: b, A: 255},
		radius:        cfg.DotRadius,
		explodeRadius: explodeRadius,
		dirty:         true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.loader == nil {
		a.loader = shape.NewLoader(nil)
	}
	return a, nil
}

// Start empties the pool and forces a redraw on the next frame.
func (a *Animator) Start() {
	a.mu.Lock()
	a.reset = true
	a.explode = false
	a.mu.Unlock()
}

// SetImage loads src, samples it and queues the result for the next Update.
// It blocks for the duration of the load. If another SetImage call starts
// before this one finishes, this one returns ErrSuperseded and changes
// nothing.
func (a *Animator) SetImage(ctx context.Context, src string) error {
	gen := a.gen.Add(1)

	img, err := a.loader.Load(ctx, src)
	if err != nil {
		logging.Logger().Warn("image load failed", "src", src, "err", err)
		return err
	}
	return a.submit(gen, src, a.sampler.Sample(img))
}

// SetShape samples an already decoded image. It takes part in the same
// latest-wins ordering as SetImage.
func (a *Animator) SetShape(name string, img image.Image) error {
	gen := a.gen.Add(1)
	return a.submit(gen, name, a.sampler.Sample(img))
}

func (a *Animator) submit(gen uint64, src string, points []dots.Point) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen.Load() {
		logging.Logger().Debug("dropping superseded shape", "src", src, "gen", gen)
		return ErrSuperseded
	}
	a.pending = &shapeRequest{src: src, points: points}
	a.explode = false
	return nil
}

// Explode sends every dot outward to the boundary radius on the next Update.
func (a *Animator) Explode() {
	a.mu.Lock()
	a.explode = true
	a.mu.Unlock()
}

// Update applies queued requests and ticks every dot once. It reports
// whether any dot changed.
func (a *Animator) Update() bool {
	a.mu.Lock()
	reset, req, explode := a.reset, a.pending, a.explode
	a.reset, a.pending, a.explode = false, nil, false
	a.mu.Unlock()

	if reset {
		a.pool.Reset()
		a.dirty = true
	}
	if req != nil {
		grown := a.pool.Reconcile(req.points)
		logging.Logger().Debug("shape applied",
			"src", req.src, "points", len(req.points), "grown", grown, "pool", a.pool.Len())
		if a.onShape != nil {
			a.onShape(req.src, len(req.points))
		}
	}
	if explode {
		a.pool.Explode(a.explodeRadius)
	}

	changed := a.pool.Step(&a.params)
	a.dirty = a.dirty || changed
	a.frames++
	return changed
}

// Draw repaints s if anything changed since the last Draw.
func (a *Animator) Draw(s render.Surface) bool {
	if !a.dirty {
		return false
	}
	render.Dots(s, a.pool, a.background, a.radius)
	a.dirty = false
	return true
}

// Invalidate forces the next Draw to repaint. Loop goroutine only.
func (a *Animator) Invalidate() { a.dirty = true }

// Frame runs one Update followed by Draw.
func (a *Animator) Frame(s render.Surface) bool {
	a.Update()
	return a.Draw(s)
}

// FrameHook runs after every frame of Run; drawn tells whether s was
// repainted. A non-nil error stops the loop.
type FrameHook func(frame uint64, drawn bool) error

// Run renders frames onto s at the pace of sched until ctx is done, the
// scheduler runs out of frames or hook fails.
func (a *Animator) Run(ctx context.Context, sched Scheduler, s render.Surface, hook FrameHook) error {
	for {
		if err := sched.Next(ctx); err != nil {
			if errors.Is(err, ErrSchedulerDone) {
				return nil
			}
			return err
		}
		drawn := a.Frame(s)
		if hook != nil {
			if err := hook(a.frames, drawn); err != nil {
				return err
			}
		}
	}
}

// Pool exposes the dots. Only read it from the loop goroutine.
func (a *Animator) Pool() *dots.Pool { return a.pool }

// Frames is the number of Updates run so far.
func (a *Animator) Frames() uint64 { return a.frames }

// Background is the clear color.
func (a *Animator) Background() color.NRGBA { return a.background }
