package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// Sampling grid stride, in canvas pixels
	Gap = 16
	// Minimum alpha (0-255) for a grid cell to count as filled
	MinAlpha = 1

	// Dot appearance
	DotRadius   = 4.0
	TopColor    = "#ff5e62"
	BottomColor = "#6a82fb"
	Background  = "#0a0c14"

	// Dot physics
	Damping     = 0.1
	AlphaGrowth = 1.1
	AlphaSeed   = 0.01
	AlphaDecay  = 0.9
	AlphaSnap   = 0.01

	// Host loop
	FPS = 60
)

var ErrInvalid = errors.New("invalid config")

// Config holds everything a host needs to build the animation.
// Zero values are never valid; start from NewDefault.
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Gap      int    `json:"gap"`
	MinAlpha uint8  `json:"min_alpha"`
	Scaler   string `json:"scaler"` // nearest, approx-bilinear, bilinear, catmull-rom

	DotRadius   float64 `json:"dot_radius"`
	TopColor    string  `json:"top_color"`
	BottomColor string  `json:"bottom_color"`
	Background  string  `json:"background"`

	Damping     float64 `json:"damping"`
	AlphaGrowth float64 `json:"alpha_growth"`
	AlphaSeed   float64 `json:"alpha_seed"`
	AlphaDecay  float64 `json:"alpha_decay"`
	AlphaSnap   float64 `json:"alpha_snap"`

	// Boundary radius used by explode; 0 means half the canvas diagonal.
	ExplodeRadius float64 `json:"explode_radius"`

	FPS    int      `json:"fps"`
	Sound  bool     `json:"sound"`
	Images []string `json:"images"`
}

// NewDefault returns the built-in configuration.
func NewDefault() *Config {
	return &Config{
		Width:       WindowWidth,
		Height:      WindowHeight,
		Gap:         Gap,
		MinAlpha:    MinAlpha,
		Scaler:      "approx-bilinear",
		DotRadius:   DotRadius,
		TopColor:    TopColor,
		BottomColor: BottomColor,
		Background:  Background,
		Damping:     Damping,
		AlphaGrowth: AlphaGrowth,
		AlphaSeed:   AlphaSeed,
		AlphaDecay:  AlphaDecay,
		AlphaSnap:   AlphaSnap,
		FPS:         FPS,
	}
}

// Load reads a JSON config file on top of the defaults.
// A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	if filename == "" {
		return cfg, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as indented JSON.
func Save(cfg *Config, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

// Validate reports the first problem found in cfg.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Gap <= 0:
		return fmt.Errorf("%w: gap %d", ErrInvalid, c.Gap)
	case c.MinAlpha == 0:
		return fmt.Errorf("%w: min_alpha must be at least 1", ErrInvalid)
	case c.DotRadius <= 0:
		return fmt.Errorf("%w: dot_radius %v", ErrInvalid, c.DotRadius)
	case c.Damping <= 0 || c.Damping > 1:
		return fmt.Errorf("%w: damping %v not in (0,1]", ErrInvalid, c.Damping)
	case c.AlphaGrowth <= 1:
		return fmt.Errorf("%w: alpha_growth %v must exceed 1", ErrInvalid, c.AlphaGrowth)
	case c.AlphaSeed <= 0 || c.AlphaSeed > 1:
		return fmt.Errorf("%w: alpha_seed %v not in (0,1]", ErrInvalid, c.AlphaSeed)
	case c.AlphaDecay <= 0 || c.AlphaDecay >= 1:
		return fmt.Errorf("%w: alpha_decay %v not in (0,1)", ErrInvalid, c.AlphaDecay)
	case c.AlphaSnap <= 0 || c.AlphaSnap >= 1:
		return fmt.Errorf("%w: alpha_snap %v not in (0,1)", ErrInvalid, c.AlphaSnap)
	case c.ExplodeRadius < 0:
		return fmt.Errorf("%w: explode_radius %v", ErrInvalid, c.ExplodeRadius)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	switch c.Scaler {
	case "nearest", "approx-bilinear", "bilinear", "catmull-rom":
	default:
		return fmt.Errorf("%w: scaler %q", ErrInvalid, c.Scaler)
	}
	for _, hex := range []string{c.TopColor, c.BottomColor, c.Background} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: color %q: %v", ErrInvalid, hex, err)
		}
	}
	return nil
}

// Colors parses the gradient endpoints and the background color.
func (c *Config) Colors() (top, bottom, background colorful.Color, err error) {
	if top, err = colorful.Hex(c.TopColor); err != nil {
		return
	}
	if bottom, err = colorful.Hex(c.BottomColor); err != nil {
		return
	}
	background, err = colorful.Hex(c.Background)
	return
}
