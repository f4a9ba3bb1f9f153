// Package audio plays a short tone whenever the dots are given a new shape.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)

	chimeLength = 180 * time.Millisecond
	chimeVolume = 0.25
	lowHz       = 330.0
	highHz      = 990.0
)

// Chime maps a shape's point count to a pitch: denser shapes ring higher.
type Chime struct {
	mu    sync.Mutex
	ready bool
}

// Init opens the speaker. Without a working audio device it returns the
// error and Play stays silent.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		return err
	}
	c.ready = true
	return nil
}

// Play rings the chime for a shape of n points.
func (c *Chime) Play(n int) {
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()
	if !ready {
		return
	}
	speaker.Play(Tone(Pitch(n), chimeLength))
}

// Pitch picks a frequency between lowHz and highHz on a log scale of n,
// saturating at 4096 points.
func Pitch(n int) float64 {
	if n <= 1 {
		return lowHz
	}
	t := math.Min(1, math.Log2(float64(n))/12)
	return lowHz + (highHz-lowHz)*t
}

// Tone is a sine at freq that decays to silence over d.
func Tone(freq float64, d time.Duration) beep.Streamer {
	total := SampleRate.N(d)
	pos := 0
	step := 2 * math.Pi * freq / float64(SampleRate)
	sine := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			env := math.Exp(-5 * float64(pos) / float64(total))
			v := chimeVolume * env * math.Sin(step*float64(pos))
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	})
	return beep.Take(total, sine)
}
