package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPitch(t *testing.T) {
	assert.Equal(t, lowHz, Pitch(0))
	assert.Equal(t, lowHz, Pitch(1))
	assert.Equal(t, highHz, Pitch(4096))
	assert.Equal(t, highHz, Pitch(1_000_000))
	assert.Less(t, Pitch(10), Pitch(100))
}

func TestToneLengthAndLevel(t *testing.T) {
	s := Tone(440, 100*time.Millisecond)
	buf := make([][2]float64, 1024)

	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			assert.Equal(t, smp[0], smp[1])
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, SampleRate.N(100*time.Millisecond), total)
	assert.LessOrEqual(t, peak, chimeVolume)
	assert.Greater(t, peak, chimeVolume/2)
}

func TestPlayWithoutInitIsSilent(t *testing.T) {
	var c Chime
	assert.NotPanics(t, func() { c.Play(100) })
}
