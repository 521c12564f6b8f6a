package main

import (
	"testing"
	"time"

	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
)

func TestDecayingSine(t *testing.T) {
	t.Parallel()

	sr := beep.SampleRate(1000)
	s := decayingSine(sr, 100, 50*time.Millisecond)

	samples := make([][2]float64, 32)
	total := 0
	for {
		n, ok := s.Stream(samples)
		total += n
		if !ok {
			break
		}
		for _, sample := range samples[:n] {
			assert.LessOrEqual(t, sample[0], 0.4)
			assert.GreaterOrEqual(t, sample[0], -0.4)
			assert.Equal(t, sample[0], sample[1])
		}
	}
	assert.Equal(t, 50, total)
}

func TestRenderSound(t *testing.T) {
	t.Parallel()

	sr := beep.SampleRate(8000)
	for sound, notes := range soundNotes {
		var d time.Duration
		for _, n := range notes {
			d += n.dur
		}
		buf := renderSound(sr, notes)
		assert.Equal(t, sr.N(d), buf.Len(), "sound %s", sound)
	}

	_, ok := soundNotes[pomomo.NoSound]
	assert.False(t, ok)
}
