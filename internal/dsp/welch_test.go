package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelchPSDFindsDominantFrequency(t *testing.T) {
	const fs = 30.0
	const freq = 1.3
	const n = 240
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i) / fs)
	}
	freqs, psd := WelchPSD(x, fs, 128)
	requireSameLen(t, freqs, psd)

	peak := 0
	for i := range psd {
		if psd[i] > psd[peak] {
			peak = i
		}
	}
	assert.InDelta(t, freq, freqs[peak], 0.3)
}

func requireSameLen(t *testing.T, a, b []float64) {
	t.Helper()
	assert.Equal(t, len(a), len(b))
}
