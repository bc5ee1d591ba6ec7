package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealMagnitudeFindsDominantTone(t *testing.T) {
	const n = 256
	const fs = 64.0
	const freq = 4.0
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i) / fs)
	}
	mag := RealMagnitude(x)
	freqs := RealFreqs(n, fs)

	peak := 0
	for i := range mag {
		if mag[i] > mag[peak] {
			peak = i
		}
	}
	assert.InDelta(t, freq, freqs[peak], fs/float64(n)+1e-9)
}

func TestRealFreqsMonotonic(t *testing.T) {
	freqs := RealFreqs(16, 32)
	for i := 1; i < len(freqs); i++ {
		assert.Greater(t, freqs[i], freqs[i-1])
	}
}

func TestFFT2MagnitudeCentersDC(t *testing.T) {
	img := make([][]float64, 8)
	for y := range img {
		img[y] = make([]float64, 8)
		for x := range img[y] {
			img[y][x] = 1.0
		}
	}
	mag := FFT2Magnitude(img)
	// A constant image has all its energy at DC, which fftshift moves to
	// the center of the array.
	center := mag[4][4]
	for y := range mag {
		for x := range mag[y] {
			if y == 4 && x == 4 {
				continue
			}
			assert.LessOrEqual(t, mag[y][x], center+1e-9)
		}
	}
}
