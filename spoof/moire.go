package spoof

import (
	"math"

	"github.com/prism-engine/prism/internal/dsp"
	"github.com/prism-engine/prism/internal/imgproc"
)

// MoireResult is the outcome of the moiré screen-replay analyzer (§4.6).
type MoireResult struct {
	Detected bool
	Score    float64
}

const moireMaskHalf = 10

// AnalyzeMoire looks for the high-frequency interference pattern a
// recaptured display produces: grayscale, 2-D FFT with the DC term
// centered, log-compressed and max-normalized magnitude, with the central
// low-frequency neighborhood masked out so only the moiré sidebands
// remain.
func AnalyzeMoire(h, w int, pix []byte, moireThreshold float64) MoireResult {
	if h <= 0 || w <= 0 || len(pix) < h*w*3 {
		return MoireResult{}
	}
	gray := imgproc.ToGray(h, w, pix)
	rows := make([][]float64, h)
	for y := 0; y < h; y++ {
		rows[y] = append([]float64(nil), gray.Vals[y*w:(y+1)*w]...)
	}
	mag := dsp.FFT2Magnitude(rows)

	maxV := 0.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := math.Log1p(mag[y][x])
			mag[y][x] = v
			if v > maxV {
				maxV = v
			}
		}
	}
	if maxV <= 1e-10 {
		return MoireResult{}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mag[y][x] /= maxV
		}
	}

	cy, cx := h/2, w/2
	for y := cy - moireMaskHalf; y < cy+moireMaskHalf; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := cx - moireMaskHalf; x < cx+moireMaskHalf; x++ {
			if x < 0 || x >= w {
				continue
			}
			mag[y][x] = 0
		}
	}

	var maxMasked, posSum float64
	var posCount int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := mag[y][x]
			if v > maxMasked {
				maxMasked = v
			}
			if v > 0 {
				posSum += v
				posCount++
			}
		}
	}
	meanPos := 0.0
	if posCount > 0 {
		meanPos = posSum / float64(posCount)
	}
	score := 0.0
	if meanPos > 0 {
		score = maxMasked / meanPos
	}
	detected := moireThreshold > 0 && score > 1/moireThreshold
	return MoireResult{Detected: detected, Score: score}
}
