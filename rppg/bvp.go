package rppg

import (
	"errors"
	"math"

	"github.com/prism-engine/prism/internal/dsp"
)

// ErrWindowTooShort is returned when fewer than two samples are supplied;
// standard deviation and normalization are undefined below that.
var ErrWindowTooShort = errors.New("rppg: window too short")

const chromEps = 1e-8

// ExtractBVP recovers a 1-D blood-volume-pulse signal from a window of
// per-frame channel means, per §4.2. For GREEN only g is consulted; r and
// b may be nil. For CHROM and POS all three channels are required and must
// be the same length as g.
func ExtractBVP(method Method, r, g, b []float64) ([]float64, error) {
	if len(g) < 2 {
		return nil, ErrWindowTooShort
	}
	gn := normalizeChannel(g)

	switch method {
	case GREEN:
		return gn, nil
	case CHROM:
		if len(r) != len(g) || len(b) != len(g) {
			return nil, ErrWindowTooShort
		}
		rn := normalizeChannel(r)
		bn := normalizeChannel(b)
		x := make([]float64, len(g))
		y := make([]float64, len(g))
		for i := range g {
			x[i] = 3*rn[i] - 2*gn[i]
			y[i] = 1.5*rn[i] + gn[i] - 1.5*bn[i]
		}
		alpha := chromAlpha(x, y)
		out := make([]float64, len(g))
		for i := range out {
			out[i] = x[i] - alpha*y[i]
		}
		return out, nil
	case POS:
		if len(r) != len(g) || len(b) != len(g) {
			return nil, ErrWindowTooShort
		}
		rn := normalizeChannel(r)
		bn := normalizeChannel(b)
		x := make([]float64, len(g))
		y := make([]float64, len(g))
		for i := range g {
			x[i] = gn[i] - bn[i]
			y[i] = -2*rn[i] + gn[i] + bn[i]
		}
		alpha := chromAlpha(x, y)
		out := make([]float64, len(g))
		for i := range out {
			out[i] = x[i] + alpha*y[i]
		}
		return out, nil
	default:
		return nil, ErrWindowTooShort
	}
}

// normalizeChannel divides by the channel mean (clamped away from zero)
// and subtracts 1, matching the window/m - 1 normalization in §4.2.
func normalizeChannel(x []float64) []float64 {
	m := dsp.Mean(x)
	if m < 1e-6 {
		m = 1e-6
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v/m - 1
	}
	return out
}

// chromAlpha computes std(x)/(std(y)+eps), falling back to 1 when y has no
// variance at all.
func chromAlpha(x, y []float64) float64 {
	sy := dsp.StdDev(y)
	if sy <= 0 {
		return 1
	}
	sx := dsp.StdDev(x)
	return sx / (sy + chromEps)
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
