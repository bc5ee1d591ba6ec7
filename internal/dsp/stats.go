// Package dsp holds the numeric machinery shared by the analyzer packages:
// FFT wrappers, Butterworth bandpass design, Welch PSD estimation, peak
// picking, and the small statistics helpers every analyzer leans on.
package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// StdDev returns the (sample) standard deviation of x, or 0 for len(x)<2.
func StdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.StdDev(x, nil)
}

// Variance returns the sample variance of x, or 0 for len(x)<2.
func Variance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.Variance(x, nil)
}

// CoefficientOfVariationPct returns 100*std/max(mean,1), the "percent
// variance" measure used by the static-signal analyzer.
func CoefficientOfVariationPct(x []float64) float64 {
	m := Mean(x)
	s := StdDev(x)
	denom := m
	if denom < 1 {
		denom = 1
	}
	return 100 * s / denom
}

// ZScore returns (x-mean)/std elementwise. If std is ~0 it returns nil to
// signal a degenerate (constant) input; callers must check for that.
func ZScore(x []float64) []float64 {
	s := StdDev(x)
	if s <= 1e-12 {
		return nil
	}
	m := Mean(x)
	out := make([]float64, len(x))
	copy(out, x)
	floats.AddConst(-m, out)
	floats.Scale(1/s, out)
	return out
}

// Demean returns x with its mean subtracted elementwise.
func Demean(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	floats.AddConst(-Mean(x), out)
	return out
}

// LinearDetrend removes the best-fit line (least squares) from x and
// returns the residual. Matches scipy.signal.detrend(type="linear").
func LinearDetrend(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n < 2 {
		copy(out, x)
		return out
	}
	var sumT, sumY, sumTT, sumTY float64
	for i, y := range x {
		t := float64(i)
		sumT += t
		sumY += y
		sumTT += t * t
		sumTY += t * y
	}
	fn := float64(n)
	denom := fn*sumTT - sumT*sumT
	var slope, intercept float64
	if math.Abs(denom) > 1e-12 {
		slope = (fn*sumTY - sumT*sumY) / denom
		intercept = (sumY - slope*sumT) / fn
	} else {
		intercept = sumY / fn
	}
	for i, y := range x {
		out[i] = y - (slope*float64(i) + intercept)
	}
	return out
}

// ShannonEntropy computes the Shannon entropy (nats) of a density-normalized
// histogram, ignoring empty bins (gonum's stat.Entropy treats p_i=0 as a
// zero contribution, matching the "drop empty bins" requirement).
func ShannonEntropy(counts []float64) float64 {
	if len(counts) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total <= 0 {
		return 0
	}
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = c / total
	}
	return stat.Entropy(p)
}

// Histogram bins x into nbins equal-width bins across [min(x), max(x)] and
// returns the raw per-bin counts.
func Histogram(x []float64, nbins int) []float64 {
	counts := make([]float64, nbins)
	if len(x) == 0 || nbins <= 0 {
		return counts
	}
	lo, hi := x[0], x[0]
	for _, v := range x {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := hi - lo
	if width <= 0 {
		counts[0] = float64(len(x))
		return counts
	}
	for _, v := range x {
		idx := int((v - lo) / width * float64(nbins))
		if idx >= nbins {
			idx = nbins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return counts
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
