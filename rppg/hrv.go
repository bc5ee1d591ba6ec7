package rppg

import (
	"math"

	"github.com/prism-engine/prism/internal/dsp"
)

const (
	minHRVLength  = 30
	minPeakCount  = 3
	minRRCount    = 2
	rrLowMs       = 333.0
	rrHighMs      = 1500.0
	entropyBins   = 10
)

// HRVResult is the outcome of one HRV extraction pass over a filtered BVP
// signal (§4.4).
type HRVResult struct {
	Valid   bool
	RMSSD   float64
	SDNN    float64
	Entropy float64
}

// ExtractHRV derives heart-rate-variability metrics from the filtered BVP
// produced by the HR estimator.
func ExtractHRV(filtered []float64, fps float64, minRMSSD, minEntropy float64) HRVResult {
	if len(filtered) < minHRVLength {
		return HRVResult{}
	}
	std := dsp.StdDev(filtered)
	minDistance := int(0.4 * fps)
	peaks := dsp.FindPeaks(filtered, minDistance, 0.3*std)
	if len(peaks) < minPeakCount {
		return HRVResult{}
	}

	rr := make([]float64, 0, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		intervalMs := float64(peaks[i]-peaks[i-1]) * 1000 / fps
		if intervalMs > rrLowMs && intervalMs < rrHighMs {
			rr = append(rr, intervalMs)
		}
	}
	if len(rr) < minRRCount {
		return HRVResult{}
	}

	diffs := make([]float64, len(rr)-1)
	for i := range diffs {
		diffs[i] = rr[i+1] - rr[i]
	}
	var sumSq float64
	for _, d := range diffs {
		sumSq += d * d
	}
	rmssd := 0.0
	if len(diffs) > 0 {
		rmssd = math.Sqrt(sumSq / float64(len(diffs)))
	}
	sdnn := dsp.StdDev(rr)

	counts := dsp.Histogram(rr, entropyBins)
	entropy := dsp.ShannonEntropy(counts)

	valid := rmssd >= minRMSSD && entropy >= minEntropy

	return HRVResult{Valid: valid, RMSSD: rmssd, SDNN: sdnn, Entropy: entropy}
}
