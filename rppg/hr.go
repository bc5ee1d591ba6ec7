package rppg

import (
	"math"

	"github.com/prism-engine/prism/internal/dsp"
)

const (
	bandLowHz  = 0.75
	bandHighHz = 3.0
	guardBins  = 2

	bpmHistoryCapacity    = 10
	rawBPMHistoryCapacity = 30
)

// HRResult is the outcome of one heart-rate estimation pass over a BVP
// window (§4.3).
type HRResult struct {
	Valid         bool
	BPMRaw        float64
	SignalQuality float64
	SmoothedBPM   float64
	FilteredBVP   []float64
}

// Estimator tracks the rolling history needed to smooth raw BPM readings
// across frames (bpm_history / raw_bpm_history in §4.3 steps 9-10).
type Estimator struct {
	fps           float64
	minBPM        float64
	maxBPM        float64
	minQuality    float64
	bpmHistory    []BPMSample
	rawBPMHistory []float64
}

// BPMSample pairs a raw BPM reading with the signal quality that produced
// it, used for the quality-weighted smoothing average.
type BPMSample struct {
	BPM     float64
	Quality float64
}

// NewEstimator builds an Estimator for the given sample rate and validity
// bounds.
func NewEstimator(fps, minBPM, maxBPM, minQuality float64) *Estimator {
	return &Estimator{fps: fps, minBPM: minBPM, maxBPM: maxBPM, minQuality: minQuality}
}

// Reset clears accumulated BPM history.
func (e *Estimator) Reset() {
	e.bpmHistory = e.bpmHistory[:0]
	e.rawBPMHistory = e.rawBPMHistory[:0]
}

// Estimate runs the §4.3 pipeline over a raw BVP window and returns the
// current smoothed BPM estimate.
func (e *Estimator) Estimate(bvp []float64) HRResult {
	n := len(bvp)
	detrended := dsp.LinearDetrend(bvp)
	std := dsp.StdDev(detrended)
	if std <= 0 {
		return HRResult{}
	}
	z := dsp.ZScore(detrended)
	if z == nil {
		return HRResult{}
	}

	nyquist := e.fps / 2
	low := clampFrac(bandLowHz/nyquist) * nyquist
	high := clampFrac(bandHighHz/nyquist) * nyquist
	b, a := dsp.DesignButterworthBandpass(3, low, high, e.fps)
	filtered := dsp.FiltFilt(b, a, z)

	nperseg := n
	if nperseg > 128 {
		nperseg = 128
	}
	freqs, psd := dsp.WelchPSD(filtered, e.fps, nperseg)

	bandIdx := make([]int, 0, len(freqs))
	for i, f := range freqs {
		if f >= bandLowHz && f <= bandHighHz {
			bandIdx = append(bandIdx, i)
		}
	}
	if len(bandIdx) == 0 {
		return HRResult{FilteredBVP: filtered}
	}

	peakIdx := bandIdx[0]
	for _, i := range bandIdx {
		if psd[i] > psd[peakIdx] {
			peakIdx = i
		}
	}
	peakPower := psd[peakIdx]

	var outsideSum float64
	var outsideCount int
	for i := range psd {
		if i >= peakIdx-guardBins && i <= peakIdx+guardBins {
			continue
		}
		outsideSum += psd[i]
		outsideCount++
	}
	meanOutside := 0.0
	if outsideCount > 0 {
		meanOutside = outsideSum / float64(outsideCount)
	}

	var snr float64
	if meanOutside > 0 {
		snr = peakPower / meanOutside
	}
	quality := clamp01(snr / 10)

	bpmRaw := freqs[peakIdx] * 60

	e.bpmHistory = pushCapped(e.bpmHistory, BPMSample{BPM: bpmRaw, Quality: quality}, bpmHistoryCapacity)
	e.rawBPMHistory = pushCapped(e.rawBPMHistory, bpmRaw, rawBPMHistoryCapacity)

	var weightedSum, weightSum float64
	for _, s := range e.bpmHistory {
		weightedSum += s.BPM * s.Quality
		weightSum += s.Quality
	}
	smoothed := 0.0
	if weightSum > 0 {
		smoothed = weightedSum / weightSum
	}

	valid := smoothed >= e.minBPM && smoothed <= e.maxBPM && quality >= e.minQuality

	return HRResult{
		Valid:         valid,
		BPMRaw:        bpmRaw,
		SignalQuality: quality,
		SmoothedBPM:   smoothed,
		FilteredBVP:   filtered,
	}
}

// clampFrac bounds a Nyquist fraction into (0.01, 0.99), per §4.3 step 3.
func clampFrac(f float64) float64 {
	return math.Max(0.01, math.Min(0.99, f))
}

// pushCapped appends v to a bounded history slice, evicting the oldest
// entry once cap is reached.
func pushCapped[T any](history []T, v T, capacity int) []T {
	if len(history) >= capacity {
		copy(history, history[1:])
		history = history[:len(history)-1]
	}
	return append(history, v)
}

// RawBPMHistory returns the raw (unsmoothed) BPM readings accumulated so
// far, used by the fusion scorer's anti-photo stability penalty.
func (e *Estimator) RawBPMHistory() []float64 {
	return e.rawBPMHistory
}
