package temporal

import (
	"math"

	"github.com/prism-engine/prism/internal/dsp"
)

// TemporalSample is one (timestamp, luminance, stimulus-intensity) reading
// fed to the cross-correlation probe.
type TemporalSample struct {
	TimestampMs float64
	Luminance   float64
	StimulusVal float64
}

const minXCorrSamples = 45
const minPairedSamples = 10

// XCorrResult is the outcome of the cross-correlation probe.
type XCorrResult struct {
	Passed   bool
	Strength float64
	DelayMs  float64
}

// DetectXCorr searches for the lag at which the response (luminance)
// signal best correlates with the stimulus signal, within [minLagMs,
// maxLagMs], and checks the correlation strength and delay against the
// configured thresholds.
func DetectXCorr(samples []TemporalSample, fps, minLagMs, maxLagMs, minCorr float64) XCorrResult {
	n := len(samples)
	if n < minXCorrSamples {
		return XCorrResult{}
	}
	response := make([]float64, n)
	stimulus := make([]float64, n)
	for i, s := range samples {
		response[i] = s.Luminance
		stimulus[i] = s.StimulusVal
	}

	rStd := dsp.StdDev(response)
	sStd := dsp.StdDev(stimulus)
	if rStd <= 1e-6 || sStd <= 1e-6 {
		return XCorrResult{}
	}
	rMean := dsp.Mean(response)
	sMean := dsp.Mean(stimulus)
	r := make([]float64, n)
	s := make([]float64, n)
	for i := range response {
		r[i] = (response[i] - rMean) / rStd
		s[i] = (stimulus[i] - sMean) / sStd
	}

	dtMs := 1000.0 / fps
	minLag := int(minLagMs / dtMs)
	maxLag := int(maxLagMs / dtMs)
	if maxLag < minLag+1 {
		maxLag = minLag + 1
	}

	bestCorr := math.Inf(-1)
	bestLag := minLag
	found := false
	for lag := minLag; lag <= maxLag; lag++ {
		count := n - lag
		if count < minPairedSamples {
			break
		}
		var sum float64
		for i := 0; i < count; i++ {
			sum += s[i] * r[i+lag]
		}
		corr := sum / float64(count)
		if !found || corr > bestCorr {
			bestCorr = corr
			bestLag = lag
			found = true
		}
	}
	if !found {
		return XCorrResult{}
	}

	delayMs := float64(bestLag) * dtMs
	passed := bestCorr >= minCorr && delayMs >= minLagMs && delayMs <= maxLagMs
	return XCorrResult{Passed: passed, Strength: bestCorr, DelayMs: delayMs}
}
