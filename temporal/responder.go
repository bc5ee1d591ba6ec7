// Package temporal checks that the signal responds to externally applied
// stimuli the way a live subject's skin would: a latency probe (C11) and a
// cross-correlation probe (C11), plus the chroma match checker (C12).
package temporal

import "math"

// StimulusRGB returns the unit RGB intensity of a stimulus color label.
func StimulusRGB(label string) (r, g, b float64) {
	switch label {
	case "RED":
		return 1, 0, 0
	case "GREEN":
		return 0, 1, 0
	case "BLUE":
		return 0, 0, 1
	default:
		return 1, 1, 1
	}
}

// LuminanceSample is one (timestamp, luminance, stimulus-label) reading.
type LuminanceSample struct {
	TimestampMs   float64
	Luminance     float64
	StimulusLabel string
}

// ColorChange records when the displayed stimulus label changed.
type ColorChange struct {
	Label       string
	TimestampMs float64
}

const (
	minLuminanceSamples = 30
	minSideSamples      = 5
	baselineWindow      = 5
	latencyRelDelta     = 0.05
)

// LatencyResult is the outcome of the latency probe.
type LatencyResult struct {
	ResponseDetected bool
	IsBiological     bool
	DelayMs          float64
}

// DetectLatency looks for the first post-flash luminance sample that
// deviates from the pre-flash baseline by more than 5%, and checks that
// the delay falls in the physiologically plausible window.
func DetectLatency(samples []LuminanceSample, lastChange *ColorChange, delayMinMs, delayMaxMs float64) LatencyResult {
	if len(samples) < minLuminanceSamples || lastChange == nil {
		return LatencyResult{}
	}
	changeT := lastChange.TimestampMs

	var pre, post []LuminanceSample
	for _, s := range samples {
		if s.TimestampMs < changeT {
			pre = append(pre, s)
		} else {
			post = append(post, s)
		}
	}
	if len(pre) < minSideSamples || len(post) < minSideSamples {
		return LatencyResult{}
	}

	baseWindow := pre[len(pre)-baselineWindow:]
	var baseline float64
	for _, s := range baseWindow {
		baseline += s.Luminance
	}
	baseline /= float64(len(baseWindow))

	for _, s := range post {
		if math.Abs(s.Luminance-baseline) > latencyRelDelta*math.Abs(baseline) {
			delay := s.TimestampMs - changeT
			return LatencyResult{
				ResponseDetected: true,
				IsBiological:     delay >= delayMinMs && delay <= delayMaxMs,
				DelayMs:          delay,
			}
		}
	}
	return LatencyResult{}
}
