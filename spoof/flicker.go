package spoof

import "github.com/prism-engine/prism/internal/dsp"

// FlickerResult is the outcome of the high-frequency display-flicker
// analyzer (§4.8).
type FlickerResult struct {
	Detected bool
	Ratio    float64
}

const (
	flickerWindow  = 60
	flickerEps     = 1e-8
	flickerBandLow = 0.75
	flickerBandHi  = 3.0
	flickerHighHz  = 5.0
	flickerCutoff  = 1.5
)

// AnalyzeFlicker looks for energy above the rPPG passband that a display's
// refresh/backlight PWM would inject but a real face would not. Requires
// at least flickerWindow samples of the green-channel buffer.
func AnalyzeFlicker(greenBuf []float64, fps float64) FlickerResult {
	if len(greenBuf) < flickerWindow {
		return FlickerResult{}
	}
	window := greenBuf[len(greenBuf)-flickerWindow:]
	demeaned := dsp.Demean(window)

	mag := dsp.RealMagnitude(demeaned)
	freqs := dsp.RealFreqs(len(demeaned), fps)

	var pRPPG, pHigh float64
	for i, f := range freqs {
		switch {
		case f >= flickerBandLow && f <= flickerBandHi:
			pRPPG += mag[i]
		case f > flickerHighHz:
			pHigh += mag[i]
		}
	}
	ratio := pHigh / (pRPPG + flickerEps)
	return FlickerResult{Detected: ratio > flickerCutoff, Ratio: ratio}
}
