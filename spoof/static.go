package spoof

import "github.com/prism-engine/prism/internal/dsp"

// StaticResult is the outcome of the static-signal variance analyzer
// (§4.9).
type StaticResult struct {
	IsStatic         bool
	LightingUnstable bool
	Alive            bool
	VariancePct      float64
}

const (
	staticMinSamples  = 60
	staticWindow      = 90
	lightingUnstableAbove = 25
)

// AnalyzeStatic flags a feed whose green-channel signal has implausibly
// low variance (a static photo) or implausibly high variance (unstable
// ambient lighting, which corrupts every downstream analyzer).
func AnalyzeStatic(greenBuf []float64, minSignalVariance float64) StaticResult {
	if len(greenBuf) < staticMinSamples {
		return StaticResult{}
	}
	n := staticWindow
	if n > len(greenBuf) {
		n = len(greenBuf)
	}
	window := greenBuf[len(greenBuf)-n:]

	variancePct := dsp.CoefficientOfVariationPct(window)
	isStatic := variancePct < minSignalVariance
	return StaticResult{
		IsStatic:         isStatic,
		LightingUnstable: variancePct > lightingUnstableAbove,
		Alive:            !isStatic,
		VariancePct:      variancePct,
	}
}
