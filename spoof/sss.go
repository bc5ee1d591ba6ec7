// Package spoof holds the independent anti-spoofing analyzers: subsurface
// scattering, moiré screen detection, local-texture uniformity, display
// flicker, and static-signal variance (C6-C10).
package spoof

import "github.com/prism-engine/prism/internal/imgproc"

// SSSResult is the outcome of the subsurface-scattering analyzer (§4.5).
type SSSResult struct {
	Passed bool
	Ratio  float64
}

const minVarR = 0.001

// AnalyzeSSS compares the sharpness of the blue and red channels after a
// Gaussian blur. Red light penetrates skin and scatters, blurring its
// Laplacian response; blue reflects off the epidermis and stays sharp. A
// screen reproduces both channels at the display's native sharpness, so
// the ratio collapses toward 1.
func AnalyzeSSS(h, w int, pix []byte, threshold float64) SSSResult {
	if h <= 0 || w <= 0 || len(pix) < h*w*3 {
		return SSSResult{}
	}
	b := imgproc.GaussianBlur3x3(imgproc.SplitChannel(h, w, pix, 0))
	r := imgproc.GaussianBlur3x3(imgproc.SplitChannel(h, w, pix, 2))

	varB := imgproc.LaplacianVariance(b)
	varR := imgproc.LaplacianVariance(r)
	if varR < minVarR {
		varR = minVarR
	}
	ratio := varB / varR
	return SSSResult{Passed: ratio > threshold, Ratio: ratio}
}
