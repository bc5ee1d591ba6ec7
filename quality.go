package prism

import "github.com/prism-engine/prism/internal/imgproc"

// QualityFeatures are the per-frame ROI quality measurements computed
// ahead of the admission gate (§4.1).
type QualityFeatures struct {
	BlurVar         float64
	ExposureClipPct float64
	MotionScore     float64
	ROIMinDim       int
}

// QualityGateResult is the outcome of the admission gate.
type QualityGateResult struct {
	Passed  bool
	Reason  string
	Features QualityFeatures
}

// evaluateQualityGate computes the ROI quality features and applies the
// admission thresholds. prevGray is the previous frame's grayscale ROI (for
// the motion score). The returned raster is the current ROI's grayscale
// whether or not the gate passes, or prevGray unchanged when the ROI is
// missing or malformed; the caller stores it on every call.
func evaluateQualityGate(roi Frame, prevGray imgproc.Gray, cfg QualityGateConfig) (QualityGateResult, imgproc.Gray) {
	if roi.H <= 0 || roi.W <= 0 {
		return QualityGateResult{Reason: "roi_missing"}, prevGray
	}
	if len(roi.Pix) < roi.H*roi.W*3 {
		// Non-empty dimensions but a short pixel buffer: the caller handed
		// us a malformed frame rather than an absent one.
		return QualityGateResult{Reason: "roi_error"}, prevGray
	}

	gray := imgproc.ToGray(roi.H, roi.W, roi.Pix)
	features := QualityFeatures{
		BlurVar:         imgproc.LaplacianVariance(gray),
		ExposureClipPct: imgproc.ExposureClipPct(gray),
		MotionScore:     imgproc.MeanAbsDiff(gray, prevGray),
		ROIMinDim:       minInt(roi.H, roi.W),
	}

	if !cfg.Enabled {
		return QualityGateResult{Passed: true, Features: features}, gray
	}

	passed := features.ROIMinDim >= cfg.MinROISize &&
		features.BlurVar >= cfg.MinBlurVarLaplacian &&
		features.ExposureClipPct <= cfg.MaxExposureClipPct &&
		features.MotionScore <= cfg.MaxMotionScore

	result := QualityGateResult{Passed: passed, Features: features}
	if !passed {
		result.Reason = "quality_rejected"
	}
	return result, gray
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
