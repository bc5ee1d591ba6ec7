// Package fusion combines the independent analyzer outputs into a single
// weighted confidence score with hard override gates (C13).
package fusion

import "github.com/prism-engine/prism/internal/dsp"

// Weights are the named per-signal contributions to the fused score,
// mirroring the teacher's named-weight scorer configuration.
type Weights struct {
	PhysicsSSS float64
	Chroma     float64
	RPPG       float64
	HRV        float64
	Temporal   float64
	Moire      float64
}

// Inputs bundles every analyzer output the fusion scorer consumes for one
// frame.
type Inputs struct {
	RPPGValid     bool
	SignalQuality float64
	RGBBufLen     int

	HRVValid bool

	SSSPassed    bool
	SSSRatio     float64
	SSSThreshold float64

	ChromaPassed bool

	TemporalResponseDetected bool
	TemporalIsBiological     bool
	XCorrPassed              bool
	XCorrStrength            float64

	MoireDetected bool

	RawBPMHistory         []float64
	BPMStabilityThreshold float64

	LightingUnstable bool

	IsStatic  bool
	Alive     bool
	GreenBufLen int

	HasFaceImage          bool
	ScreenTextureDetected bool

	ScreenFlickerDetected bool
}

// Result is the fused decision plus every intermediate diagnostic value
// named in the engine's details map contract.
type Result struct {
	Confidence        float64
	IsHuman           bool
	ForcedFalseReason string
	Diagnostics       map[string]any
}

// Score runs the eleven-step weighted fusion pass, then the hard override
// gates, per §4.12.
func Score(in Inputs, w Weights) Result {
	diag := make(map[string]any)
	score := 0.0

	// 1. rPPG
	if in.RPPGValid {
		score += w.RPPG * in.SignalQuality
	} else if in.RGBBufLen > 30 {
		score += 5
	}

	// 2. HRV
	if in.HRVValid {
		score += w.HRV
	}

	// 3. SSS
	if in.SSSPassed {
		c := dsp.Clamp((in.SSSRatio-in.SSSThreshold)/0.15, 0, 1)
		if c < 0.5 {
			c = 0.5
		}
		score += w.PhysicsSSS * c
	} else if in.SSSRatio > in.SSSThreshold-0.15 {
		score += 0.3 * w.PhysicsSSS
	}
	diag["sss_ratio"] = in.SSSRatio
	diag["physics_passed"] = in.SSSPassed

	// 4. Chroma
	if in.ChromaPassed {
		score += w.Chroma
	}
	diag["chroma_passed"] = in.ChromaPassed

	// 5. Temporal
	temporalPassed := (in.TemporalResponseDetected && in.TemporalIsBiological) || in.XCorrPassed
	if temporalPassed {
		bonus := 15 * in.XCorrStrength
		if bonus > 10 {
			bonus = 10
		}
		score += w.Temporal + bonus
	}
	diag["temporal_xcorr_passed"] = in.XCorrPassed
	diag["temporal_xcorr_strength"] = in.XCorrStrength

	// 6. Moire
	if in.MoireDetected {
		score -= 3 * w.Moire
	} else {
		score += w.Moire
	}
	diag["moire_detected"] = in.MoireDetected

	// 7. BPM stability
	bpmStabilityStd := 0.0
	if len(in.RawBPMHistory) >= 15 {
		bpmStabilityStd = dsp.StdDev(in.RawBPMHistory)
		if bpmStabilityStd > in.BPMStabilityThreshold {
			penalty := 1.5 * (bpmStabilityStd - in.BPMStabilityThreshold)
			if penalty > 30 {
				penalty = 30
			}
			score -= penalty
		}
	}
	diag["bpm_stability_std"] = bpmStabilityStd

	// 8. Lighting
	if in.LightingUnstable {
		score -= 10
	}
	diag["lighting_unstable"] = in.LightingUnstable

	// 9. Static signal
	if in.IsStatic {
		score -= 50
	} else if in.Alive {
		score += 15
	}
	diag["is_static_image"] = in.IsStatic

	// 10. Screen texture
	if in.HasFaceImage && in.ScreenTextureDetected {
		score -= 60
	}
	diag["screen_texture_detected"] = in.ScreenTextureDetected

	// 11. Screen flicker
	if in.ScreenFlickerDetected {
		score -= 40
	}
	diag["screen_flicker_detected"] = in.ScreenFlickerDetected

	confidence := dsp.Clamp(score, 0, 100)
	isHuman := confidence >= 40

	forcedReason := ""
	if in.IsStatic && in.GreenBufLen >= 60 {
		isHuman = false
		forcedReason = "static_image_low_variance"
	} else if in.ScreenTextureDetected && in.GreenBufLen >= 30 {
		isHuman = false
		forcedReason = "screen_texture_detected"
	}
	if forcedReason != "" {
		diag["forced_false_reason"] = forcedReason
	}

	return Result{
		Confidence:        confidence,
		IsHuman:           isHuman,
		ForcedFalseReason: forcedReason,
		Diagnostics:       diag,
	}
}
