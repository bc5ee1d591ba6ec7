package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultWeights() Weights {
	return Weights{PhysicsSSS: 20, Chroma: 10, RPPG: 20, HRV: 10, Temporal: 15, Moire: 10}
}

func TestScoreClampsToRange(t *testing.T) {
	res := Score(Inputs{}, defaultWeights())
	assert.GreaterOrEqual(t, res.Confidence, 0.0)
	assert.LessOrEqual(t, res.Confidence, 100.0)
}

func TestScoreAllSignalsHumanIsConfident(t *testing.T) {
	in := Inputs{
		RPPGValid:                true,
		SignalQuality:            0.9,
		HRVValid:                 true,
		SSSPassed:                true,
		SSSRatio:                 1.4,
		SSSThreshold:             1.15,
		ChromaPassed:             true,
		TemporalResponseDetected: true,
		TemporalIsBiological:     true,
		XCorrPassed:              true,
		XCorrStrength:            0.6,
		MoireDetected:            false,
		Alive:                    true,
		GreenBufLen:              90,
		HasFaceImage:             true,
	}
	res := Score(in, defaultWeights())
	assert.True(t, res.IsHuman)
	assert.Empty(t, res.ForcedFalseReason)
}

func TestScoreStaticImageForcesNonHuman(t *testing.T) {
	in := Inputs{
		RPPGValid:    true,
		SSSPassed:    true,
		SSSRatio:     1.4,
		SSSThreshold: 1.15,
		ChromaPassed: true,
		IsStatic:     true,
		GreenBufLen:  60,
	}
	res := Score(in, defaultWeights())
	assert.False(t, res.IsHuman)
	assert.Equal(t, "static_image_low_variance", res.ForcedFalseReason)
}

func TestScoreStaticImageBelowWarmupDoesNotForce(t *testing.T) {
	in := Inputs{IsStatic: true, GreenBufLen: 30}
	res := Score(in, defaultWeights())
	assert.Empty(t, res.ForcedFalseReason)
}

func TestScoreScreenTextureForcesNonHuman(t *testing.T) {
	in := Inputs{
		HasFaceImage:          true,
		ScreenTextureDetected: true,
		GreenBufLen:           30,
	}
	res := Score(in, defaultWeights())
	assert.False(t, res.IsHuman)
	assert.Equal(t, "screen_texture_detected", res.ForcedFalseReason)
}

func TestScoreBPMInstabilityPenalizes(t *testing.T) {
	stable := make([]float64, 15)
	unstable := make([]float64, 15)
	for i := range stable {
		stable[i] = 72
		unstable[i] = float64(40 + 5*i)
	}
	base := Inputs{RawBPMHistory: stable, BPMStabilityThreshold: 8}
	jittery := Inputs{RawBPMHistory: unstable, BPMStabilityThreshold: 8}

	stableRes := Score(base, defaultWeights())
	jitteryRes := Score(jittery, defaultWeights())
	assert.Greater(t, stableRes.Confidence, jitteryRes.Confidence)
}

func TestScoreMoireDetectedPenalizesMoreThanBonus(t *testing.T) {
	w := defaultWeights()
	without := Score(Inputs{MoireDetected: false}, w)
	with := Score(Inputs{MoireDetected: true}, w)
	assert.Greater(t, without.Confidence, with.Confidence)
	assert.True(t, with.Diagnostics["moire_detected"].(bool))
}

func TestScoreDiagnosticsCarryRequiredKeys(t *testing.T) {
	res := Score(Inputs{}, defaultWeights())
	for _, key := range []string{
		"sss_ratio", "physics_passed", "chroma_passed",
		"temporal_xcorr_passed", "temporal_xcorr_strength",
		"moire_detected", "lighting_unstable", "is_static_image",
		"screen_texture_detected", "screen_flicker_detected",
	} {
		_, ok := res.Diagnostics[key]
		assert.True(t, ok, "missing diagnostic key %q", key)
	}
}
