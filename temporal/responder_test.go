package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStimulusRGB(t *testing.T) {
	r, g, b := StimulusRGB("RED")
	assert.Equal(t, [3]float64{1, 0, 0}, [3]float64{r, g, b})

	r, g, b = StimulusRGB("GREEN")
	assert.Equal(t, [3]float64{0, 1, 0}, [3]float64{r, g, b})

	r, g, b = StimulusRGB("BLUE")
	assert.Equal(t, [3]float64{0, 0, 1}, [3]float64{r, g, b})

	r, g, b = StimulusRGB("WHITE")
	assert.Equal(t, [3]float64{1, 1, 1}, [3]float64{r, g, b})
}

func TestDetectLatencyRequiresEnoughSamples(t *testing.T) {
	res := DetectLatency(nil, nil, 50, 800)
	assert.False(t, res.ResponseDetected)
}

func TestDetectLatencyFindsBiologicalDelay(t *testing.T) {
	var samples []LuminanceSample
	// 15 pre-flash samples at baseline luminance 100, one every 33ms.
	for i := 0; i < 15; i++ {
		samples = append(samples, LuminanceSample{TimestampMs: float64(i) * 33, Luminance: 100, StimulusLabel: "WHITE"})
	}
	changeT := 500.0
	// 15 post-flash samples: luminance jumps after a plausible delay.
	for i := 0; i < 15; i++ {
		t := changeT + float64(i)*33
		lum := 100.0
		if t-changeT > 150 {
			lum = 160
		}
		samples = append(samples, LuminanceSample{TimestampMs: t, Luminance: lum, StimulusLabel: "RED"})
	}
	change := &ColorChange{Label: "RED", TimestampMs: changeT}
	res := DetectLatency(samples, change, 50, 800)
	assert.True(t, res.ResponseDetected)
	assert.True(t, res.IsBiological)
	assert.Greater(t, res.DelayMs, 0.0)
}

func TestDetectLatencyOutsideWindowIsNotBiological(t *testing.T) {
	var samples []LuminanceSample
	for i := 0; i < 15; i++ {
		samples = append(samples, LuminanceSample{TimestampMs: float64(i) * 33, Luminance: 100})
	}
	changeT := 500.0
	for i := 0; i < 15; i++ {
		t := changeT + float64(i)*33
		lum := 160.0 // responds immediately, faster than any biological delay
		samples = append(samples, LuminanceSample{TimestampMs: t, Luminance: lum})
	}
	change := &ColorChange{Label: "RED", TimestampMs: changeT}
	res := DetectLatency(samples, change, 50, 800)
	assert.True(t, res.ResponseDetected)
	assert.False(t, res.IsBiological)
}
