package rppg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syntheticBVP produces a pulsatile waveform at bpm beats/min sampled at
// fps, matching the shape a clean GREEN-channel extraction would yield.
func syntheticBVP(n int, fps, bpm, amp float64) []float64 {
	out := make([]float64, n)
	freq := bpm / 60.0
	for i := range out {
		t := float64(i) / fps
		out[i] = amp * math.Sin(2*math.Pi*freq*t)
	}
	return out
}

func TestEstimatorRecoversKnownBPM(t *testing.T) {
	const fps = 30.0
	e := NewEstimator(fps, 45, 180, 0.05)
	bvp := syntheticBVP(240, fps, 78, 1.0)
	res := e.Estimate(bvp)

	assert.InDelta(t, 78, res.BPMRaw, 6)
	assert.NotNil(t, res.FilteredBVP)
}

func TestEstimatorConstantInputInvalid(t *testing.T) {
	e := NewEstimator(30, 45, 180, 0.05)
	bvp := make([]float64, 90)
	for i := range bvp {
		bvp[i] = 120
	}
	res := e.Estimate(bvp)
	assert.False(t, res.Valid)
	assert.Equal(t, 0.0, res.SmoothedBPM)
}

func TestEstimatorHistoryIsCapped(t *testing.T) {
	const fps = 30.0
	e := NewEstimator(fps, 45, 180, 0.0)
	bvp := syntheticBVP(240, fps, 72, 1.0)
	for i := 0; i < 40; i++ {
		e.Estimate(bvp)
	}
	assert.LessOrEqual(t, len(e.bpmHistory), bpmHistoryCapacity)
	assert.LessOrEqual(t, len(e.rawBPMHistory), rawBPMHistoryCapacity)
}

func TestEstimatorResetClearsHistory(t *testing.T) {
	const fps = 30.0
	e := NewEstimator(fps, 45, 180, 0.0)
	bvp := syntheticBVP(240, fps, 72, 1.0)
	e.Estimate(bvp)
	assert.NotEmpty(t, e.RawBPMHistory())
	e.Reset()
	assert.Empty(t, e.RawBPMHistory())
}

func TestClampFracBounds(t *testing.T) {
	assert.Equal(t, 0.01, clampFrac(-5))
	assert.Equal(t, 0.99, clampFrac(5))
	assert.InDelta(t, 0.5, clampFrac(0.5), 1e-9)
}
