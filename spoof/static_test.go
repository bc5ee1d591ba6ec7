package spoof

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeStaticTooFewSamples(t *testing.T) {
	res := AnalyzeStatic(make([]float64, 10), 0.4)
	assert.False(t, res.IsStatic)
	assert.False(t, res.Alive)
}

func TestAnalyzeStaticConstantSignalIsStatic(t *testing.T) {
	buf := make([]float64, 90)
	for i := range buf {
		buf[i] = 120
	}
	res := AnalyzeStatic(buf, 0.4)
	assert.True(t, res.IsStatic)
	assert.False(t, res.Alive)
	assert.Equal(t, 0.0, res.VariancePct)
}

func TestAnalyzeStaticPulsatileSignalIsAlive(t *testing.T) {
	buf := make([]float64, 90)
	for i := range buf {
		buf[i] = 120 + 5*math.Sin(2*math.Pi*1.2*float64(i)/30)
	}
	res := AnalyzeStatic(buf, 0.4)
	assert.False(t, res.IsStatic)
	assert.True(t, res.Alive)
}

func TestAnalyzeStaticUnstableLightingFlag(t *testing.T) {
	buf := make([]float64, 90)
	for i := range buf {
		if i%2 == 0 {
			buf[i] = 50
		} else {
			buf[i] = 200
		}
	}
	res := AnalyzeStatic(buf, 0.4)
	assert.True(t, res.LightingUnstable)
}
