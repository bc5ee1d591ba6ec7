package spoof

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomFace(h, w int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	pix := make([]byte, h*w*3)
	r.Read(pix)
	return pix
}

func TestAnalyzeSSSEmptyImage(t *testing.T) {
	res := AnalyzeSSS(0, 0, nil, 1.15)
	assert.False(t, res.Passed)
	assert.Equal(t, 0.0, res.Ratio)
}

func TestAnalyzeSSSRunsOnSyntheticFace(t *testing.T) {
	pix := randomFace(32, 32, 1)
	res := AnalyzeSSS(32, 32, pix, 1.15)
	assert.GreaterOrEqual(t, res.Ratio, 0.0)
}

func TestAnalyzeSSSClampsDegenerateRedVariance(t *testing.T) {
	// A flat image has zero Laplacian variance on every channel; varR is
	// clamped away from zero so the ratio stays finite.
	pix := make([]byte, 16*16*3)
	for i := range pix {
		pix[i] = 128
	}
	res := AnalyzeSSS(16, 16, pix, 1.15)
	assert.False(t, res.Passed)
	assert.InDelta(t, 0.0, res.Ratio, 1e-9)
}
