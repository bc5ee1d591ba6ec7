package spoof

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeTextureEmptyImage(t *testing.T) {
	res := AnalyzeTexture(0, 0, nil)
	assert.False(t, res.ScreenLike)
	assert.Equal(t, 0.0, res.Score)
}

func TestAnalyzeTextureFlatImageIsScreenLike(t *testing.T) {
	pix := make([]byte, 20*20*3)
	for i := range pix {
		pix[i] = 150
	}
	res := AnalyzeTexture(20, 20, pix)
	assert.True(t, res.ScreenLike)
	assert.Equal(t, 0.0, res.Score)
}

func TestAnalyzeTextureNoisyImageHasHigherScore(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	pix := make([]byte, 20*20*3)
	r.Read(pix)
	flat := make([]byte, 20*20*3)
	for i := range flat {
		flat[i] = 150
	}
	noisy := AnalyzeTexture(20, 20, pix)
	smooth := AnalyzeTexture(20, 20, flat)
	assert.Greater(t, noisy.Score, smooth.Score)
}
