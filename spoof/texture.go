package spoof

import (
	"math"

	"github.com/prism-engine/prism/internal/imgproc"
)

// TextureResult is the outcome of the local-texture uniformity analyzer
// (§4.7).
type TextureResult struct {
	ScreenLike bool
	Score      float64
}

const (
	textureBoxSize   = 5
	screenLikeCutoff = 7.5
)

// AnalyzeTexture scores how uniform the local micro-texture of the face
// image is: skin has fine-grained variation a display panel lacks.
func AnalyzeTexture(h, w int, pix []byte) TextureResult {
	if h <= 0 || w <= 0 || len(pix) < h*w*3 {
		return TextureResult{}
	}
	gray := imgproc.ToGray(h, w, pix)
	mu, mu2 := imgproc.BoxMoments(gray, textureBoxSize)

	n := float64(len(gray.Vals))
	sum := 0.0
	for i := range gray.Vals {
		variance := mu2.Vals[i] - mu.Vals[i]*mu.Vals[i]
		if variance < 0 {
			variance = 0
		}
		sum += math.Sqrt(variance)
	}
	score := sum / n
	return TextureResult{ScreenLike: score < screenLikeCutoff, Score: score}
}
