// Package imgproc holds the small raster operations the quality gate and
// spoof analyzers share: grayscale conversion, Laplacian sharpness,
// Gaussian blur, box-filtered local moments, and channel statistics. None
// of the retrieved example repos pull in an OpenCV-equivalent imaging
// library (maruel-go-lepton represents its own raster frames directly on
// top of the standard `image` package rather than a CV dependency), so
// these operations are implemented directly over the flat BGR byte buffer
// the engine receives.
package imgproc

// Gray is a row-major grayscale raster (luma values in [0,255]).
type Gray struct {
	H, W int
	Vals []float64
}

func NewGray(h, w int) Gray {
	return Gray{H: h, W: w, Vals: make([]float64, h*w)}
}

func (g Gray) At(y, x int) float64 {
	return g.Vals[y*g.W+x]
}

func (g Gray) Set(y, x int, v float64) {
	g.Vals[y*g.W+x] = v
}

// clampIdx reflects an out-of-range coordinate back into [0, n-1].
func clampIdx(i, n int) int {
	if i < 0 {
		return -i - 1
	}
	if i >= n {
		return 2*n - i - 1
	}
	return i
}

// ToGray converts a BGR byte raster to grayscale via BT.601 luma.
func ToGray(h, w int, pix []byte) Gray {
	g := NewGray(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			b, gr, r := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])
			g.Vals[y*w+x] = 0.114*b + 0.587*gr + 0.299*r
		}
	}
	return g
}

// ChannelMeans returns the mean of each BGR channel over the whole raster.
func ChannelMeans(h, w int, pix []byte) (meanB, meanG, meanR float64) {
	n := h * w
	if n == 0 {
		return 0, 0, 0
	}
	var sb, sg, sr float64
	for i := 0; i < n; i++ {
		sb += float64(pix[i*3])
		sg += float64(pix[i*3+1])
		sr += float64(pix[i*3+2])
	}
	fn := float64(n)
	return sb / fn, sg / fn, sr / fn
}

// SplitChannel extracts a single BGR channel (0=B, 1=G, 2=R) as grayscale.
func SplitChannel(h, w int, pix []byte, channel int) Gray {
	g := NewGray(h, w)
	for i := 0; i < h*w; i++ {
		g.Vals[i] = float64(pix[i*3+channel])
	}
	return g
}

// ExposureClipPct returns the fraction of pixels at or below 5 plus the
// fraction at or above 250, over the grayscale raster.
func ExposureClipPct(g Gray) float64 {
	if len(g.Vals) == 0 {
		return 0
	}
	low, high := 0, 0
	for _, v := range g.Vals {
		if v <= 5 {
			low++
		}
		if v >= 250 {
			high++
		}
	}
	n := float64(len(g.Vals))
	return float64(low)/n + float64(high)/n
}

// MeanAbsDiff computes the mean absolute difference between two
// equally-shaped grayscale rasters; used as the frame-to-frame motion
// score. Mismatched shapes return 0 (treated as "no prior frame").
func MeanAbsDiff(a, b Gray) float64 {
	if a.H != b.H || a.W != b.W || len(a.Vals) == 0 {
		return 0
	}
	sum := 0.0
	for i := range a.Vals {
		d := a.Vals[i] - b.Vals[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(a.Vals))
}

// laplacian applies the standard 4-neighbor discrete Laplacian.
func laplacian(g Gray) Gray {
	out := NewGray(g.H, g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			up := g.At(clampIdx(y-1, g.H), x)
			down := g.At(clampIdx(y+1, g.H), x)
			left := g.At(y, clampIdx(x-1, g.W))
			right := g.At(y, clampIdx(x+1, g.W))
			out.Set(y, x, up+down+left+right-4*g.At(y, x))
		}
	}
	return out
}

// LaplacianVariance returns the variance of the Laplacian of g, the
// standard blur-detection sharpness score: sharp images have high-energy
// edges so the Laplacian response has high variance, blurred ones low.
func LaplacianVariance(g Gray) float64 {
	if len(g.Vals) == 0 {
		return 0
	}
	lap := laplacian(g)
	n := float64(len(lap.Vals))
	mean := 0.0
	for _, v := range lap.Vals {
		mean += v
	}
	mean /= n
	variance := 0.0
	for _, v := range lap.Vals {
		d := v - mean
		variance += d * d
	}
	return variance / n
}

// gaussianKernel3x3 is a normalized separable-equivalent 3x3 Gaussian blur
// kernel (sigma ~= 1).
var gaussianKernel3x3 = [3][3]float64{
	{1.0 / 16, 2.0 / 16, 1.0 / 16},
	{2.0 / 16, 4.0 / 16, 2.0 / 16},
	{1.0 / 16, 2.0 / 16, 1.0 / 16},
}

// GaussianBlur3x3 applies a 3x3 Gaussian blur with edge reflection.
func GaussianBlur3x3(g Gray) Gray {
	out := NewGray(g.H, g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			sum := 0.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					yy := clampIdx(y+dy, g.H)
					xx := clampIdx(x+dx, g.W)
					sum += g.At(yy, xx) * gaussianKernel3x3[dy+1][dx+1]
				}
			}
			out.Set(y, x, sum)
		}
	}
	return out
}

// BoxMoments computes the local mean (mu) and local mean-of-squares (mu2)
// of g under a k x k box filter (k odd), used by the texture analyzer to
// derive a local standard deviation without a second full pass.
func BoxMoments(g Gray, k int) (mu, mu2 Gray) {
	mu = NewGray(g.H, g.W)
	mu2 = NewGray(g.H, g.W)
	half := k / 2
	area := float64(k * k)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var sum, sumSq float64
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					yy := clampIdx(y+dy, g.H)
					xx := clampIdx(x+dx, g.W)
					v := g.At(yy, xx)
					sum += v
					sumSq += v * v
				}
			}
			mu.Set(y, x, sum/area)
			mu2.Set(y, x, sumSq/area)
		}
	}
	return mu, mu2
}
