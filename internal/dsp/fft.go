package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// RealMagnitude returns |FFT(x)| for real input x, using the one-sided
// real-to-complex transform (length len(x)/2+1), the same
// fourier.NewFFT(n).Coefficients(nil, seq) pattern used for spectral
// analysis of a windowed real signal.
func RealMagnitude(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, x)
	mag := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mag[i] = cmplxAbs(c)
	}
	return mag
}

// RealFreqs returns the frequency (Hz) of each bin returned by RealMagnitude
// for a signal sampled at fs.
func RealFreqs(n int, fs float64) []float64 {
	if n == 0 {
		return nil
	}
	m := n/2 + 1
	out := make([]float64, m)
	for i := 0; i < m; i++ {
		out[i] = float64(i) * fs / float64(n)
	}
	return out
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// FFT2Magnitude computes the 2-D FFT magnitude of a real H x W image,
// using two complex-FFT passes (rows, then columns) the way a separable
// 2-D DFT decomposes into row and column 1-D transforms, followed by a
// zero-frequency shift (fftshift) so the DC component sits at the center.
func FFT2Magnitude(img [][]float64) [][]float64 {
	h := len(img)
	if h == 0 {
		return nil
	}
	w := len(img[0])
	if w == 0 {
		return nil
	}

	rowFFT := fourier.NewCmplxFFT(w)
	colFFT := fourier.NewCmplxFFT(h)

	work := make([][]complex128, h)
	for r := 0; r < h; r++ {
		row := make([]complex128, w)
		for c := 0; c < w; c++ {
			row[c] = complex(img[r][c], 0)
		}
		work[r] = rowFFT.Coefficients(nil, row)
	}

	col := make([]complex128, h)
	for c := 0; c < w; c++ {
		for r := 0; r < h; r++ {
			col[r] = work[r][c]
		}
		transformed := colFFT.Coefficients(nil, col)
		for r := 0; r < h; r++ {
			work[r][c] = transformed[r]
		}
	}

	mag := make([][]float64, h)
	for r := 0; r < h; r++ {
		mag[r] = make([]float64, w)
		for c := 0; c < w; c++ {
			mag[r][c] = cmplxAbs(work[r][c])
		}
	}
	return fftShift2D(mag)
}

// fftShift2D swaps quadrants so that the DC term moves to the center of
// the array, matching numpy.fft.fftshift applied to a 2-D array.
func fftShift2D(m [][]float64) [][]float64 {
	h := len(m)
	w := len(m[0])
	out := make([][]float64, h)
	for i := range out {
		out[i] = make([]float64, w)
	}
	rs := h / 2
	cs := w / 2
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			out[(r+rs)%h][(c+cs)%w] = m[r][c]
		}
	}
	return out
}
