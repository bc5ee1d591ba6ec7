package dsp

import (
	"math"
	"math/cmplx"
)

// DesignButterworthBandpass computes the (b, a) transfer-function
// coefficients of an order-N digital Butterworth bandpass filter with
// edges lowHz/highHz, sampled at fs, via the classical pipeline: an
// analog lowpass prototype, a lowpass-to-bandpass frequency transform,
// and a bilinear transform to the digital domain. No library in the
// retrieved example pack provides analog-prototype IIR filter design
// (gonum has no filter-design package), so this follows the textbook
// algorithm directly using math/cmplx for pole/zero placement.
func DesignButterworthBandpass(order int, lowHz, highHz, fs float64) (b, a []float64) {
	wa1 := prewarp(lowHz, fs)
	wa2 := prewarp(highHz, fs)
	w0 := math.Sqrt(wa1 * wa2)
	bw := wa2 - wa1

	protoPoles := butterworthPrototypePoles(order)
	zBP, pBP, kBP := lowpassToBandpass(protoPoles, w0, bw)
	zD, pD, kD := bilinearTransform(zBP, pBP, kBP, fs)

	b = polyFromRoots(zD)
	a = polyFromRoots(pD)
	for i := range b {
		b[i] *= kD
	}
	return b, a
}

// prewarp maps a digital cutoff frequency (Hz) to its pre-warped analog
// angular frequency (rad/s) ahead of the bilinear transform.
func prewarp(fHz, fs float64) float64 {
	return 2 * fs * math.Tan(math.Pi*fHz/fs)
}

// butterworthPrototypePoles returns the N poles of the normalized
// (cutoff = 1 rad/s) analog Butterworth lowpass prototype, evenly spaced
// on the left half of the unit circle.
func butterworthPrototypePoles(n int) []complex128 {
	poles := make([]complex128, n)
	for k := 0; k < n; k++ {
		theta := math.Pi*(2*float64(k)+1)/(2*float64(n)) + math.Pi/2
		poles[k] = cmplx.Rect(1, theta)
	}
	return poles
}

// lowpassToBandpass applies the s -> (s^2+w0^2)/(bw*s) transform to an
// all-pole lowpass prototype, producing the bandpass zeros, poles, and
// gain (zeros at the origin account for the relative degree).
func lowpassToBandpass(protoPoles []complex128, w0, bw float64) (zeros, poles []complex128, gain float64) {
	degree := len(protoPoles)
	poles = make([]complex128, 0, 2*degree)
	for _, p := range protoPoles {
		pScaled := p * complex(bw/2, 0)
		disc := cmplx.Sqrt(pScaled*pScaled - complex(w0*w0, 0))
		poles = append(poles, pScaled+disc, pScaled-disc)
	}
	zeros = make([]complex128, degree) // all at s=0
	gain = math.Pow(bw, float64(degree))
	return zeros, poles, gain
}

// bilinearTransform maps analog zeros/poles/gain to the digital domain
// using s = 2*fs*(z-1)/(z+1), equivalently z = (2fs+s)/(2fs-s). Zeros at
// infinity (the relative-degree shortfall between poles and zeros) map
// to z = -1.
func bilinearTransform(zeros, poles []complex128, gain, fs float64) (zD, pD []complex128, kD float64) {
	fs2 := complex(2*fs, 0)
	zD = make([]complex128, 0, len(poles))
	num := complex(1, 0)
	den := complex(1, 0)
	for _, z := range zeros {
		zD = append(zD, (fs2+z)/(fs2-z))
		num *= fs2 - z
	}
	for len(zD) < len(poles) {
		zD = append(zD, complex(-1, 0))
	}
	pD = make([]complex128, 0, len(poles))
	for _, p := range poles {
		pD = append(pD, (fs2+p)/(fs2-p))
		den *= fs2 - p
	}
	kD = gain * real(num/den)
	return zD, pD, kD
}

// polyFromRoots expands prod(x - root_i) into real polynomial coefficients
// ordered highest power first (coeffs[0]=1). Residual imaginary parts from
// floating-point rounding are discarded since roots always arrive in
// conjugate pairs.
func polyFromRoots(roots []complex128) []float64 {
	poly := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(poly)+1)
		for i, c := range poly {
			next[i] += c
			next[i+1] -= c * r
		}
		poly = next
	}
	out := make([]float64, len(poly))
	for i, c := range poly {
		out[i] = real(c)
	}
	return out
}
