package dsp

import "gonum.org/v1/gonum/dsp/window"

// WelchPSD estimates the power spectral density of x sampled at fs using
// Welch's method: overlapping Hamming-windowed segments, averaged
// periodograms. nperseg is clamped to len(x); overlap is fixed at 50%,
// matching the one-sided PSD convention (DC and Nyquist bins unscaled,
// all others doubled).
func WelchPSD(x []float64, fs float64, nperseg int) (freqs, psd []float64) {
	n := len(x)
	if n == 0 {
		return nil, nil
	}
	if nperseg > n {
		nperseg = n
	}
	if nperseg < 1 {
		nperseg = 1
	}
	step := nperseg / 2
	if step < 1 {
		step = nperseg
	}

	ones := make([]float64, nperseg)
	for i := range ones {
		ones[i] = 1
	}
	win := window.Hamming(ones)
	winSumSq := 0.0
	for _, w := range win {
		winSumSq += w * w
	}
	if winSumSq == 0 {
		winSumSq = 1
	}

	nbins := nperseg/2 + 1
	accum := make([]float64, nbins)
	segments := 0

	for start := 0; start+nperseg <= n; start += step {
		seg := make([]float64, nperseg)
		for i := 0; i < nperseg; i++ {
			seg[i] = x[start+i] * win[i]
		}
		mag := RealMagnitude(seg)
		for i := 0; i < nbins && i < len(mag); i++ {
			power := mag[i] * mag[i] / (fs * winSumSq)
			if i != 0 && !(nperseg%2 == 0 && i == nbins-1) {
				power *= 2
			}
			accum[i] += power
		}
		segments++
		if step == 0 {
			break
		}
	}

	if segments == 0 {
		seg := make([]float64, nperseg)
		copy(seg, x[:nperseg])
		for i := range seg {
			seg[i] *= win[i]
		}
		mag := RealMagnitude(seg)
		for i := 0; i < nbins && i < len(mag); i++ {
			power := mag[i] * mag[i] / (fs * winSumSq)
			if i != 0 && !(nperseg%2 == 0 && i == nbins-1) {
				power *= 2
			}
			accum[i] = power
		}
		segments = 1
	}

	psd = make([]float64, nbins)
	for i := range accum {
		psd[i] = accum[i] / float64(segments)
	}
	freqs = RealFreqs(nperseg, fs)
	return freqs, psd
}
