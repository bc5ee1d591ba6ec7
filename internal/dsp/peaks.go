package dsp

// FindPeaks returns indices of local maxima in x that are separated by at
// least minDistance samples and have topological prominence of at least
// minProminence. Peak selection follows scipy.signal.find_peaks: compute
// all strict local maxima, compute each one's prominence by walking
// outward to the nearest higher neighbor on each side and tracking the
// lowest point passed, filter by prominence, then suppress lower peaks
// within minDistance of a higher one.
func FindPeaks(x []float64, minDistance int, minProminence float64) []int {
	n := len(x)
	if n < 3 {
		return nil
	}

	var candidates []int
	for i := 1; i < n-1; i++ {
		if x[i] > x[i-1] && x[i] >= x[i+1] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	prominent := make([]int, 0, len(candidates))
	for _, p := range candidates {
		if prominence(x, p) >= minProminence {
			prominent = append(prominent, p)
		}
	}
	if len(prominent) == 0 {
		return nil
	}
	if minDistance <= 1 {
		return prominent
	}
	return suppressByDistance(x, prominent, minDistance)
}

// prominence computes the topological prominence of the peak at index p:
// the height above the higher of the two lowest saddle points reached by
// walking left and right until a taller sample (or the array edge) is hit.
func prominence(x []float64, p int) float64 {
	height := x[p]

	leftMin := height
	for i := p - 1; i >= 0; i-- {
		if x[i] > height {
			break
		}
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}

	rightMin := height
	for i := p + 1; i < len(x); i++ {
		if x[i] > height {
			break
		}
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return height - base
}

// suppressByDistance keeps the highest peaks first and removes any
// remaining peak within minDistance samples of an already-kept peak.
func suppressByDistance(x []float64, peaks []int, minDistance int) []int {
	order := make([]int, len(peaks))
	copy(order, peaks)
	for i := 1; i < len(order); i++ {
		key := order[i]
		j := i - 1
		for j >= 0 && x[order[j]] < x[key] {
			order[j+1] = order[j]
			j--
		}
		order[j+1] = key
	}

	keep := make(map[int]bool, len(peaks))
	removed := make(map[int]bool, len(peaks))
	for _, p := range order {
		if removed[p] {
			continue
		}
		keep[p] = true
		for _, q := range peaks {
			if q == p || removed[q] || keep[q] {
				continue
			}
			d := q - p
			if d < 0 {
				d = -d
			}
			if d < minDistance {
				removed[q] = true
			}
		}
	}

	out := make([]int, 0, len(keep))
	for _, p := range peaks {
		if keep[p] {
			out = append(out, p)
		}
	}
	return out
}
