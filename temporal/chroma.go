package temporal

import "strings"

// ChromaResult is the outcome of the chroma-match checker (§4.11).
type ChromaResult struct {
	Passed bool
}

// CheckChroma compares the mean channel values of the face image against
// the currently displayed stimulus color. Unknown colors (including
// "WHITE" and the empty string) pass by design: only RED, BLUE and GREEN
// carry a distinguishing channel-ratio test worth enforcing.
func CheckChroma(meanB, meanG, meanR float64, empty bool, screenColor string, sensitivity float64) ChromaResult {
	if empty {
		return ChromaResult{}
	}
	switch strings.ToUpper(screenColor) {
	case "RED":
		return ChromaResult{Passed: meanR > sensitivity*meanB}
	case "BLUE":
		return ChromaResult{Passed: meanB > 0.8*meanR}
	case "GREEN":
		return ChromaResult{Passed: meanG > 0.9*meanR && meanG > 0.9*meanB}
	default:
		return ChromaResult{Passed: true}
	}
}
