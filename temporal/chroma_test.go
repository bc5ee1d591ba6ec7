package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckChromaEmptyImageFails(t *testing.T) {
	res := CheckChroma(100, 100, 100, true, "RED", 1.15)
	assert.False(t, res.Passed)
}

func TestCheckChromaRed(t *testing.T) {
	assert.True(t, CheckChroma(50, 60, 150, false, "RED", 1.15).Passed)
	assert.False(t, CheckChroma(50, 60, 55, false, "RED", 1.15).Passed)
}

func TestCheckChromaBlue(t *testing.T) {
	assert.True(t, CheckChroma(100, 60, 100, false, "BLUE", 1.15).Passed)
	assert.False(t, CheckChroma(50, 60, 100, false, "BLUE", 1.15).Passed)
}

func TestCheckChromaGreen(t *testing.T) {
	assert.True(t, CheckChroma(80, 120, 80, false, "GREEN", 1.15).Passed)
	assert.False(t, CheckChroma(80, 80, 120, false, "GREEN", 1.15).Passed)
}

func TestCheckChromaUnknownOrWhitePasses(t *testing.T) {
	assert.True(t, CheckChroma(10, 10, 10, false, "WHITE", 1.15).Passed)
	assert.True(t, CheckChroma(10, 10, 10, false, "", 1.15).Passed)
	assert.True(t, CheckChroma(10, 10, 10, false, "PURPLE", 1.15).Passed)
}

func TestCheckChromaCaseInsensitive(t *testing.T) {
	assert.True(t, CheckChroma(50, 60, 150, false, "red", 1.15).Passed)
}
