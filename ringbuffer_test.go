package prism

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingEvictsOldestPastCapacity(t *testing.T) {
	r := newRing[int](3)
	r.push(1)
	r.push(2)
	r.push(3)
	r.push(4)
	assert.Equal(t, []int{2, 3, 4}, r.items())
	assert.Equal(t, 3, r.len())
}

func TestRingLastNClampsToLength(t *testing.T) {
	r := newRing[int](5)
	r.push(1)
	r.push(2)
	assert.Equal(t, []int{1, 2}, r.last(10))
	assert.Equal(t, []int{2}, r.last(1))
}

func TestRingResetClearsButKeepsCapacity(t *testing.T) {
	r := newRing[int](3)
	r.push(1)
	r.push(2)
	r.reset()
	assert.Equal(t, 0, r.len())
	r.push(9)
	r.push(9)
	r.push(9)
	r.push(9)
	assert.Equal(t, 3, r.len())
}

func TestNewRingClampsMinimumCapacity(t *testing.T) {
	r := newRing[int](0)
	r.push(1)
	r.push(2)
	assert.Equal(t, 1, r.len())
}
