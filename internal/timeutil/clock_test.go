package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClockAdvance(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	c := NewMockClock(start)

	c.Advance(10 * time.Second)

	assert.Equal(t, start.Add(10*time.Second), c.Now())
	assert.Equal(t, 10*time.Second, c.Since(start))
}

func TestMockClockSet(t *testing.T) {
	c := NewMockClock(time.Time{})
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	c.Set(at)

	assert.Equal(t, at, c.Now())
}

func TestRealClockMovesForward(t *testing.T) {
	var c Clock = RealClock{}
	start := c.Now()
	assert.GreaterOrEqual(t, c.Since(start), time.Duration(0))
}
