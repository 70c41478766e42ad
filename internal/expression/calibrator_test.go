package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalibratorFirstSampleIsBaseline(t *testing.T) {
	c := NewCalibrator(30)
	set := newFace().set

	calibrated := c.Update(set, testShape)

	assert.False(t, calibrated)
	assert.Equal(t, FaceWidth(set, testShape), c.Baseline())
	assert.Equal(t, 1, c.Samples())
}

func TestCalibratorMovingAverage(t *testing.T) {
	c := NewCalibrator(2)
	c.Observe(100)
	c.Observe(200)

	assert.InDelta(t, 0.9*100+0.1*200, c.Baseline(), 1e-9)
	assert.True(t, c.Calibrated())
}

func TestCalibratorThreshold(t *testing.T) {
	tests := []struct {
		name     string
		required int
		samples  int
		want     bool
	}{
		{"video before threshold", 30, 29, false},
		{"video at threshold", 30, 30, true},
		{"image single shot", 1, 1, true},
		{"non-positive requirement", 0, 1, true},
		{"no samples", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCalibrator(tt.required)
			for i := 0; i < tt.samples; i++ {
				c.Observe(120)
			}
			assert.Equal(t, tt.want, c.Calibrated())
			assert.Equal(t, tt.samples, c.Samples())
		})
	}
}

func TestCalibratorBaselineZeroBeforeSamples(t *testing.T) {
	c := NewCalibrator(30)
	assert.Zero(t, c.Baseline())
	assert.Equal(t, 1.0, NormFactor(c.Baseline()))
}
