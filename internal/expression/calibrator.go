package expression

import (
	"github.com/kdimtricp/facetrack/internal/geometry"
	"github.com/kdimtricp/facetrack/internal/landmarks"
)

const baselineSmoothing = 0.1

// Calibrator tracks the subject's face width so distance thresholds hold
// regardless of how far the face is from the camera. The first sample is
// taken as is; later samples are folded in with an exponential moving
// average (0.9 old + 0.1 new).
type Calibrator struct {
	required int
	baseline float64
	samples  int
}

// NewCalibrator returns a calibrator that reports calibrated after the given
// number of samples.
func NewCalibrator(required int) *Calibrator {
	if required < 1 {
		required = 1
	}
	return &Calibrator{required: required}
}

// FaceWidth is the pixel distance between the outer eye corners.
func FaceWidth(set landmarks.Set, shape geometry.Shape) float64 {
	return shape.PixelDistance(set.At(landmarks.LeftEyeOuter), set.At(landmarks.RightEyeOuter))
}

// Update folds one observation into the baseline and reports whether enough
// samples have been seen.
func (c *Calibrator) Update(set landmarks.Set, shape geometry.Shape) bool {
	c.Observe(FaceWidth(set, shape))
	return c.Calibrated()
}

// Observe folds a raw face width into the baseline.
func (c *Calibrator) Observe(width float64) {
	c.baseline = c.Next(width)
	c.samples++
}

// Next returns the baseline Observe(width) would produce, without applying it.
func (c *Calibrator) Next(width float64) float64 {
	if c.samples == 0 {
		return width
	}
	return (1-baselineSmoothing)*c.baseline + baselineSmoothing*width
}

// Baseline returns the current face width estimate, zero before any sample.
func (c *Calibrator) Baseline() float64 {
	return c.baseline
}

// Samples returns how many observations have been folded in.
func (c *Calibrator) Samples() int {
	return c.samples
}

// Required returns the sample count needed to be calibrated.
func (c *Calibrator) Required() int {
	return c.required
}

// Calibrated reports whether the baseline is trusted.
func (c *Calibrator) Calibrated() bool {
	return c.samples >= c.required
}
