package interview

import (
	"github.com/kdimtricp/facetrack/internal/geometry"
	"github.com/kdimtricp/facetrack/internal/landmarks"
)

// DefaultBlinkThreshold is the mean eyelid gap, in pixels, under which the
// eyes count as closed.
const DefaultBlinkThreshold = 4.0

// BlinkDetector counts a blink each time the eyes go from open to closed.
type BlinkDetector struct {
	threshold float64
	closed    bool
}

func NewBlinkDetector(threshold float64) *BlinkDetector {
	if threshold <= 0 {
		threshold = DefaultBlinkThreshold
	}
	return &BlinkDetector{threshold: threshold}
}

// EyeGap is the mean pixel distance between the upper and lower eyelids of
// both eyes.
func EyeGap(set landmarks.Set, shape geometry.Shape) float64 {
	left := shape.PixelDistance(set.At(landmarks.LeftEyeTop), set.At(landmarks.LeftEyeBottom))
	right := shape.PixelDistance(set.At(landmarks.RightEyeTop), set.At(landmarks.RightEyeBottom))
	return (left + right) / 2
}

// Update feeds one frame and reports whether a new blink started on it.
// The set must be complete.
func (b *BlinkDetector) Update(set landmarks.Set, shape geometry.Shape) bool {
	return b.Observe(EyeGap(set, shape))
}

// Observe feeds a raw eyelid gap.
func (b *BlinkDetector) Observe(gap float64) bool {
	closed := gap < b.threshold
	started := closed && !b.closed
	b.closed = closed
	return started
}

// Closed reports whether the eyes were closed on the last frame.
func (b *BlinkDetector) Closed() bool {
	return b.closed
}
