package landmarks

import (
	"errors"
	"fmt"

	"github.com/kdimtricp/facetrack/internal/geometry"
)

// ErrMissing is returned when a landmark set has fewer than Count points.
var ErrMissing = errors.New("missing landmarks")

// Set is one face's landmarks in normalized image coordinates.
type Set []geometry.Point

// Validate checks that the set is complete.
func (s Set) Validate() error {
	if len(s) < Count {
		return fmt.Errorf("%w: got %d of %d points", ErrMissing, len(s), Count)
	}
	return nil
}

// At returns the landmark at index i. It panics on an out-of-range index,
// like a slice access, so callers that read many points can recover once.
func (s Set) At(i int) geometry.Point {
	return s[i]
}

// Pixel is a named landmark projected into pixel space.
type Pixel struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// KeyPixels projects the KeyPoints of s into the pixel space of shape.
// Indices beyond the end of s are skipped.
func (s Set) KeyPixels(shape geometry.Shape) []Pixel {
	out := make([]Pixel, 0, len(KeyPoints))
	for _, idx := range KeyPoints {
		if idx >= len(s) {
			continue
		}
		p := shape.ToPixel(s[idx])
		out = append(out, Pixel{Index: idx, X: p.X, Y: p.Y})
	}
	return out
}
