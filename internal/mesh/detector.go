// Package mesh talks to the external face-mesh service that turns images
// into 468-point landmark sets.
package mesh

import (
	"context"

	"github.com/kdimtricp/facetrack/internal/landmarks"
)

// Detector finds faces in an encoded image. No faces is an empty slice, not
// an error.
type Detector interface {
	Detect(ctx context.Context, imageData []byte) ([]landmarks.Set, error)
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(ctx context.Context, imageData []byte) ([]landmarks.Set, error)

func (f DetectorFunc) Detect(ctx context.Context, imageData []byte) ([]landmarks.Set, error) {
	return f(ctx, imageData)
}
