// Package imaging decodes uploads and scales them down for display and
// detection.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"

	"github.com/kdimtricp/facetrack/internal/geometry"
)

// ErrUnsupported is returned for data that is not a decodable image.
var ErrUnsupported = errors.New("unsupported image format")

// MaxPixels caps the decoded canvas of an upload, checked from the header
// before any pixel is allocated.
const MaxPixels = 40_000_000

// Image is an encoded JPEG together with its pixel size.
type Image struct {
	Data    []byte
	Width   int
	Height  int
	Resized bool
}

// Shape returns the pixel size of the image.
func (i Image) Shape() geometry.Shape {
	return geometry.Shape{Height: i.Height, Width: i.Width}
}

// Fit decodes data and scales it down, preserving aspect ratio, until it
// fits within maxWidth x maxHeight. Images that already fit are never
// enlarged. The result is always JPEG. Images larger than MaxPixels are
// rejected with ErrUnsupported.
func Fit(data []byte, maxWidth, maxHeight int) (Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return Image{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnsupported, cfg.Width, cfg.Height, MaxPixels)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	size := src.Bounds().Size()
	if size.X <= maxWidth && size.Y <= maxHeight {
		if format == "jpeg" {
			return Image{Data: data, Width: size.X, Height: size.Y}, nil
		}
		return encode(src, false)
	}

	return encode(resize.Thumbnail(uint(maxWidth), uint(maxHeight), src, resize.Lanczos3), true)
}

func encode(img image.Image, resized bool) (Image, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return Image{}, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	size := img.Bounds().Size()
	return Image{Data: buf.Bytes(), Width: size.X, Height: size.Y, Resized: resized}, nil
}
