package expression

import (
	"github.com/kdimtricp/facetrack/internal/geometry"
	"github.com/kdimtricp/facetrack/internal/landmarks"
)

// testShape is large enough that pixel coordinates read like the
// normalized units the thresholds are written in once face width is 100.
var testShape = geometry.Shape{Height: 1000, Width: 1000}

// face builds landmark sets in pixel coordinates of testShape.
type face struct {
	set landmarks.Set
}

// newFace returns a complete set with every point on the image centre and
// the outer eye corners 100 px apart, so the norm factor is 1.
func newFace() *face {
	f := &face{set: make(landmarks.Set, landmarks.Count)}
	for i := range f.set {
		f.set[i] = geometry.Point{X: 0.5, Y: 0.5}
	}
	f.at(landmarks.LeftEyeOuter, 450, 400)
	f.at(landmarks.RightEyeOuter, 550, 400)
	return f
}

func (f *face) at(idx int, x, y float64) *face {
	f.set[idx] = geometry.Point{
		X: x / float64(testShape.Width),
		Y: y / float64(testShape.Height),
	}
	return f
}

// mouth opens the inner lips vertically by aperture pixels.
func (f *face) mouth(aperture float64) *face {
	f.at(landmarks.MouthTop, 500, 600)
	return f.at(landmarks.MouthBottom, 500, 600+aperture)
}

// brows raises both eyebrows elevation pixels above the upper eyelids.
func (f *face) brows(elevation float64) *face {
	f.at(landmarks.LeftEyeTop, 460, 420)
	f.at(landmarks.LeftEyebrowTop, 460, 420-elevation)
	f.at(landmarks.RightEyeTop, 540, 420)
	return f.at(landmarks.RightEyebrowTop, 540, 420-elevation)
}

// surprised opens the mouth by 20 and raises the brows by 22.
func surprised() landmarks.Set {
	return newFace().mouth(20).brows(22).set
}
