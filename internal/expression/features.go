// Package expression turns face-mesh landmarks into heuristic emotion labels.
package expression

import (
	"errors"
	"fmt"
	"math"

	"github.com/kdimtricp/facetrack/internal/geometry"
	"github.com/kdimtricp/facetrack/internal/landmarks"
)

// ErrAnalysisFault is returned when a landmark set could not be read while
// extracting features: an index past the end of the set or a coordinate that
// is not a real number.
var ErrAnalysisFault = errors.New("analysis fault")

// Features are the geometric measurements the rule bank works on. Every
// distance is in pixels divided by the norm factor (face width / 100).
type Features struct {
	MouthAperture    float64 `json:"mouth_aperture"`
	MouthWidth       float64 `json:"mouth_width"`
	EyebrowElevation float64 `json:"eyebrow_elevation"`
	BrowGap          float64 `json:"brow_gap"`
	MouthCurvature   float64 `json:"mouth_curvature"`
	EyeAperture      float64 `json:"eye_aperture"`
	RightEyeAperture float64 `json:"right_eye_aperture"`
	LipThickness     float64 `json:"lip_thickness"`
	CheekAsymmetry   float64 `json:"cheek_asymmetry"`
}

// Feature names in reporting order.
const (
	FeatureMouthAperture    = "mouth_aperture"
	FeatureMouthWidth       = "mouth_width"
	FeatureEyebrowElevation = "eyebrow_elevation"
	FeatureBrowGap          = "brow_gap"
	FeatureMouthCurvature   = "mouth_curvature"
	FeatureEyeAperture      = "eye_aperture"
	FeatureRightEyeAperture = "right_eye_aperture"
	FeatureLipThickness     = "lip_thickness"
	FeatureCheekAsymmetry   = "cheek_asymmetry"
)

// FeatureNames lists every feature key returned by Features.Map.
var FeatureNames = []string{
	FeatureMouthAperture,
	FeatureMouthWidth,
	FeatureEyebrowElevation,
	FeatureBrowGap,
	FeatureMouthCurvature,
	FeatureEyeAperture,
	FeatureRightEyeAperture,
	FeatureLipThickness,
	FeatureCheekAsymmetry,
}

// Map returns the features keyed by name.
func (f Features) Map() map[string]float64 {
	return map[string]float64{
		FeatureMouthAperture:    f.MouthAperture,
		FeatureMouthWidth:       f.MouthWidth,
		FeatureEyebrowElevation: f.EyebrowElevation,
		FeatureBrowGap:          f.BrowGap,
		FeatureMouthCurvature:   f.MouthCurvature,
		FeatureEyeAperture:      f.EyeAperture,
		FeatureRightEyeAperture: f.RightEyeAperture,
		FeatureLipThickness:     f.LipThickness,
		FeatureCheekAsymmetry:   f.CheekAsymmetry,
	}
}

// NormFactor converts a face-width baseline into the divisor applied to
// pixel distances. An unset baseline normalizes by 1.
func NormFactor(baseline float64) float64 {
	if baseline <= 0 {
		return 1.0
	}
	return baseline / 100
}

// Extract measures the features of set on an image of the given shape.
// The set is expected to have been validated; a fault while reading it is
// reported as ErrAnalysisFault instead of a panic.
func Extract(set landmarks.Set, shape geometry.Shape, baseline float64) (f Features, err error) {
	defer func() {
		if r := recover(); r != nil {
			f = Features{}
			err = fmt.Errorf("%w: %v", ErrAnalysisFault, r)
		}
	}()

	nf := NormFactor(baseline)
	dist := func(a, b int) float64 {
		pa, pb := set.At(a), set.At(b)
		if !pa.Finite() || !pb.Finite() {
			panic(fmt.Sprintf("non-finite landmark at %d or %d", a, b))
		}
		return shape.PixelDistance(pa, pb) / nf
	}

	f.MouthAperture = dist(landmarks.MouthTop, landmarks.MouthBottom)
	f.MouthWidth = dist(landmarks.MouthLeft, landmarks.MouthRight)
	f.EyebrowElevation = (dist(landmarks.LeftEyebrowTop, landmarks.LeftEyeTop) +
		dist(landmarks.RightEyebrowTop, landmarks.RightEyeTop)) / 2
	f.BrowGap = dist(landmarks.LeftEyebrowInner, landmarks.RightEyebrowInner)
	f.EyeAperture = dist(landmarks.LeftEyeTop, landmarks.LeftEyeBottom)
	f.RightEyeAperture = dist(landmarks.RightEyeTop, landmarks.RightEyeBottom)
	f.LipThickness = dist(landmarks.UpperLipCenter, landmarks.LowerLipCenter)
	f.CheekAsymmetry = math.Abs(dist(landmarks.LeftCheek, landmarks.NoseTip) -
		dist(landmarks.RightCheek, landmarks.NoseTip))

	// Positive when the corners sit below the lip centre (frown).
	cornerY := (set.At(landmarks.MouthCornerLeft).Y + set.At(landmarks.MouthCornerRight).Y) / 2
	centerY := (set.At(landmarks.MouthTop).Y + set.At(landmarks.MouthBottom).Y) / 2
	f.MouthCurvature = (cornerY - centerY) * float64(shape.Height) / nf

	for name, v := range f.Map() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Features{}, fmt.Errorf("%w: feature %s is not finite", ErrAnalysisFault, name)
		}
	}
	return f, nil
}
