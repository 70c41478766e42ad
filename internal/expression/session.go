package expression

import (
	"fmt"
	"math"

	"github.com/kdimtricp/facetrack/internal/geometry"
	"github.com/kdimtricp/facetrack/internal/landmarks"
)

// Analysis is what a Session reports for one face observation.
type Analysis struct {
	Result     Result   `json:"result"`
	Stable     []string `json:"stable"`
	Features   Features `json:"features"`
	Calibrated bool     `json:"calibrated"`
	Samples    int      `json:"samples"`
	Baseline   float64  `json:"baseline"`
}

// Session holds the per-subject state of one analysis run: calibration and,
// for video, the smoothing window. A session belongs to a single request or
// capture loop and must not be shared.
type Session struct {
	profile    Profile
	calibrator *Calibrator
	classifier *Classifier
	smoother   *Smoother
}

// NewSession starts a session for the given profile.
func NewSession(p Profile) *Session {
	s := &Session{
		profile:    p,
		calibrator: NewCalibrator(p.CalibrationFrames),
		classifier: NewClassifier(p),
	}
	if p.SmoothingWindow > 0 {
		s.smoother = NewSmoother(p.SmoothingWindow, StableCount)
	}
	return s
}

// Profile returns the profile the session was started with.
func (s *Session) Profile() Profile {
	return s.profile
}

// Calibrator exposes the session's calibration state.
func (s *Session) Calibrator() *Calibrator {
	return s.calibrator
}

// Analyze calibrates against set, extracts its features and classifies
// them. Until calibration completes the result is a single "Calibrating"
// label and the smoothing window is left untouched.
//
// Errors wrap landmarks.ErrMissing or ErrAnalysisFault; the returned
// Analysis then carries the matching sentinel label so callers can still
// render it.
func (s *Session) Analyze(set landmarks.Set, shape geometry.Shape) (Analysis, error) {
	if err := set.Validate(); err != nil {
		return sentinel(LabelMissingLandmarks), err
	}
	if !shape.Valid() {
		return sentinel(LabelAnalysisError), fmt.Errorf("%w: invalid image shape %dx%d", ErrAnalysisFault, shape.Width, shape.Height)
	}

	width := FaceWidth(set, shape)
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return sentinel(LabelAnalysisError), fmt.Errorf("%w: face width is not finite", ErrAnalysisFault)
	}

	features, err := Extract(set, shape, s.calibrator.Next(width))
	if err != nil {
		return sentinel(LabelAnalysisError), err
	}
	s.calibrator.Observe(width)

	a := Analysis{
		Features:   features,
		Calibrated: s.calibrator.Calibrated(),
		Samples:    s.calibrator.Samples(),
		Baseline:   s.calibrator.Baseline(),
	}
	if !a.Calibrated {
		a.Result = Single(LabelCalibrating, 0)
		a.Stable = a.Result.Labels
		return a, nil
	}

	a.Result = s.classifier.Classify(features)
	if s.smoother != nil {
		a.Stable = s.smoother.Push(a.Result.Labels)
	} else {
		a.Stable = a.Result.Labels
	}
	return a, nil
}

// AnalyzeImage runs a fresh single-shot session over one image.
func AnalyzeImage(p Profile, set landmarks.Set, shape geometry.Shape) (Analysis, error) {
	return NewSession(p).Analyze(set, shape)
}

func sentinel(label string) Analysis {
	r := Single(label, 0)
	return Analysis{Result: r, Stable: r.Labels}
}
