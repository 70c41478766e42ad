package expression

import "fmt"

// Fallback selects what Classify reports when no rule fires.
type Fallback string

const (
	// FallbackNeutral reports a plain "Neutral" label.
	FallbackNeutral Fallback = "neutral"
	// FallbackNeutrality scores how neutral the face is and reports either
	// "Neutral expression" or "Ambiguous expression".
	FallbackNeutrality Fallback = "neutrality"
)

// Thresholds are the literal values the rule bank compares features against.
// All distances are in normalized units (pixels per 1/100 of face width).
type Thresholds struct {
	SurpriseMouthAperture    float64 `json:"surprise_mouth_aperture"`
	SurpriseEyebrowElevation float64 `json:"surprise_eyebrow_elevation"`
	SurpriseMaxConfidence    float64 `json:"surprise_max_confidence"`

	SmileMouthWidth          float64 `json:"smile_mouth_width"`
	SmileCurvature           float64 `json:"smile_curvature"`
	GenuineEyeAperture       float64 `json:"genuine_eye_aperture"`
	GenuineMaxConfidence     float64 `json:"genuine_max_confidence"`
	ForcedSmileMaxConfidence float64 `json:"forced_smile_max_confidence"`

	TensionBrowGap          float64 `json:"tension_brow_gap"`
	TensionBrowGapWeight    float64 `json:"tension_brow_gap_weight"`
	TensionClosedMouth      float64 `json:"tension_closed_mouth"`
	TensionNarrowMouth      float64 `json:"tension_narrow_mouth"`
	TensionClenchWeight     float64 `json:"tension_clench_weight"`
	TensionEyebrowElevation float64 `json:"tension_eyebrow_elevation"`
	TensionEyebrowWeight    float64 `json:"tension_eyebrow_weight"`
	TensionCheekAsymmetry   float64 `json:"tension_cheek_asymmetry"`
	TensionAsymmetryWeight  float64 `json:"tension_asymmetry_weight"`
	TensionMinScore         float64 `json:"tension_min_score"`
	TensionMaxConfidence    float64 `json:"tension_max_confidence"`

	AngerEyebrowElevation float64 `json:"anger_eyebrow_elevation"`
	AngerBrowGap          float64 `json:"anger_brow_gap"`
	AngerMouthAperture    float64 `json:"anger_mouth_aperture"`
	AngerMaxConfidence    float64 `json:"anger_max_confidence"`
	AngerConfidenceBase   float64 `json:"anger_confidence_base"`

	SadnessCurvature     float64 `json:"sadness_curvature"`
	SadnessMouthWidth    float64 `json:"sadness_mouth_width"`
	SadnessMaxConfidence float64 `json:"sadness_max_confidence"`

	ConcentrationBrowGapMin       float64 `json:"concentration_brow_gap_min"`
	ConcentrationBrowGapMax       float64 `json:"concentration_brow_gap_max"`
	ConcentrationMouthApertureMin float64 `json:"concentration_mouth_aperture_min"`
	ConcentrationMouthApertureMax float64 `json:"concentration_mouth_aperture_max"`
	ConcentrationMouthWidthMin    float64 `json:"concentration_mouth_width_min"`
	ConcentrationMouthWidthMax    float64 `json:"concentration_mouth_width_max"`
	ConcentrationConfidence       float64 `json:"concentration_confidence"`

	NeutralMouthAperture float64 `json:"neutral_mouth_aperture"`
	NeutralEyebrowMin    float64 `json:"neutral_eyebrow_min"`
	NeutralEyebrowMax    float64 `json:"neutral_eyebrow_max"`
	NeutralCurvature     float64 `json:"neutral_curvature"`
	NeutralLipThickness  float64 `json:"neutral_lip_thickness"`
	NeutralMinScore      float64 `json:"neutral_min_score"`
	AmbiguousConfidence  float64 `json:"ambiguous_confidence"`
}

// DefaultThresholds returns the rule bank's stock thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SurpriseMouthAperture:    15,
		SurpriseEyebrowElevation: 18,
		SurpriseMaxConfidence:    95,

		SmileMouthWidth:          45,
		SmileCurvature:           -2,
		GenuineEyeAperture:       8,
		GenuineMaxConfidence:     90,
		ForcedSmileMaxConfidence: 85,

		TensionBrowGap:          35,
		TensionBrowGapWeight:    30,
		TensionClosedMouth:      3,
		TensionNarrowMouth:      35,
		TensionClenchWeight:     25,
		TensionEyebrowElevation: 25,
		TensionEyebrowWeight:    20,
		TensionCheekAsymmetry:   3,
		TensionAsymmetryWeight:  15,
		TensionMinScore:         40,
		TensionMaxConfidence:    95,

		AngerEyebrowElevation: 10,
		AngerBrowGap:          30,
		AngerMouthAperture:    5,
		AngerMaxConfidence:    90,
		AngerConfidenceBase:   40,

		SadnessCurvature:     2,
		SadnessMouthWidth:    40,
		SadnessMaxConfidence: 85,

		ConcentrationBrowGapMin:       30,
		ConcentrationBrowGapMax:       38,
		ConcentrationMouthApertureMin: 3,
		ConcentrationMouthApertureMax: 8,
		ConcentrationMouthWidthMin:    35,
		ConcentrationMouthWidthMax:    45,
		ConcentrationConfidence:       70,

		NeutralMouthAperture: 8,
		NeutralEyebrowMin:    12,
		NeutralEyebrowMax:    20,
		NeutralCurvature:     1,
		NeutralLipThickness:  3,
		NeutralMinScore:      75,
		AmbiguousConfidence:  30,
	}
}

// Validate rejects threshold sets the rule bank cannot evaluate sensibly.
func (t Thresholds) Validate() error {
	maxima := map[string]float64{
		"surprise_max_confidence":     t.SurpriseMaxConfidence,
		"genuine_max_confidence":      t.GenuineMaxConfidence,
		"forced_smile_max_confidence": t.ForcedSmileMaxConfidence,
		"tension_max_confidence":      t.TensionMaxConfidence,
		"anger_max_confidence":        t.AngerMaxConfidence,
		"sadness_max_confidence":      t.SadnessMaxConfidence,
		"concentration_confidence":    t.ConcentrationConfidence,
		"ambiguous_confidence":        t.AmbiguousConfidence,
		"neutral_min_score":           t.NeutralMinScore,
	}
	for name, v := range maxima {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %g", name, v)
		}
	}

	ranges := []struct {
		name     string
		min, max float64
	}{
		{"concentration_brow_gap", t.ConcentrationBrowGapMin, t.ConcentrationBrowGapMax},
		{"concentration_mouth_aperture", t.ConcentrationMouthApertureMin, t.ConcentrationMouthApertureMax},
		{"concentration_mouth_width", t.ConcentrationMouthWidthMin, t.ConcentrationMouthWidthMax},
		{"neutral_eyebrow", t.NeutralEyebrowMin, t.NeutralEyebrowMax},
	}
	for _, r := range ranges {
		if r.min > r.max {
			return fmt.Errorf("%s: min %g exceeds max %g", r.name, r.min, r.max)
		}
	}

	if t.NeutralCurvature < 0 {
		return fmt.Errorf("neutral_curvature must be non-negative, got %g", t.NeutralCurvature)
	}
	return nil
}

// Profile bundles the settings that differ between the live-video and the
// single-image analysis contexts.
type Profile struct {
	Name              string
	CalibrationFrames int
	Fallback          Fallback
	Thresholds        Thresholds

	// SmoothingWindow is the number of frames the Smoother keeps; zero
	// disables smoothing.
	SmoothingWindow int
}

// VideoProfile is used for live capture: 30 calibration frames, a 5-frame
// smoothing window and a plain "Neutral" fallback.
func VideoProfile() Profile {
	return Profile{
		Name:              "video",
		CalibrationFrames: 30,
		SmoothingWindow:   5,
		Fallback:          FallbackNeutral,
		Thresholds:        DefaultThresholds(),
	}
}

// ImageProfile is used for single uploaded images. The one observation is
// its own baseline, so calibration completes on the first sample.
func ImageProfile() Profile {
	return Profile{
		Name:              "image",
		CalibrationFrames: 1,
		Fallback:          FallbackNeutrality,
		Thresholds:        DefaultThresholds(),
	}
}

// Validate checks the profile and its thresholds.
func (p Profile) Validate() error {
	if p.CalibrationFrames < 1 {
		return fmt.Errorf("profile %s: calibration_frames must be at least 1, got %d", p.Name, p.CalibrationFrames)
	}
	if p.SmoothingWindow < 0 {
		return fmt.Errorf("profile %s: smoothing_window must not be negative, got %d", p.Name, p.SmoothingWindow)
	}
	switch p.Fallback {
	case FallbackNeutral, FallbackNeutrality:
	default:
		return fmt.Errorf("profile %s: unknown fallback %q", p.Name, p.Fallback)
	}
	if err := p.Thresholds.Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return nil
}
