package expression

import "math"

// rule reports a label and its unclamped confidence when it fires.
type rule func(t Thresholds, f Features) (string, float64, bool)

// rules run in order and independently; several may fire on one face.
var rules = []rule{
	surprise,
	smile,
	tension,
	anger,
	sadness,
	concentration,
}

func surprise(t Thresholds, f Features) (string, float64, bool) {
	if f.MouthAperture > t.SurpriseMouthAperture && f.EyebrowElevation > t.SurpriseEyebrowElevation {
		return LabelSurprise, math.Min(t.SurpriseMaxConfidence, (f.MouthAperture+f.EyebrowElevation)*2), true
	}
	return "", 0, false
}

// smile separates a Duchenne smile, where the eyes narrow, from a posed one.
func smile(t Thresholds, f Features) (string, float64, bool) {
	if f.MouthWidth <= t.SmileMouthWidth || f.MouthCurvature >= t.SmileCurvature {
		return "", 0, false
	}
	if f.EyeAperture < t.GenuineEyeAperture {
		return LabelGenuineHappiness, math.Min(t.GenuineMaxConfidence, f.MouthWidth+math.Abs(f.MouthCurvature)*10), true
	}
	return LabelForcedSmile, math.Min(t.ForcedSmileMaxConfidence, f.MouthWidth), true
}

func tension(t Thresholds, f Features) (string, float64, bool) {
	var score float64
	if f.BrowGap < t.TensionBrowGap {
		score += t.TensionBrowGapWeight
	}
	if f.MouthAperture < t.TensionClosedMouth && f.MouthWidth < t.TensionNarrowMouth {
		score += t.TensionClenchWeight
	}
	if f.EyebrowElevation > t.TensionEyebrowElevation {
		score += t.TensionEyebrowWeight
	}
	if f.CheekAsymmetry > t.TensionCheekAsymmetry {
		score += t.TensionAsymmetryWeight
	}
	if score > t.TensionMinScore {
		return LabelTension, math.Min(t.TensionMaxConfidence, score), true
	}
	return "", 0, false
}

func anger(t Thresholds, f Features) (string, float64, bool) {
	if f.EyebrowElevation < t.AngerEyebrowElevation && f.BrowGap < t.AngerBrowGap && f.MouthAperture < t.AngerMouthAperture {
		return LabelAnger, math.Min(t.AngerMaxConfidence, (t.AngerConfidenceBase-f.BrowGap)*2), true
	}
	return "", 0, false
}

func sadness(t Thresholds, f Features) (string, float64, bool) {
	if f.MouthCurvature > t.SadnessCurvature && f.MouthWidth < t.SadnessMouthWidth {
		return LabelSadness, math.Min(t.SadnessMaxConfidence, f.MouthCurvature*15), true
	}
	return "", 0, false
}

func concentration(t Thresholds, f Features) (string, float64, bool) {
	if between(f.BrowGap, t.ConcentrationBrowGapMin, t.ConcentrationBrowGapMax) &&
		between(f.MouthAperture, t.ConcentrationMouthApertureMin, t.ConcentrationMouthApertureMax) &&
		between(f.MouthWidth, t.ConcentrationMouthWidthMin, t.ConcentrationMouthWidthMax) {
		return LabelConcentration, t.ConcentrationConfidence, true
	}
	return "", 0, false
}

// neutrality scores four relaxed-face indicators, 25 points each.
func neutrality(t Thresholds, f Features) float64 {
	var score float64
	if f.MouthAperture < t.NeutralMouthAperture {
		score += 25
	}
	if f.EyebrowElevation >= t.NeutralEyebrowMin && f.EyebrowElevation <= t.NeutralEyebrowMax {
		score += 25
	}
	if math.Abs(f.MouthCurvature) <= t.NeutralCurvature {
		score += 25
	}
	if f.LipThickness > t.NeutralLipThickness {
		score += 25
	}
	return score
}

// between is an open interval test.
func between(v, lo, hi float64) bool {
	return v > lo && v < hi
}
