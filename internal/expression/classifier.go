package expression

import (
	"fmt"
	"strings"
)

// Labels reported by the classifier.
const (
	LabelSurprise          = "Surprise"
	LabelGenuineHappiness  = "Genuine happiness"
	LabelForcedSmile       = "Forced smile"
	LabelTension           = "Tension/Stress"
	LabelAnger             = "Anger"
	LabelSadness           = "Sadness"
	LabelConcentration     = "Concentration"
	LabelNeutral           = "Neutral"
	LabelNeutralExpression = "Neutral expression"
	LabelAmbiguous         = "Ambiguous expression"

	LabelMissingLandmarks = "Error: missing landmarks"
	LabelAnalysisError    = "Analysis error"
	LabelCalibrating      = "Calibrating"
)

// Result is the outcome of one classification. Labels keep the order the
// rules fired in; Confidence holds a percentage in [0,100] per label.
type Result struct {
	Labels     []string           `json:"labels"`
	Confidence map[string]float64 `json:"confidence"`
}

func newResult() Result {
	return Result{Confidence: make(map[string]float64)}
}

func (r *Result) add(label string, confidence float64) {
	r.Labels = append(r.Labels, label)
	r.Confidence[label] = confidence
}

// Single returns a result holding one label, used for sentinel outcomes.
func Single(label string, confidence float64) Result {
	r := newResult()
	r.add(label, confidence)
	return r
}

// Has reports whether label is among the result labels.
func (r Result) Has(label string) bool {
	for _, l := range r.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Text renders the labels as "Label (NN%), Label (NN%)".
func (r Result) Text() string {
	parts := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		if c, ok := r.Confidence[l]; ok && c > 0 {
			parts = append(parts, fmt.Sprintf("%s (%.0f%%)", l, c))
		} else {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, ", ")
}

// Classifier maps a feature vector onto emotion labels. It holds only
// configuration and is safe for concurrent use.
type Classifier struct {
	t        Thresholds
	fallback Fallback
}

// NewClassifier returns a classifier for the given profile.
func NewClassifier(p Profile) *Classifier {
	return &Classifier{t: p.Thresholds, fallback: p.Fallback}
}

// Classify evaluates every rule against f. It never returns an empty result.
func (c *Classifier) Classify(f Features) Result {
	r := newResult()
	for _, rule := range rules {
		if label, conf, ok := rule(c.t, f); ok {
			r.add(label, clamp(conf))
		}
	}
	if len(r.Labels) > 0 {
		return r
	}

	if c.fallback == FallbackNeutrality {
		score := neutrality(c.t, f)
		if score >= c.t.NeutralMinScore {
			r.add(LabelNeutralExpression, clamp(score))
		} else {
			r.add(LabelAmbiguous, clamp(c.t.AmbiguousConfidence))
		}
		return r
	}
	r.add(LabelNeutral, 0)
	return r
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
