package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kdimtricp/facetrack/internal/expression"
)

// Analysis is one classified upload.
type Analysis struct {
	ID         string
	Image      string
	Labels     []string
	Confidence map[string]float64
	Features   expression.Features
	CreatedAt  time.Time
}

func NewAnalysis(image string, result expression.Result, features expression.Features) *Analysis {
	return &Analysis{
		ID:         uuid.New().String(),
		Image:      image,
		Labels:     append([]string(nil), result.Labels...),
		Confidence: result.Confidence,
		Features:   features,
		CreatedAt:  time.Now().UTC(),
	}
}

// Result rebuilds the classifier result the analysis was stored from.
func (a *Analysis) Result() expression.Result {
	return expression.Result{Labels: a.Labels, Confidence: a.Confidence}
}
