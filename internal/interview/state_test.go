package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdimtricp/facetrack/internal/expression"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		frequency float64
		labels    []string
		want      State
	}{
		{"high blink rate wins", 2.6, []string{expression.LabelGenuineHappiness}, StateNervous},
		{"rate at limit is not nervous", 2.5, []string{expression.LabelNeutral}, StateCalm},
		{"tension", 0.3, []string{expression.LabelSurprise, expression.LabelTension}, StateStressed},
		{"tension before happiness", 0.3, []string{expression.LabelGenuineHappiness, expression.LabelTension}, StateStressed},
		{"happiness", 0.3, []string{expression.LabelGenuineHappiness}, StatePositive},
		{"forced smile is not positive", 0.3, []string{expression.LabelForcedSmile}, StateCalm},
		{"anger", 0.1, []string{expression.LabelAnger}, StateAgitated},
		{"nothing notable", 0, nil, StateCalm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.frequency, tt.labels))
		})
	}
}

func TestBlinkDetectorCountsClosingEdges(t *testing.T) {
	b := NewBlinkDetector(DefaultBlinkThreshold)
	gaps := []float64{8, 3, 2, 3, 9, 1, 7, 7, 3.99}
	var blinks int
	for _, g := range gaps {
		if b.Observe(g) {
			blinks++
		}
	}
	assert.Equal(t, 3, blinks)
	assert.True(t, b.Closed())
}

func TestEyeGap(t *testing.T) {
	assert.InDelta(t, 10, EyeGap(openEyes, shape), 1e-9)
	assert.InDelta(t, 2, EyeGap(closedEyes, shape), 1e-9)
}
