package interview

import "github.com/kdimtricp/facetrack/internal/expression"

// State is the coarse assessment of one interval.
type State string

const (
	StateNervous  State = "Nervous"
	StateStressed State = "Stressed"
	StatePositive State = "Positive"
	StateAgitated State = "Agitated"
	StateCalm     State = "Calm"
)

// NervousBlinkRate is the blink frequency, in blinks per second, above which
// an interval reads as nervous regardless of expression.
const NervousBlinkRate = 2.5

// Evaluate assesses an interval from its blink frequency and stable labels.
// The checks are ordered; the first that matches wins.
func Evaluate(frequency float64, labels []string) State {
	has := func(want string) bool {
		for _, l := range labels {
			if l == want {
				return true
			}
		}
		return false
	}

	switch {
	case frequency > NervousBlinkRate:
		return StateNervous
	case has(expression.LabelTension):
		return StateStressed
	case has(expression.LabelGenuineHappiness):
		return StatePositive
	case has(expression.LabelAnger):
		return StateAgitated
	}
	return StateCalm
}
