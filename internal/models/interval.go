package models

import (
	"time"

	"github.com/google/uuid"
)

// Interval is one closed bucket of an interview session.
type Interval struct {
	ID        string
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time
	Blinks    int
	Frequency float64
	Labels    []string
	State     string
}

func NewInterval(sessionID string, start, end time.Time, blinks int, frequency float64, labels []string, state string) *Interval {
	return &Interval{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		StartedAt: start,
		EndedAt:   end,
		Blinks:    blinks,
		Frequency: frequency,
		Labels:    append([]string(nil), labels...),
		State:     state,
	}
}
