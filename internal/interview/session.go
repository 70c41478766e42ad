// Package interview follows one subject through a live capture: blinks,
// stable expressions and a state assessment for every fixed interval.
package interview

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/kdimtricp/facetrack/internal/expression"
	"github.com/kdimtricp/facetrack/internal/geometry"
	"github.com/kdimtricp/facetrack/internal/landmarks"
	"github.com/kdimtricp/facetrack/internal/timeutil"
)

// DefaultBucket is the length of one reporting interval.
const DefaultBucket = 10 * time.Second

type Options struct {
	Profile        expression.Profile
	Bucket         time.Duration
	BlinkThreshold float64
	Clock          timeutil.Clock
}

// Interval is the summary of one closed bucket.
type Interval struct {
	SessionID string
	Start     time.Time
	End       time.Time
	Blinks    int
	Frequency float64
	Labels    []string
	State     State
}

// Report describes what happened on one frame.
type Report struct {
	Frame       int
	FaceFound   bool
	Blink       bool
	Blinks      int
	Analysis    expression.Analysis
	Calibration string

	// Interval is set on the frame that closed a bucket.
	Interval *Interval
}

// Session is the state of one capture run. It is driven by a single loop
// and is not safe for concurrent use.
type Session struct {
	id       string
	clock    timeutil.Clock
	bucket   time.Duration
	analyzer *expression.Session
	blinks   *BlinkDetector

	started     time.Time
	bucketStart time.Time
	bucketCount int
	stable      []string
	frames      int
	faces       int
	intervals   []Interval
}

func NewSession(opts Options) *Session {
	if opts.Bucket <= 0 {
		opts.Bucket = DefaultBucket
	}
	if opts.Clock == nil {
		opts.Clock = timeutil.RealClock{}
	}
	now := opts.Clock.Now()
	return &Session{
		id:          uuid.New().String(),
		clock:       opts.Clock,
		bucket:      opts.Bucket,
		analyzer:    expression.NewSession(opts.Profile),
		blinks:      NewBlinkDetector(opts.BlinkThreshold),
		started:     now,
		bucketStart: now,
		stable:      []string{expression.LabelNeutral},
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Started() time.Time {
	return s.started
}

// Observe processes one frame. A nil set means no face was found: the frame
// is counted but nothing is classified. Analysis errors are returned along
// with a report carrying the matching sentinel label; the session stays
// usable.
func (s *Session) Observe(set landmarks.Set, shape geometry.Shape) (Report, error) {
	s.frames++
	r := Report{Frame: s.frames}

	var analyzeErr error
	if set != nil {
		r.FaceFound = true
		s.faces++

		a, err := s.analyzer.Analyze(set, shape)
		r.Analysis = a
		if err != nil {
			analyzeErr = err
		} else {
			if s.blinks.Update(set, shape) {
				s.bucketCount++
				r.Blink = true
			}
			if a.Calibrated {
				s.stable = a.Stable
			}
		}
	}

	r.Blinks = s.bucketCount
	r.Calibration = s.calibrationStatus()
	r.Interval = s.maybeClose()
	return r, analyzeErr
}

func (s *Session) calibrationStatus() string {
	c := s.analyzer.Calibrator()
	if c.Calibrated() {
		return "Calibrated"
	}
	return fmt.Sprintf("Calibrating %d/%d", c.Samples(), c.Required())
}

// maybeClose ends the current bucket once it has run its full length and
// calibration is complete.
func (s *Session) maybeClose() *Interval {
	now := s.clock.Now()
	if now.Sub(s.bucketStart) < s.bucket || !s.analyzer.Calibrator().Calibrated() {
		return nil
	}

	freq := float64(s.bucketCount) / s.bucket.Seconds()
	iv := Interval{
		SessionID: s.id,
		Start:     s.bucketStart,
		End:       now,
		Blinks:    s.bucketCount,
		Frequency: freq,
		Labels:    append([]string(nil), s.stable...),
		State:     Evaluate(freq, s.stable),
	}
	s.intervals = append(s.intervals, iv)
	s.bucketStart = now
	s.bucketCount = 0
	return &iv
}

// Intervals returns the buckets closed so far.
func (s *Session) Intervals() []Interval {
	return append([]Interval(nil), s.intervals...)
}

// ErrTooShort is returned by Summary when no interval was completed.
var ErrTooShort = errors.New("session too short, no interval completed")

// Summary describes a whole run.
type Summary struct {
	SessionID     string
	Duration      time.Duration
	Frames        int
	FacesSeen     int
	Intervals     int
	MeanFrequency float64
	StdFrequency  float64
	States        map[State]int
}

// Summary aggregates the closed intervals. It returns ErrTooShort, with the
// frame counts filled in, when none was completed.
func (s *Session) Summary() (Summary, error) {
	sum := Summary{
		SessionID: s.id,
		Duration:  s.clock.Since(s.started),
		Frames:    s.frames,
		FacesSeen: s.faces,
		Intervals: len(s.intervals),
		States:    make(map[State]int),
	}
	if len(s.intervals) == 0 {
		return sum, ErrTooShort
	}

	freqs := make([]float64, len(s.intervals))
	for i, iv := range s.intervals {
		freqs[i] = iv.Frequency
		sum.States[iv.State]++
	}
	sum.MeanFrequency, sum.StdFrequency = stat.MeanStdDev(freqs, nil)
	if len(freqs) == 1 {
		sum.StdFrequency = 0
	}
	return sum, nil
}
