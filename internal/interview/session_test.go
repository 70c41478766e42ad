package interview

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdimtricp/facetrack/internal/expression"
	"github.com/kdimtricp/facetrack/internal/geometry"
	"github.com/kdimtricp/facetrack/internal/landmarks"
	"github.com/kdimtricp/facetrack/internal/timeutil"
)

var shape = geometry.Shape{Height: 1000, Width: 1000}

// faceWithEyes returns a complete set whose eyelids are gap pixels apart.
func faceWithEyes(gap float64) landmarks.Set {
	set := make(landmarks.Set, landmarks.Count)
	for i := range set {
		set[i] = geometry.Point{X: 0.5, Y: 0.5}
	}
	set[landmarks.LeftEyeOuter] = geometry.Point{X: 0.45, Y: 0.4}
	set[landmarks.RightEyeOuter] = geometry.Point{X: 0.55, Y: 0.4}
	set[landmarks.LeftEyeTop] = geometry.Point{X: 0.47, Y: 0.4}
	set[landmarks.LeftEyeBottom] = geometry.Point{X: 0.47, Y: 0.4 + gap/1000}
	set[landmarks.RightEyeTop] = geometry.Point{X: 0.53, Y: 0.4}
	set[landmarks.RightEyeBottom] = geometry.Point{X: 0.53, Y: 0.4 + gap/1000}
	return set
}

var (
	openEyes   = faceWithEyes(10)
	closedEyes = faceWithEyes(2)
)

func newTestSession(clock timeutil.Clock, calibration int) *Session {
	p := expression.VideoProfile()
	p.CalibrationFrames = calibration
	return NewSession(Options{Profile: p, Clock: clock})
}

func TestSessionClosesIntervalAfterBucket(t *testing.T) {
	start := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := timeutil.NewMockClock(start)
	s := newTestSession(clock, 2)

	frames := []landmarks.Set{openEyes, closedEyes, closedEyes, openEyes, closedEyes, openEyes, nil, openEyes, openEyes}
	for _, f := range frames {
		r, err := s.Observe(f, shape)
		require.NoError(t, err)
		assert.Nil(t, r.Interval, "bucket closed early at frame %d", r.Frame)
		clock.Advance(time.Second)
	}

	clock.Set(start.Add(10 * time.Second))
	r, err := s.Observe(openEyes, shape)
	require.NoError(t, err)
	require.NotNil(t, r.Interval)

	iv := r.Interval
	assert.Equal(t, s.ID(), iv.SessionID)
	assert.Equal(t, 2, iv.Blinks)
	assert.InDelta(t, 0.2, iv.Frequency, 1e-9)
	assert.Equal(t, start, iv.Start)
	assert.Equal(t, start.Add(10*time.Second), iv.End)
	assert.Equal(t, Evaluate(iv.Frequency, iv.Labels), iv.State)
	assert.NotEmpty(t, iv.Labels)

	// The next bucket starts empty.
	clock.Advance(time.Second)
	r, err = s.Observe(closedEyes, shape)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Blinks)
	assert.Nil(t, r.Interval)
}

func TestSessionWaitsForCalibration(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	s := newTestSession(clock, 30)

	clock.Advance(15 * time.Second)
	r, err := s.Observe(openEyes, shape)
	require.NoError(t, err)
	assert.Nil(t, r.Interval)
	assert.Equal(t, "Calibrating 1/30", r.Calibration)
	assert.Equal(t, []string{expression.LabelCalibrating}, r.Analysis.Result.Labels)
}

func TestSessionNervousInterval(t *testing.T) {
	start := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := timeutil.NewMockClock(start)
	s := newTestSession(clock, 1)

	for i := 0; i < 26; i++ {
		_, err := s.Observe(closedEyes, shape)
		require.NoError(t, err)
		clock.Advance(100 * time.Millisecond)
		_, err = s.Observe(openEyes, shape)
		require.NoError(t, err)
		clock.Advance(100 * time.Millisecond)
	}

	clock.Set(start.Add(10 * time.Second))
	r, err := s.Observe(openEyes, shape)
	require.NoError(t, err)
	require.NotNil(t, r.Interval)
	assert.Equal(t, 26, r.Interval.Blinks)
	assert.Equal(t, StateNervous, r.Interval.State)
	assert.Equal(t, "Calibrated", r.Calibration)
}

func TestSessionNoFaceFrames(t *testing.T) {
	s := newTestSession(timeutil.NewMockClock(time.Now()), 30)

	r, err := s.Observe(nil, shape)
	require.NoError(t, err)
	assert.False(t, r.FaceFound)
	assert.Equal(t, 1, r.Frame)
	assert.Equal(t, "Calibrating 0/30", r.Calibration)
}

func TestSessionMissingLandmarks(t *testing.T) {
	s := newTestSession(timeutil.NewMockClock(time.Now()), 1)

	r, err := s.Observe(make(landmarks.Set, 10), shape)
	assert.ErrorIs(t, err, landmarks.ErrMissing)
	assert.True(t, r.FaceFound)
	assert.Equal(t, []string{expression.LabelMissingLandmarks}, r.Analysis.Result.Labels)

	// The session keeps going.
	_, err = s.Observe(openEyes, shape)
	assert.NoError(t, err)
}

func TestSessionSummary(t *testing.T) {
	start := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := timeutil.NewMockClock(start)
	s := newTestSession(clock, 1)

	_, err := s.Summary()
	assert.ErrorIs(t, err, ErrTooShort)

	// Bucket one: two blinks. Bucket two: four blinks.
	for bucket, blinks := range []int{2, 4} {
		for i := 0; i < blinks; i++ {
			_, err := s.Observe(closedEyes, shape)
			require.NoError(t, err)
			_, err = s.Observe(openEyes, shape)
			require.NoError(t, err)
		}
		clock.Set(start.Add(time.Duration(bucket+1) * 10 * time.Second))
		r, err := s.Observe(openEyes, shape)
		require.NoError(t, err)
		require.NotNil(t, r.Interval)
	}

	sum, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Intervals)
	assert.Equal(t, 2*2+2*4+2, sum.Frames)
	assert.Equal(t, 20*time.Second, sum.Duration)
	assert.InDelta(t, 0.3, sum.MeanFrequency, 1e-9)
	assert.InDelta(t, math.Sqrt(0.02), sum.StdFrequency, 1e-9)
	assert.Len(t, s.Intervals(), 2)
}
