package interview

import (
	"context"
	"errors"
	"io"

	"github.com/kdimtricp/facetrack/internal/landmarks"
	"github.com/kdimtricp/facetrack/internal/mesh"
	"github.com/kdimtricp/facetrack/internal/metrics"
	"github.com/kdimtricp/facetrack/internal/models"
	"github.com/kdimtricp/facetrack/internal/monitoring"
)

var logf = monitoring.Tagged("interview")

// FrameSource yields captured frames until io.EOF.
type FrameSource interface {
	Next(ctx context.Context) (mesh.Frame, error)
}

type teeSource struct {
	src FrameSource
	w   *mesh.StreamWriter
}

// Tee returns a source that also writes every frame it yields to w, so a
// session can be replayed later from the file.
func Tee(src FrameSource, w *mesh.StreamWriter) FrameSource {
	return &teeSource{src: src, w: w}
}

func (t *teeSource) Next(ctx context.Context) (mesh.Frame, error) {
	f, err := t.src.Next(ctx)
	if err != nil {
		return f, err
	}
	if err := t.w.Write(f); err != nil {
		logf("failed to record frame %d: %v", f.Seq, err)
	}
	return f, nil
}

// Sink receives every closed interval.
type Sink interface {
	Record(ctx context.Context, iv Interval) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, iv Interval) error

func (f SinkFunc) Record(ctx context.Context, iv Interval) error {
	return f(ctx, iv)
}

// CSVSink appends one row per interval to log.
func CSVSink(log *metrics.CSVLog) Sink {
	return SinkFunc(func(_ context.Context, iv Interval) error {
		return log.Append(metrics.IntervalRow{
			Time:      iv.End,
			Blinks:    iv.Blinks,
			Frequency: iv.Frequency,
			Labels:    iv.Labels,
			State:     string(iv.State),
		})
	})
}

// IntervalStore persists interval history.
type IntervalStore interface {
	Create(ctx context.Context, iv *models.Interval) error
}

// StoreSink writes each interval to store.
func StoreSink(store IntervalStore) Sink {
	return SinkFunc(func(ctx context.Context, iv Interval) error {
		return store.Create(ctx, models.NewInterval(iv.SessionID, iv.Start, iv.End, iv.Blinks, iv.Frequency, iv.Labels, string(iv.State)))
	})
}

// Run feeds frames from src into s until the source ends or ctx is done,
// handing closed intervals to every sink. A sink failure is logged and the
// run goes on. Only a broken source is returned as an error.
func Run(ctx context.Context, src FrameSource, s *Session, sinks ...Sink) error {
	for {
		frame, err := src.Next(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}

		var set landmarks.Set
		if face, ok := frame.Face(); ok {
			set = face
		}

		r, err := s.Observe(set, frame.Shape())
		if err != nil {
			logf("frame %d: %v", frame.Seq, err)
		}
		if r.Interval == nil {
			continue
		}

		iv := *r.Interval
		logf("%s blinks=%d freq=%.2f emotions=%s state=%s",
			iv.End.Format("15:04:05"), iv.Blinks, iv.Frequency, metrics.LabelText(iv.Labels), iv.State)
		for _, sink := range sinks {
			if err := sink.Record(ctx, iv); err != nil {
				logf("failed to record interval: %v", err)
			}
		}
	}
}
