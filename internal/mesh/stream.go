package mesh

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/kdimtricp/facetrack/internal/geometry"
	"github.com/kdimtricp/facetrack/internal/landmarks"
)

// Frame is one captured video frame as reported by the mesh sidecar.
type Frame struct {
	Seq         int64              `msgpack:"seq"`
	TimestampMs int64              `msgpack:"ts"`
	Width       int                `msgpack:"w"`
	Height      int                `msgpack:"h"`
	Faces       [][]geometry.Point `msgpack:"faces"`
}

// Shape is the pixel size of the frame.
func (f Frame) Shape() geometry.Shape {
	return geometry.Shape{Height: f.Height, Width: f.Width}
}

// Face returns the first face of the frame, or false when none was found.
// Only one face is analysed per frame.
func (f Frame) Face() (landmarks.Set, bool) {
	if len(f.Faces) == 0 {
		return nil, false
	}
	return landmarks.Set(f.Faces[0]), true
}

// StreamReader decodes a sequence of msgpack-encoded frames.
type StreamReader struct {
	dec *msgpack.Decoder
}

func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{dec: msgpack.NewDecoder(r)}
}

// Next blocks for the next frame. It returns io.EOF when the stream ends
// cleanly and ctx.Err() once ctx is done.
func (s *StreamReader) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	var f Frame
	if err := s.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Frame{}, ctxErr
		}
		return Frame{}, fmt.Errorf("failed to decode frame: %w", err)
	}
	return f, nil
}

// StreamWriter encodes frames in the format StreamReader reads.
type StreamWriter struct {
	enc *msgpack.Encoder
}

func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{enc: msgpack.NewEncoder(w)}
}

func (s *StreamWriter) Write(f Frame) error {
	if err := s.enc.Encode(&f); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}
