package mesh

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdimtricp/facetrack/internal/geometry"
	"github.com/kdimtricp/facetrack/internal/landmarks"
)

func fullFace(x, y float64) []geometry.Point {
	pts := make([]geometry.Point, landmarks.Count)
	for i := range pts {
		pts[i] = geometry.Point{X: x, Y: y}
	}
	return pts
}

func TestClientDetect(t *testing.T) {
	jpegHeader := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F', 0}

	tests := []struct {
		name      string
		status    int
		body      interface{}
		wantFaces int
		wantErr   string
	}{
		{
			name:      "one face",
			status:    http.StatusOK,
			body:      detectResponse{Faces: [][]geometry.Point{fullFace(0.5, 0.5)}},
			wantFaces: 1,
		},
		{
			name:      "no face",
			status:    http.StatusOK,
			body:      detectResponse{Faces: [][]geometry.Point{}},
			wantFaces: 0,
		},
		{
			name:    "service error",
			status:  http.StatusUnprocessableEntity,
			body:    detectResponse{Error: "cannot decode image"},
			wantErr: "status 422: cannot decode image",
		},
		{
			name:    "garbage body",
			status:  http.StatusOK,
			body:    "not json",
			wantErr: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/mesh", r.URL.Path)
				assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
				got, _ := io.ReadAll(r.Body)
				assert.Equal(t, jpegHeader, got)

				w.WriteHeader(tt.status)
				if s, ok := tt.body.(string); ok {
					io.WriteString(w, s)
					return
				}
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer srv.Close()

			sets, err := NewClient(srv.URL+"/", 5*time.Second).Detect(context.Background(), jpegHeader)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, sets, tt.wantFaces)
			for _, s := range sets {
				assert.NoError(t, s.Validate())
			}
		})
	}
}

func TestClientPing(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	assert.NoError(t, c.Ping(context.Background()))

	healthy = false
	assert.Error(t, c.Ping(context.Background()))
}

func TestDetectorFunc(t *testing.T) {
	var d Detector = DetectorFunc(func(ctx context.Context, imageData []byte) ([]landmarks.Set, error) {
		return []landmarks.Set{fullFace(0.1, 0.2)}, nil
	})
	sets, err := d.Detect(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, sets, 1)
}
