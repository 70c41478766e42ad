// Package processing runs one uploaded image through detection,
// classification and persistence.
package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kdimtricp/facetrack/internal/expression"
	"github.com/kdimtricp/facetrack/internal/imaging"
	"github.com/kdimtricp/facetrack/internal/landmarks"
	"github.com/kdimtricp/facetrack/internal/mesh"
	"github.com/kdimtricp/facetrack/internal/metrics"
	"github.com/kdimtricp/facetrack/internal/models"
	"github.com/kdimtricp/facetrack/internal/monitoring"
	"github.com/kdimtricp/facetrack/internal/storage"
)

// ErrNoFace is returned when the detector found no face in the image.
var ErrNoFace = errors.New("no face detected")

// AnalysisStore persists analysis history.
type AnalysisStore interface {
	Create(ctx context.Context, a *models.Analysis) error
}

type Pipeline struct {
	Detector mesh.Detector
	Storage  storage.Storage
	Profile  expression.Profile

	// Analyses and CSV are optional sinks; a failed write is logged and the
	// result is still returned.
	Analyses AnalysisStore
	CSV      *metrics.CSVLog

	MaxWidth  int
	MaxHeight int
	Limiter   Limiter
}

// Outcome is everything the web page shows for one upload.
type Outcome struct {
	ImageName string
	Width     int
	Height    int
	Analysis  expression.Analysis
	KeyPoints []landmarks.Pixel
	Record    *models.Analysis
}

// Process scales the image down, stores it, detects the face and classifies
// it. Errors wrap ErrNoFace, landmarks.ErrMissing or
// expression.ErrAnalysisFault for per-image outcomes; in those cases the
// returned Outcome still names the stored image and nothing is persisted.
// When detection itself fails the stored image is removed again.
func (p *Pipeline) Process(ctx context.Context, data []byte, filename string) (*Outcome, error) {
	img, err := imaging.Fit(data, p.MaxWidth, p.MaxHeight)
	if err != nil {
		return nil, err
	}

	name, err := p.Storage.SaveFile(bytes.NewReader(img.Data), storage.FileInfo{
		Filename:    jpegName(filename),
		ContentType: "image/jpeg",
		Size:        int64(len(img.Data)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	faces, err := p.detect(ctx, img.Data)
	if err != nil {
		if delErr := p.Storage.DeleteFile(name); delErr != nil {
			monitoring.Logf("Failed to remove %s after detection error: %v", name, delErr)
		}
		return nil, fmt.Errorf("face-mesh detection failed: %w", err)
	}

	out := &Outcome{ImageName: name, Width: img.Width, Height: img.Height}
	if len(faces) == 0 {
		return out, ErrNoFace
	}

	// Only the first face is analysed.
	set := faces[0]
	a, err := expression.AnalyzeImage(p.Profile, set, img.Shape())
	out.Analysis = a
	if err != nil {
		monitoring.Logf("Analysis of %s failed: %v", name, err)
		return out, err
	}
	out.KeyPoints = set.KeyPixels(img.Shape())

	out.Record = models.NewAnalysis(name, a.Result, a.Features)
	p.persist(ctx, out.Record)
	return out, nil
}

// jpegName swaps the extension of an upload name, since Fit always yields JPEG.
func jpegName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
}

func (p *Pipeline) detect(ctx context.Context, data []byte) ([]landmarks.Set, error) {
	if p.Limiter == nil {
		return p.Detector.Detect(ctx, data)
	}
	var faces []landmarks.Set
	err := p.Limiter.Run(ctx, func() error {
		var err error
		faces, err = p.Detector.Detect(ctx, data)
		return err
	})
	return faces, err
}

func (p *Pipeline) persist(ctx context.Context, rec *models.Analysis) {
	if p.Analyses != nil {
		if err := p.Analyses.Create(ctx, rec); err != nil {
			monitoring.Logf("Failed to store analysis %s: %v", rec.ID, err)
		}
	}
	if p.CSV != nil {
		row := metrics.ImageRow{
			Time:             rec.CreatedAt.In(time.Local),
			Image:            rec.Image,
			Labels:           rec.Labels,
			MouthAperture:    rec.Features.MouthAperture,
			MouthWidth:       rec.Features.MouthWidth,
			EyebrowElevation: rec.Features.EyebrowElevation,
		}
		if err := p.CSV.Append(row); err != nil {
			monitoring.Logf("Failed to append %s: %v", p.CSV.Path(), err)
		}
	}
}
