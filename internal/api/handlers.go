package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kdimtricp/facetrack/internal/expression"
	"github.com/kdimtricp/facetrack/internal/imaging"
	"github.com/kdimtricp/facetrack/internal/landmarks"
	"github.com/kdimtricp/facetrack/internal/models"
	"github.com/kdimtricp/facetrack/internal/monitoring"
	"github.com/kdimtricp/facetrack/internal/processing"
	"github.com/kdimtricp/facetrack/internal/storage"
)

const (
	pageTitle    = "Facial Expression Analysis"
	recentLimit  = 10
	noFaceNotice = "No face detected"
)

// History is the read side of the analysis store.
type History interface {
	Recent(ctx context.Context, limit int) ([]*models.Analysis, error)
	LabelCounts(ctx context.Context) (map[string]int, error)
}

type App struct {
	Pipeline      *processing.Pipeline
	Storage       storage.Storage
	History       History
	CSVPath       string
	MaxUploadSize int64
}

type labelView struct {
	Name       string
	Confidence float64
}

type featureView struct {
	Name  string
	Value float64
}

type resultView struct {
	ImageName string
	Width     int
	Height    int
	Labels    []labelView
	Features  []featureView
	KeyPoints []landmarks.Pixel
}

type pageData struct {
	Title   string
	Error   string
	Message string
	Result  *resultView
	Recent  []*models.Analysis
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (app *App) HomeHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, pageData{})
}

// AnalyzeHandler runs one uploaded image through the pipeline and renders
// the result together with the recent history.
func (app *App) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)

	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			app.render(w, r, http.StatusBadRequest, pageData{Error: "File too large"})
			return
		}
		app.render(w, r, http.StatusBadRequest, pageData{Error: "Invalid upload"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		app.render(w, r, http.StatusBadRequest, pageData{Error: "No image selected"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		app.render(w, r, http.StatusBadRequest, pageData{Error: "Failed to read image"})
		return
	}

	out, err := app.Pipeline.Process(r.Context(), data, header.Filename)
	switch {
	case err == nil:
		app.render(w, r, http.StatusOK, pageData{Result: newResultView(out)})
	case errors.Is(err, imaging.ErrUnsupported):
		app.render(w, r, http.StatusBadRequest, pageData{Error: "Unsupported image format"})
	case errors.Is(err, processing.ErrNoFace):
		app.render(w, r, http.StatusOK, pageData{Message: noFaceNotice, Result: newResultView(out)})
	case errors.Is(err, landmarks.ErrMissing), errors.Is(err, expression.ErrAnalysisFault):
		app.render(w, r, http.StatusOK, pageData{Result: newResultView(out)})
	default:
		monitoring.Logf("Failed to analyze %s: %v", header.Filename, err)
		app.render(w, r, http.StatusBadGateway, pageData{Error: "Face analysis is unavailable, try again later"})
	}
}

func newResultView(out *processing.Outcome) *resultView {
	v := &resultView{
		ImageName: out.ImageName,
		Width:     out.Width,
		Height:    out.Height,
		KeyPoints: out.KeyPoints,
	}
	res := out.Analysis.Result
	for _, l := range res.Labels {
		v.Labels = append(v.Labels, labelView{Name: l, Confidence: res.Confidence[l]})
	}
	// Sentinel results carry no measurements.
	if out.Record != nil {
		values := out.Analysis.Features.Map()
		for _, name := range expression.FeatureNames {
			v.Features = append(v.Features, featureView{Name: name, Value: values[name]})
		}
	}
	return v
}

func (app *App) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.Title = pageTitle
	if app.History != nil {
		recent, err := app.History.Recent(r.Context(), recentLimit)
		if err != nil {
			monitoring.Logf("Failed to load recent analyses: %v", err)
		}
		data.Recent = recent
	}

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "index.html", data); err != nil {
		monitoring.Logf("Failed to render page: %v", err)
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// DownloadCSVHandler streams the accumulated image analysis log.
func (app *App) DownloadCSVHandler(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(app.CSVPath)
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "No analyses recorded yet", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Error opening CSV", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		http.Error(w, "Error accessing CSV", http.StatusInternalServerError)
		return
	}

	name := filepath.Base(app.CSVPath)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, stat.ModTime(), f)
}

// UploadedImageHandler serves a stored, display-sized upload.
func (app *App) UploadedImageHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	file, err := app.Storage.OpenFile(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	modTime := time.Time{}
	if st, ok := file.(interface{ Stat() (os.FileInfo, error) }); ok {
		if info, err := st.Stat(); err == nil {
			modTime = info.ModTime()
		}
	}
	http.ServeContent(w, r, name, modTime, file)
}

// StatsHandler renders how often each label has been assigned.
func (app *App) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if app.History == nil {
		http.Error(w, "No analysis history configured", http.StatusNotFound)
		return
	}

	counts, err := app.History.LabelCounts(r.Context())
	if err != nil {
		monitoring.Logf("Failed to count labels: %v", err)
		http.Error(w, "Error loading statistics", http.StatusInternalServerError)
		return
	}

	names, values := sortedCounts(counts)
	total := 0
	for _, n := range counts {
		total += n
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: pageTitle, Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Emotion frequency", Subtitle: fmt.Sprintf("%d labels assigned", total)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("labels", values,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.AddCharts(bar)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("render error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// sortedCounts orders labels by descending count, then name.
func sortedCounts(counts map[string]int) ([]string, []opts.BarData) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	values := make([]opts.BarData, len(names))
	for i, name := range names {
		values[i] = opts.BarData{Value: counts[name]}
	}
	return names, values
}
