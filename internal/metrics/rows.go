package metrics

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ImageHeader is the header of the image analysis log.
var ImageHeader = []string{"Hora", "Imagen", "Emociones", "Apertura_Boca", "Anchura_Boca", "Elevacion_Cejas"}

// IntervalHeader is the header of an interview session log.
var IntervalHeader = []string{"Hora", "Parpadeos", "Frecuencia", "Emociones", "Evaluación"}

// ImageRow is one analysed upload.
type ImageRow struct {
	Time             time.Time
	Image            string
	Labels           []string
	MouthAperture    float64
	MouthWidth       float64
	EyebrowElevation float64
}

func (r ImageRow) Record() []string {
	return []string{
		r.Time.Format("2006-01-02 15:04:05"),
		r.Image,
		LabelText(r.Labels),
		formatFloat(r.MouthAperture),
		formatFloat(r.MouthWidth),
		formatFloat(r.EyebrowElevation),
	}
}

// IntervalRow summarises one interview bucket.
type IntervalRow struct {
	Time      time.Time
	Blinks    int
	Frequency float64
	Labels    []string
	State     string
}

func (r IntervalRow) Record() []string {
	return []string{
		r.Time.Format("15:04:05"),
		strconv.Itoa(r.Blinks),
		strconv.FormatFloat(r.Frequency, 'f', 2, 64),
		LabelText(r.Labels),
		r.State,
	}
}

// LabelText joins labels for the Emociones column. No labels reads as
// "Neutral".
func LabelText(labels []string) string {
	if len(labels) == 0 {
		return "Neutral"
	}
	return strings.Join(labels, ", ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// NewImageLog returns the image analysis log at path.
func NewImageLog(path string) *CSVLog {
	return NewCSVLog(path, ImageHeader)
}

// IntervalLogName is the file name of an interview session log started at t.
func IntervalLogName(t time.Time) string {
	return fmt.Sprintf("emociones_entrevista_%s.csv", t.Format("20060102_150405"))
}

// NewIntervalLog returns a fresh interview session log in dir.
func NewIntervalLog(dir string, started time.Time) *CSVLog {
	return NewCSVLog(filepath.Join(dir, IntervalLogName(started)), IntervalHeader)
}
