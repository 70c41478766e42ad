package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdimtricp/facetrack/internal/expression"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProfilesEmptyPath(t *testing.T) {
	p, err := LoadProfiles("")
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultProfiles(), p); diff != "" {
		t.Errorf("LoadProfiles(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadProfilesCheckedInDefaults(t *testing.T) {
	p, err := LoadProfiles(filepath.Join("..", "..", DefaultThresholdsPath))
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultProfiles(), p); diff != "" {
		t.Errorf("checked-in defaults drifted from built-in profiles (-want +got):\n%s", diff)
	}
}

func TestLoadProfilesPartialOverride(t *testing.T) {
	path := writeFile(t, "tuning.json", `{
		"video": {"calibration_frames": 10, "thresholds": {"surprise_mouth_aperture": 12}},
		"image": {"fallback": "neutral"}
	}`)

	p, err := LoadProfiles(path)
	require.NoError(t, err)

	assert.Equal(t, 10, p.Video.CalibrationFrames)
	assert.Equal(t, 12.0, p.Video.Thresholds.SurpriseMouthAperture)
	assert.Equal(t, 18.0, p.Video.Thresholds.SurpriseEyebrowElevation)
	assert.Equal(t, 5, p.Video.SmoothingWindow)
	assert.Equal(t, expression.FallbackNeutral, p.Image.Fallback)
	assert.Equal(t, 1, p.Image.CalibrationFrames)
}

func TestLoadProfilesErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"wrong extension", "tuning.yaml", `{}`, ".json extension"},
		{"malformed json", "tuning.json", `{"video":`, "parse thresholds JSON"},
		{"unknown threshold", "tuning.json", `{"video": {"thresholds": {"smile_size": 3}}}`, "unknown field"},
		{"invalid fallback", "tuning.json", `{"image": {"fallback": "shrug"}}`, "unknown fallback"},
		{"confidence out of range", "tuning.json", `{"video": {"thresholds": {"anger_max_confidence": 140}}}`, "between 0 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := LoadProfiles(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadProfilesTooLarge(t *testing.T) {
	path := writeFile(t, "big.json", `{"video": {}, "pad": "`+strings.Repeat("x", 1024*1024)+`"}`)
	_, err := LoadProfiles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestLoadProfilesMissingFile(t *testing.T) {
	_, err := LoadProfiles(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
