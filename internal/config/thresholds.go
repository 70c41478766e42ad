package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kdimtricp/facetrack/internal/expression"
)

// DefaultThresholdsPath is the checked-in thresholds file.
const DefaultThresholdsPath = "config/thresholds.defaults.json"

// ThresholdsConfig is the on-disk form of the classifier profiles. Omitted
// fields keep the built-in defaults, so partial files are safe.
type ThresholdsConfig struct {
	Video *ProfileConfig `json:"video,omitempty"`
	Image *ProfileConfig `json:"image,omitempty"`
}

// ProfileConfig overrides one expression.Profile.
type ProfileConfig struct {
	CalibrationFrames *int    `json:"calibration_frames,omitempty"`
	SmoothingWindow   *int    `json:"smoothing_window,omitempty"`
	Fallback          *string `json:"fallback,omitempty"`

	// Thresholds is decoded on top of expression.DefaultThresholds.
	Thresholds json.RawMessage `json:"thresholds,omitempty"`
}

// Profiles holds the resolved classifier profiles.
type Profiles struct {
	Video expression.Profile
	Image expression.Profile
}

// DefaultProfiles returns the built-in profiles.
func DefaultProfiles() Profiles {
	return Profiles{
		Video: expression.VideoProfile(),
		Image: expression.ImageProfile(),
	}
}

// LoadProfiles reads a thresholds file and applies it over the defaults.
// An empty path returns the defaults. The file must have a .json extension
// and be under 1MB.
func LoadProfiles(path string) (Profiles, error) {
	if path == "" {
		return DefaultProfiles(), nil
	}

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Profiles{}, fmt.Errorf("thresholds file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Profiles{}, fmt.Errorf("failed to stat thresholds file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return Profiles{}, fmt.Errorf("thresholds file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Profiles{}, fmt.Errorf("failed to read thresholds file: %w", err)
	}

	var cfg ThresholdsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Profiles{}, fmt.Errorf("failed to parse thresholds JSON: %w", err)
	}
	return cfg.Resolve()
}

// Resolve applies the overrides to the default profiles and validates them.
func (c ThresholdsConfig) Resolve() (Profiles, error) {
	p := DefaultProfiles()

	var err error
	if p.Video, err = c.Video.apply(p.Video); err != nil {
		return Profiles{}, err
	}
	if p.Image, err = c.Image.apply(p.Image); err != nil {
		return Profiles{}, err
	}

	if err := p.Video.Validate(); err != nil {
		return Profiles{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := p.Image.Validate(); err != nil {
		return Profiles{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return p, nil
}

func (pc *ProfileConfig) apply(p expression.Profile) (expression.Profile, error) {
	if pc == nil {
		return p, nil
	}
	if pc.CalibrationFrames != nil {
		p.CalibrationFrames = *pc.CalibrationFrames
	}
	if pc.SmoothingWindow != nil {
		p.SmoothingWindow = *pc.SmoothingWindow
	}
	if pc.Fallback != nil {
		p.Fallback = expression.Fallback(*pc.Fallback)
	}
	if len(pc.Thresholds) > 0 {
		dec := json.NewDecoder(bytes.NewReader(pc.Thresholds))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p.Thresholds); err != nil {
			return p, fmt.Errorf("profile %s: failed to parse thresholds: %w", p.Name, err)
		}
	}
	return p, nil
}
