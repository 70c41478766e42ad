// Package config loads process settings from the environment and the
// classifier profiles from a JSON thresholds file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ImageCSVName is the file the web path appends image rows to, inside DataDir.
const ImageCSVName = "emociones_imagen.csv"

type Config struct {
	Port           string
	MaxUploadSize  int64
	UploadDir      string
	DataDir        string
	DBPath         string
	MeshServiceURL string
	MeshTimeout    time.Duration
	ThresholdsPath string

	DisplayMaxWidth  int
	DisplayMaxHeight int
}

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		DBPath:         getEnv("DB_PATH", "./facetrack.db"),
		MeshServiceURL: getEnv("MESH_SERVICE_URL", "http://127.0.0.1:8001"),
		ThresholdsPath: ThresholdsPath(),
	}

	var err error
	if cfg.MaxUploadSize, err = getEnvInt64("MAX_UPLOAD_SIZE", 16<<20); err != nil {
		return nil, err
	}
	if cfg.MeshTimeout, err = getEnvDuration("MESH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	width, err := getEnvInt64("DISPLAY_MAX_WIDTH", 800)
	if err != nil {
		return nil, err
	}
	height, err := getEnvInt64("DISPLAY_MAX_HEIGHT", 600)
	if err != nil {
		return nil, err
	}
	cfg.DisplayMaxWidth, cfg.DisplayMaxHeight = int(width), int(height)

	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", cfg.MaxUploadSize)
	}
	if cfg.DisplayMaxWidth <= 0 || cfg.DisplayMaxHeight <= 0 {
		return nil, fmt.Errorf("display bounds must be positive, got %dx%d", cfg.DisplayMaxWidth, cfg.DisplayMaxHeight)
	}
	return cfg, nil
}

// ThresholdsPath returns THRESHOLDS_PATH, or DefaultThresholdsPath when that
// is unset and the checked-in file exists in the working directory. An empty
// result means the built-in profiles.
func ThresholdsPath() string {
	if path := getEnv("THRESHOLDS_PATH", ""); path != "" {
		return path
	}
	if _, err := os.Stat(DefaultThresholdsPath); err == nil {
		return DefaultThresholdsPath
	}
	return ""
}

// ImageCSVPath is where image analyses are logged.
func (c *Config) ImageCSVPath() string {
	return filepath.Join(c.DataDir, ImageCSVName)
}

func getEnv(k, d string) string {
	if val, ok := os.LookupEnv(k); ok && val != "" {
		return val
	}
	return d
}

func getEnvInt64(k string, d int64) (int64, error) {
	val, ok := os.LookupEnv(k)
	if !ok || val == "" {
		return d, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func getEnvDuration(k string, d time.Duration) (time.Duration, error) {
	val, ok := os.LookupEnv(k)
	if !ok || val == "" {
		return d, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return dur, nil
}
