// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvAddr              = "SPOOF_API_ADDR"
	EnvAPIKey            = "SPOOF_API_KEY"
	EnvModelPath         = "SPOOF_API_MODEL_PATH"
	EnvModelMetadataPath = "SPOOF_API_MODEL_METADATA"
	EnvMaxUploadBytes    = "SPOOF_API_MAX_UPLOAD_BYTES"
	EnvStrongThreshold   = "SPOOF_API_STRONG_THRESHOLD"
	EnvModerateThreshold = "SPOOF_API_MODERATE_THRESHOLD"
)

// Config holds all process settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// APIKey is the shared secret required in the X-API-Key header.
	APIKey string

	// ModelPath and ModelMetadataPath point at an ONNX model and its
	// metadata JSON. When ModelPath is empty the service falls back to the
	// built-in feature-based classifier.
	ModelPath         string
	ModelMetadataPath string

	// MaxUploadBytes caps the multipart upload size.
	MaxUploadBytes int64

	// StrongThreshold and ModerateThreshold define the confidence bands
	// used to select explanation text.
	StrongThreshold   float64
	ModerateThreshold float64
}

// Load reads configuration from the environment, applying defaults and
// validating the result. The API key has no default: the process must not
// come up with an open /detect endpoint.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:              ":8080",
		MaxUploadBytes:    10 << 20, // 10MB
		StrongThreshold:   0.85,
		ModerateThreshold: 0.70,
	}

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	cfg.APIKey = os.Getenv(EnvAPIKey)
	cfg.ModelPath = os.Getenv(EnvModelPath)
	cfg.ModelMetadataPath = os.Getenv(EnvModelMetadataPath)

	if v := os.Getenv(EnvMaxUploadBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s: invalid size %q", EnvMaxUploadBytes, v)
		}
		cfg.MaxUploadBytes = n
	}

	var err error
	if cfg.StrongThreshold, err = loadThreshold(EnvStrongThreshold, cfg.StrongThreshold); err != nil {
		return nil, err
	}
	if cfg.ModerateThreshold, err = loadThreshold(EnvModerateThreshold, cfg.ModerateThreshold); err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func loadThreshold(envVar string, fallback float64) (float64, error) {
	v := os.Getenv(envVar)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid threshold %q", envVar, v)
	}
	return f, nil
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s required", EnvAPIKey)
	}
	if c.ModelPath != "" && c.ModelMetadataPath == "" {
		return fmt.Errorf("%s required when %s is set", EnvModelMetadataPath, EnvModelPath)
	}
	if c.StrongThreshold <= 0 || c.StrongThreshold > 1 {
		return fmt.Errorf("strong threshold %v outside (0, 1]", c.StrongThreshold)
	}
	if c.ModerateThreshold <= 0 || c.ModerateThreshold > 1 {
		return fmt.Errorf("moderate threshold %v outside (0, 1]", c.ModerateThreshold)
	}
	if c.ModerateThreshold > c.StrongThreshold {
		return fmt.Errorf("moderate threshold %v exceeds strong threshold %v",
			c.ModerateThreshold, c.StrongThreshold)
	}
	return nil
}
