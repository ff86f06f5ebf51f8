package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIKey, "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr: got %q, want :8080", cfg.Addr)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("api key: got %q", cfg.APIKey)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("max upload: got %d, want %d", cfg.MaxUploadBytes, 10<<20)
	}
	if cfg.StrongThreshold != 0.85 || cfg.ModerateThreshold != 0.70 {
		t.Errorf("thresholds: got %v/%v, want 0.85/0.70", cfg.StrongThreshold, cfg.ModerateThreshold)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	if _, err := Load(); err == nil {
		t.Error("expected error when API key is unset")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvAddr, ":9000")
	t.Setenv(EnvMaxUploadBytes, "1048576")
	t.Setenv(EnvStrongThreshold, "0.9")
	t.Setenv(EnvModerateThreshold, "0.6")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("addr: got %q, want :9000", cfg.Addr)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Errorf("max upload: got %d, want 1048576", cfg.MaxUploadBytes)
	}
	if cfg.StrongThreshold != 0.9 || cfg.ModerateThreshold != 0.6 {
		t.Errorf("thresholds: got %v/%v, want 0.9/0.6", cfg.StrongThreshold, cfg.ModerateThreshold)
	}
}

func TestLoadInvalidUploadSize(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvMaxUploadBytes, "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid upload size")
	}
}

func TestLoadInvalidThreshold(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvStrongThreshold, "1.5")
	if _, err := Load(); err == nil {
		t.Error("expected error for threshold outside (0, 1]")
	}
}

func TestLoadInvertedThresholds(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvStrongThreshold, "0.5")
	t.Setenv(EnvModerateThreshold, "0.8")
	if _, err := Load(); err == nil {
		t.Error("expected error when moderate exceeds strong")
	}
}

func TestLoadModelPathWithoutMetadata(t *testing.T) {
	setRequired(t)
	t.Setenv(EnvModelPath, "/models/aasist.onnx")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when model path is set without metadata")
	}
	if !strings.Contains(err.Error(), EnvModelMetadataPath) {
		t.Errorf("error should name %s: %v", EnvModelMetadataPath, err)
	}
}
