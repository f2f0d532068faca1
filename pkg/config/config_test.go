package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad tests configuration loading from environment variables
func TestLoad(t *testing.T) {
	os.Setenv("ENVIRONMENT", "test")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("PORT", "9090")
	os.Setenv("ARTIFACT_DIR", "/var/lib/prakriti/models")
	os.Setenv("TOKEN_EXPIRY_HOURS", "48")

	defer func() {
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("PORT")
		os.Unsetenv("ARTIFACT_DIR")
		os.Unsetenv("TOKEN_EXPIRY_HOURS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Environment != "test" {
		t.Errorf("Expected environment 'test', got '%s'", cfg.Environment)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", cfg.LogLevel)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", cfg.Port)
	}

	if cfg.ArtifactDir != "/var/lib/prakriti/models" {
		t.Errorf("Expected artifact dir '/var/lib/prakriti/models', got '%s'", cfg.ArtifactDir)
	}

	if cfg.TokenExpiryHours != 48 {
		t.Errorf("Expected TokenExpiryHours 48, got %d", cfg.TokenExpiryHours)
	}
}

// TestLoadDefaults tests default values
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected default environment 'development', got '%s'", cfg.Environment)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port '8080', got '%s'", cfg.Port)
	}

	if cfg.Assessment.RiskLowBelow != 0.33 {
		t.Errorf("Expected default RiskLowBelow 0.33, got %v", cfg.Assessment.RiskLowBelow)
	}

	if cfg.Assessment.RiskHighAtOrAbove != 0.66 {
		t.Errorf("Expected default RiskHighAtOrAbove 0.66, got %v", cfg.Assessment.RiskHighAtOrAbove)
	}

	if cfg.Assessment.TopFeatures != 3 {
		t.Errorf("Expected default TopFeatures 3, got %d", cfg.Assessment.TopFeatures)
	}

	// Development falls back to an insecure default secret
	if cfg.JWTSecret == "" {
		t.Error("Expected dev JWT secret fallback, got empty")
	}
}

// TestLoadConfigFile tests YAML overlay of env defaults
func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
port: "7070"
assessment:
  risk_low_below: 0.25
  risk_high_at_or_above: 0.75
  top_features: 5
`)
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Setenv("CONFIG_FILE", path)
	defer os.Unsetenv("CONFIG_FILE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "7070" {
		t.Errorf("Expected port '7070', got '%s'", cfg.Port)
	}
	if cfg.Assessment.RiskLowBelow != 0.25 {
		t.Errorf("Expected RiskLowBelow 0.25, got %v", cfg.Assessment.RiskLowBelow)
	}
	if cfg.Assessment.RiskHighAtOrAbove != 0.75 {
		t.Errorf("Expected RiskHighAtOrAbove 0.75, got %v", cfg.Assessment.RiskHighAtOrAbove)
	}
	if cfg.Assessment.TopFeatures != 5 {
		t.Errorf("Expected TopFeatures 5, got %d", cfg.Assessment.TopFeatures)
	}
}

// TestValidateRejectsBadThresholds tests threshold ordering validation
func TestValidateRejectsBadThresholds(t *testing.T) {
	cfg := &Config{
		JWTSecret: "secret",
		Assessment: AssessmentConfig{
			RiskLowBelow:      0.7,
			RiskHighAtOrAbove: 0.3,
			TopFeatures:       3,
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for inverted thresholds")
	}
}
