package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	Port        string `yaml:"port"`

	DatabasePath string `yaml:"database_path"`
	ArtifactDir  string `yaml:"artifact_dir"`

	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpiryHours int    `yaml:"token_expiry_hours"`

	AllowedOrigins []string `yaml:"allowed_origins"`

	Assessment AssessmentConfig `yaml:"assessment"`
}

// AssessmentConfig carries the tunable prediction policy. The defaults
// match the values the deployed models were calibrated against.
type AssessmentConfig struct {
	// RiskLowBelow: probabilities strictly below this are "low" risk.
	RiskLowBelow float64 `yaml:"risk_low_below"`
	// RiskHighAtOrAbove: probabilities at or above this are "high" risk.
	// Everything between the two bounds is "moderate".
	RiskHighAtOrAbove float64 `yaml:"risk_high_at_or_above"`
	// TopFeatures is how many contributing factors to report per result.
	TopFeatures int `yaml:"top_features"`
}

// Load builds configuration from environment variables, optionally
// overlaid by a YAML file named in CONFIG_FILE.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		Port:             getEnv("PORT", "8080"),
		DatabasePath:     getEnv("DATABASE_PATH", "prakriti.db"),
		ArtifactDir:      getEnv("ARTIFACT_DIR", "artifacts"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenExpiryHours: getEnvAsInt("TOKEN_EXPIRY_HOURS", 24),
		AllowedOrigins:   []string{"http://localhost:3000"},
		Assessment: AssessmentConfig{
			RiskLowBelow:      0.33,
			RiskHighAtOrAbove: 0.66,
			TopFeatures:       3,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays values from a YAML config file
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.Environment == "production" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		c.JWTSecret = "dev-secret-do-not-use-in-production"
	}
	if c.Assessment.RiskLowBelow <= 0 || c.Assessment.RiskLowBelow >= 1 {
		return fmt.Errorf("risk_low_below must be in (0,1), got %v", c.Assessment.RiskLowBelow)
	}
	if c.Assessment.RiskHighAtOrAbove <= c.Assessment.RiskLowBelow || c.Assessment.RiskHighAtOrAbove >= 1 {
		return fmt.Errorf("risk_high_at_or_above must be in (risk_low_below,1), got %v", c.Assessment.RiskHighAtOrAbove)
	}
	if c.Assessment.TopFeatures <= 0 {
		c.Assessment.TopFeatures = 3
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
