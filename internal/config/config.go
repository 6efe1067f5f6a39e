package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Catalog
	DatabasePath string

	// VecLite
	VecLitePath string // Path to the VecLite story index (default: data/stories.veclite)

	// Anthropic API
	AnthropicAPIKey string
	ClaudeModel     string

	// Ground truth source: "engine" (deterministic) or "generator"
	GroundTruthSource string

	// Recommendation settings
	Recommendations int

	// Reports
	ReportDir string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:      getEnv("DATABASE_PATH", "data/storyrec.db"),
		VecLitePath:       getEnv("VECLITE_PATH", "data/stories.veclite"),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		ClaudeModel:       getEnv("CLAUDE_MODEL", ""),
		GroundTruthSource: getEnv("GROUND_TRUTH_SOURCE", "engine"),
		ReportDir:         getEnv("REPORT_DIR", "reports"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	recs, err := strconv.Atoi(getEnv("NUM_RECOMMENDATIONS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid NUM_RECOMMENDATIONS: %w", err)
	}
	if recs <= 0 {
		return nil, fmt.Errorf("invalid NUM_RECOMMENDATIONS: must be positive, got %d", recs)
	}
	cfg.Recommendations = recs

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForGeneration checks configuration needed for any command
// that calls the text generator.
func (c *Config) ValidateForGeneration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required for generation")
	}
	return nil
}

// ValidateForOptimize checks configuration needed for optimization runs.
func (c *Config) ValidateForOptimize() error {
	if err := c.ValidateForGeneration(); err != nil {
		return err
	}
	switch c.GroundTruthSource {
	case "engine", "generator":
	default:
		return fmt.Errorf("invalid GROUND_TRUTH_SOURCE: %s (must be 'engine' or 'generator')", c.GroundTruthSource)
	}
	if c.ReportDir == "" {
		return fmt.Errorf("REPORT_DIR is required")
	}
	return nil
}

// ValidateForIndex checks configuration needed for the VecLite index.
func (c *Config) ValidateForIndex() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.VecLitePath == "" {
		return fmt.Errorf("VECLITE_PATH is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
