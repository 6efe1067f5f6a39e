package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env and restore after test
	origEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, e := range origEnv {
			for i := 0; i < len(e); i++ {
				if e[i] == '=' {
					os.Setenv(e[:i], e[i+1:])
					break
				}
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/storyrec.db", cfg.DatabasePath)
		assert.Equal(t, "data/stories.veclite", cfg.VecLitePath)
		assert.Equal(t, "engine", cfg.GroundTruthSource)
		assert.Equal(t, "reports", cfg.ReportDir)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 10, cfg.Recommendations)
	})

	t.Run("custom values", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("DATABASE_PATH", "/custom/path.db")
		os.Setenv("ANTHROPIC_API_KEY", "sk-test")
		os.Setenv("GROUND_TRUTH_SOURCE", "generator")
		os.Setenv("NUM_RECOMMENDATIONS", "5")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/custom/path.db", cfg.DatabasePath)
		assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
		assert.Equal(t, "generator", cfg.GroundTruthSource)
		assert.Equal(t, 5, cfg.Recommendations)
	})

	t.Run("invalid integer", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("NUM_RECOMMENDATIONS", "notanumber")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "NUM_RECOMMENDATIONS")
	})

	t.Run("non-positive count", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("NUM_RECOMMENDATIONS", "0")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "NUM_RECOMMENDATIONS")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_PATH")
	})
}

func TestConfig_ValidateForGeneration(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db"}
		err := cfg.ValidateForGeneration()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
	})

	t.Run("valid", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db", AnthropicAPIKey: "sk-test"}
		assert.NoError(t, cfg.ValidateForGeneration())
	})
}

func TestConfig_ValidateForOptimize(t *testing.T) {
	base := Config{
		DatabasePath:    "test.db",
		AnthropicAPIKey: "sk-test",
		ReportDir:       "reports",
	}

	t.Run("valid engine source", func(t *testing.T) {
		cfg := base
		cfg.GroundTruthSource = "engine"
		assert.NoError(t, cfg.ValidateForOptimize())
	})

	t.Run("valid generator source", func(t *testing.T) {
		cfg := base
		cfg.GroundTruthSource = "generator"
		assert.NoError(t, cfg.ValidateForOptimize())
	})

	t.Run("invalid source", func(t *testing.T) {
		cfg := base
		cfg.GroundTruthSource = "oracle"
		err := cfg.ValidateForOptimize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GROUND_TRUTH_SOURCE")
	})

	t.Run("missing report dir", func(t *testing.T) {
		cfg := base
		cfg.GroundTruthSource = "engine"
		cfg.ReportDir = ""
		err := cfg.ValidateForOptimize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REPORT_DIR")
	})
}

func TestConfig_ValidateForIndex(t *testing.T) {
	t.Run("missing veclite path", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db"}
		err := cfg.ValidateForIndex()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "VECLITE_PATH")
	})

	t.Run("valid", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db", VecLitePath: "data/stories.veclite"}
		assert.NoError(t, cfg.ValidateForIndex())
	})
}
