package config

import (
	"time"

	"github.com/mwestbrook/genstudio/internal/genai"
)

// Config represents the full application configuration.
type Config struct {
	Provider      ProviderConfig      `yaml:"provider"`
	Models        ModelsConfig        `yaml:"models"`
	Temperatures  TemperatureConfig   `yaml:"temperatures"`
	HTTP          HTTPConfig          `yaml:"http"`
	Storage       StorageConfig       `yaml:"storage"`
	Store         StoreConfig         `yaml:"store"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ProviderConfig configures the remote model service connection.
type ProviderConfig struct {
	APIKey  string `yaml:"apiKey"`
	Timeout string `yaml:"timeout"`
}

// Workload names recognized by ModelsConfig.ModelFor.
const (
	WorkloadImageGeneration      = "image_generation"
	WorkloadAudioAnalysis        = "audio_analysis"
	WorkloadCharacterConsistency = "character_consistency"
)

// ModelsConfig selects model variants per workload. Tasks without a
// dedicated entry use Default.
type ModelsConfig struct {
	Default              string `yaml:"default"`
	ImageGeneration      string `yaml:"imageGeneration"`
	AudioAnalysis        string `yaml:"audioAnalysis"`
	CharacterConsistency string `yaml:"characterConsistency"`
}

// TemperatureConfig holds the numeric tuning constants per task family.
type TemperatureConfig struct {
	Extraction     float64 `yaml:"extraction"`     // factual extraction, low
	Description    float64 `yaml:"description"`    // media descriptions
	Evaluation     float64 `yaml:"evaluation"`     // scoring and yes/no checks
	Questions      float64 `yaml:"questions"`      // critique question generation
	Transformation float64 `yaml:"transformation"` // creative suggestions, high
}

// HTTPConfig holds request timeout and retry settings for the invocation
// envelope.
type HTTPConfig struct {
	Timeout            string  `yaml:"timeout"`
	MaxAttempts        int     `yaml:"maxAttempts"`
	InitialBackoff     string  `yaml:"initialBackoff"`
	MaxBackoff         string  `yaml:"maxBackoff"`
	BackoffMultiplier  float64 `yaml:"backoffMultiplier"`
	RetryTransportOnly bool    `yaml:"retryTransportOnly"`
}

// StorageConfig configures where generated artifacts land.
type StorageConfig struct {
	Directory string `yaml:"directory"`
}

// StoreConfig configures the call-record analytics database.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures logging and metrics.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures attempt logging.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`  // debug, info, error
	Format  string `yaml:"format"` // json, human
}

// MetricsConfig configures in-memory metrics aggregation.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ParseTimeout parses the provider timeout with a safe fallback. Negative
// durations are rejected (they would panic inside http.Client).
func (c ProviderConfig) ParseTimeout(defaultVal time.Duration) time.Duration {
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil && d >= 0 {
			return d
		}
	}
	return defaultVal
}

// RetryConfig converts the HTTP settings into the envelope's retry policy,
// falling back to the default policy for missing or invalid values.
func (c HTTPConfig) RetryConfig() genai.RetryConfig {
	retry := genai.DefaultRetryConfig()

	if c.MaxAttempts > 0 {
		retry.MaxAttempts = c.MaxAttempts
	}
	if d := parseDuration(c.InitialBackoff); d > 0 {
		retry.InitialBackoff = d
	}
	if d := parseDuration(c.MaxBackoff); d > 0 {
		retry.MaxBackoff = d
	}
	if c.BackoffMultiplier > 0 {
		retry.Multiplier = c.BackoffMultiplier
	}
	retry.TransportOnly = c.RetryTransportOnly
	return retry
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ModelFor returns the model for a dedicated workload, or the default when
// none is configured.
func (c ModelsConfig) ModelFor(workload string) string {
	switch workload {
	case WorkloadImageGeneration:
		if c.ImageGeneration != "" {
			return c.ImageGeneration
		}
	case WorkloadAudioAnalysis:
		if c.AudioAnalysis != "" {
			return c.AudioAnalysis
		}
	case WorkloadCharacterConsistency:
		if c.CharacterConsistency != "" {
			return c.CharacterConsistency
		}
	}
	return c.Default
}
