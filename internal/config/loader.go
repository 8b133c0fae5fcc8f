package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	ConfigPaths []string
	FileName    string
	EnvPrefix   string
}

// Load returns the merged configuration from a local .env file, config
// files, and environment variables. Environment variables win over file
// values.
func Load(opts LoaderOptions) (Config, error) {
	// Populate the environment from a local .env before viper resolves
	// anything. Missing files are fine.
	_ = godotenv.Load()

	v := viper.New()

	name := opts.FileName
	if name == "" {
		name = "genstudio"
	}

	configFile := locateConfigFile(name, opts.ConfigPaths)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name)
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "GENSTUDIO"
	}
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AllowEmptyEnv(true)

	setDefaults(v)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return expandEnvVars(cfg), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.timeout", "60s")

	v.SetDefault("models.default", "gemini-2.0-flash")

	v.SetDefault("temperatures.extraction", 0.1)
	v.SetDefault("temperatures.description", 0.2)
	v.SetDefault("temperatures.evaluation", 0.2)
	v.SetDefault("temperatures.questions", 0.5)
	v.SetDefault("temperatures.transformation", 0.8)

	v.SetDefault("http.maxAttempts", 3)
	v.SetDefault("http.initialBackoff", "1s")
	v.SetDefault("http.maxBackoff", "10s")
	v.SetDefault("http.backoffMultiplier", 2.0)
	v.SetDefault("http.retryTransportOnly", false)

	v.SetDefault("storage.directory", "artifacts")

	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", "genstudio.db")

	v.SetDefault("observability.logging.enabled", true)
	v.SetDefault("observability.logging.level", "info")
	// No default for observability.logging.format: an empty value tells
	// the caller that the user expressed no preference, so it can pick a
	// format based on whether output goes to a terminal.
	v.SetDefault("observability.metrics.enabled", true)
}

// expandEnvVars expands ${VAR} and $VAR syntax in configuration strings.
func expandEnvVars(cfg Config) Config {
	cfg.Provider.APIKey = expandEnvString(cfg.Provider.APIKey)
	cfg.Models.Default = expandEnvString(cfg.Models.Default)
	cfg.Models.ImageGeneration = expandEnvString(cfg.Models.ImageGeneration)
	cfg.Models.AudioAnalysis = expandEnvString(cfg.Models.AudioAnalysis)
	cfg.Models.CharacterConsistency = expandEnvString(cfg.Models.CharacterConsistency)
	cfg.Storage.Directory = expandEnvString(cfg.Storage.Directory)
	cfg.Store.Path = expandEnvString(cfg.Store.Path)
	return cfg
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

func expandEnvString(value string) string {
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		name = strings.TrimPrefix(name, "{")
		name = strings.TrimSuffix(name, "}")
		if resolved, ok := os.LookupEnv(name); ok {
			return resolved
		}
		return match
	})
}

func locateConfigFile(name string, paths []string) string {
	for _, dir := range paths {
		for _, ext := range []string{"yaml", "yml"} {
			candidate := filepath.Join(dir, fmt.Sprintf("%s.%s", name, ext))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}
