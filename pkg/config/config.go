package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for foodcheck.
type Config struct {
	// Provider selects the AI backend (claude, openai); empty auto-detects
	// from the environment.
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	// TimeoutSeconds bounds every AI and OpenFoodFacts request.
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	Scoring        string `mapstructure:"scoring"`
	Output         string `mapstructure:"output"`
	// TablesFile optionally overrides the built-in additive
	// classification table with a YAML file.
	TablesFile string   `mapstructure:"tablesFile"`
	CachePath  string   `mapstructure:"cachePath"`
	Allergens  []string `mapstructure:"allergens"`
	Diets      []string `mapstructure:"diets"`
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads configuration from defaults, an optional .foodcheckrc file in
// the working directory, and FOODCHECK_* environment variables, in
// increasing precedence.
func Load() (*Config, error) {
	homeDir, _ := os.UserHomeDir()
	viper.SetDefault("provider", "")
	viper.SetDefault("model", "")
	viper.SetDefault("timeoutSeconds", 60)
	viper.SetDefault("scoring", "auto")
	viper.SetDefault("output", "human")
	viper.SetDefault("tablesFile", "")
	viper.SetDefault("cachePath", filepath.Join(homeDir, ".foodcheck", "cache.db"))
	viper.SetDefault("allergens", []string{})
	viper.SetDefault("diets", []string{})

	configPaths := []string{".foodcheckrc.json", ".foodcheckrc.yaml", ".foodcheckrc.yml"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	viper.SetEnvPrefix("FOODCHECK")
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Scoring {
	case "auto", "ai", "local", "external":
	default:
		return fmt.Errorf("invalid scoring mode: %s. Must be 'auto', 'ai', 'local', or 'external'", cfg.Scoring)
	}
	switch cfg.Output {
	case "human", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s. Must be 'human', 'json', or 'yaml'", cfg.Output)
	}
	if cfg.TimeoutSeconds < 1 {
		return fmt.Errorf("timeoutSeconds must be at least 1")
	}
	switch cfg.Provider {
	case "", "claude", "openai":
	default:
		return fmt.Errorf("invalid provider: %s. Must be 'claude' or 'openai'", cfg.Provider)
	}
	return nil
}
