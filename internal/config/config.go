package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for an analysis run. Values come
// from an optional YAML file overlaid with environment variables; API
// keys are only ever read from the environment (or a .env file loaded
// at startup).
type Config struct {
	Provider     string  `mapstructure:"provider"`
	Model        string  `mapstructure:"model"`
	GeminiAPIKey string  `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey string  `mapstructure:"OPENAI_API_KEY"`
	WindowSize   int     `mapstructure:"window_size"`
	Overlap      int     `mapstructure:"overlap"`
	BaseDelay    float64 `mapstructure:"base_delay_seconds"`
	MaxRetries   int     `mapstructure:"max_retries"`
	OutputDir    string  `mapstructure:"output_dir"`
}

// Load reads configuration from configPath (optional, YAML) and the
// environment. Defaults cover everything except the API key for the
// chosen provider.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("provider", "gemini")
	v.SetDefault("window_size", 50)
	v.SetDefault("overlap", 5)
	v.SetDefault("base_delay_seconds", 2.0)
	v.SetDefault("max_retries", 3)
	v.SetDefault("output_dir", ".")

	v.AutomaticEnv()
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("OPENAI_API_KEY")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(configPath); statErr == nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			return nil, fmt.Errorf("config file %s not found", configPath)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() (string, error) {
	switch c.Provider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return "", errors.New("GEMINI_API_KEY is not set")
		}
		return c.GeminiAPIKey, nil
	case "openai":
		if c.OpenAIAPIKey == "" {
			return "", errors.New("OPENAI_API_KEY is not set")
		}
		return c.OpenAIAPIKey, nil
	default:
		return "", fmt.Errorf("unknown provider %q", c.Provider)
	}
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if c.WindowSize < 1 {
		return fmt.Errorf("window_size must be positive, got %d", c.WindowSize)
	}
	if c.Overlap < 0 || c.Overlap >= c.WindowSize {
		return fmt.Errorf("overlap must be in [0, window_size), got %d", c.Overlap)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be positive, got %d", c.MaxRetries)
	}
	if c.BaseDelay < 0 {
		return fmt.Errorf("base_delay_seconds must not be negative, got %f", c.BaseDelay)
	}
	return nil
}
