// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config represents the application configuration
type Config struct {
	// Datasets
	Android *DatasetConfig
	IOS     *DatasetConfig

	// Report settings
	ExploreRows int // Rows printed when exploring a dataset

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from an optional .env file and environment variables
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(getEnv("ENV_FILE", ".env"))
}

// LoadConfigFrom loads configuration, reading envFile first if it exists.
// Variables already present in the environment take precedence.
func LoadConfigFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		ExploreRows: getEnvAsInt("EXPLORE_ROWS", 3),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
	}

	android, err := LoadDatasetConfig("ANDROID", AndroidDefaults())
	if err != nil {
		return nil, fmt.Errorf("failed to load android configuration: %w", err)
	}
	cfg.Android = android

	ios, err := LoadDatasetConfig("IOS", IOSDefaults())
	if err != nil {
		return nil, fmt.Errorf("failed to load ios configuration: %w", err)
	}
	cfg.IOS = ios

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Android == nil {
		return errors.New("android dataset configuration is required")
	}

	if c.IOS == nil {
		return errors.New("ios dataset configuration is required")
	}

	if c.ExploreRows < 0 {
		return errors.New("explore rows cannot be negative")
	}

	if err := c.Android.Validate(); err != nil {
		return fmt.Errorf("android: %w", err)
	}

	if err := c.IOS.Validate(); err != nil {
		return fmt.Errorf("ios: %w", err)
	}

	return nil
}

// Dataset returns the configuration of a dataset by name
func (c *Config) Dataset(name string) (*DatasetConfig, error) {
	switch name {
	case c.Android.Name:
		return c.Android, nil
	case c.IOS.Name:
		return c.IOS, nil
	default:
		return nil, fmt.Errorf("unknown dataset %q (expected %s or %s)", name, c.Android.Name, c.IOS.Name)
	}
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := cast.ToIntE(decimal(valueStr))
	if err != nil {
		return defaultValue
	}
	return value
}

// decimal strips leading zeros so cast does not read "011" as octal
func decimal(s string) string {
	s = strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
	}
	return sign + s
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := cast.ToBoolE(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
