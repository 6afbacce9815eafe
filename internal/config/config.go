// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"pricing-calculator/internal/errors"
	"pricing-calculator/internal/logging"
)

// Environment variables that override file configuration.
const (
	EnvLogLevel     = "PRICING_LOG_LEVEL"
	EnvLogFormat    = "PRICING_LOG_FORMAT"
	EnvOutputFormat = "PRICING_OUTPUT_FORMAT"
	EnvCurrency     = "PRICING_CURRENCY"
	EnvLocale       = "PRICING_LOCALE"
	EnvCatalog      = "PRICING_CATALOG"
	EnvStrictInputs = "PRICING_STRICT_INPUTS"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Catalog contains client catalog configuration
	Catalog CatalogConfig `json:"catalog"`

	// Inputs contains input checking configuration
	Inputs InputsConfig `json:"inputs"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowDetails shows line items and band detail
	ShowDetails bool `json:"show_details"`

	// Currency is the ISO 4217 code used for display
	Currency string `json:"currency"`

	// Locale is the BCP 47 tag used for number grouping
	Locale string `json:"locale"`
}

// CatalogConfig contains client catalog settings
type CatalogConfig struct {
	// Path is an HCL or JSON catalog merged over the built-in client types
	Path string `json:"path,omitempty"`

	// SkipBuiltin starts from an empty catalog instead of the built-in one
	SkipBuiltin bool `json:"skip_builtin,omitempty"`
}

// InputsConfig contains input range checking settings
type InputsConfig struct {
	// Strict turns out-of-range inputs into errors instead of warnings
	Strict bool `json:"strict"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   true,
			Currency:      "EUR",
			Locale:        "en-US",
		},
		Inputs: InputsConfig{
			Strict: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.pricing-calculator.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pricing-calculator.json"
	}
	return filepath.Join(homeDir, ".pricing-calculator.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err).WithContext("path", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to parse config", err).WithContext("path", path)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadEnv loads variables from the given .env files (default ".env") if present.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logging.Sugar.Debugf("no .env file loaded: %v", err)
	}
}

// ApplyEnv overrides configuration fields from the environment
func (c *Config) ApplyEnv() {
	if v := getEnv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := getEnv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := getEnv(EnvCurrency); v != "" {
		c.Output.Currency = v
	}
	if v := getEnv(EnvLocale); v != "" {
		c.Output.Locale = v
	}
	if v := getEnv(EnvCatalog); v != "" {
		c.Catalog.Path = v
	}
	if v := getEnv(EnvStrictInputs); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Inputs.Strict = b
		}
	}
}

func getEnv(key string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return ""
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
