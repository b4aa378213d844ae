package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	cfg.Upload.AllowedExtensions = cleanList(cfg.Upload.AllowedExtensions)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// cleanList trims the items of a comma-separated list and drops empty ones
func cleanList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Upload.MaxFileSizeMB <= 0 {
		errs = append(errs, "GOMESH_MAX_FILE_SIZE_MB must be positive")
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		errs = append(errs, "GOMESH_ALLOWED_EXTENSIONS must list at least one extension")
	}
	for _, ext := range c.Upload.AllowedExtensions {
		if e := strings.ToLower(strings.TrimPrefix(ext, ".")); e != "stl" && e != "obj" {
			errs = append(errs, fmt.Sprintf("GOMESH_ALLOWED_EXTENSIONS contains %q, only stl and obj can be parsed", ext))
		}
	}

	if c.Pricing.MinimumPrice < 0 {
		errs = append(errs, "GOMESH_MIN_PRICE must be non-negative")
	}
	if c.Pricing.SetupFee < 0 {
		errs = append(errs, "GOMESH_SETUP_FEE must be non-negative")
	}
	if c.Pricing.DefaultInfill < 0 || c.Pricing.DefaultInfill > 100 {
		errs = append(errs, fmt.Sprintf("GOMESH_DEFAULT_INFILL (%g) must be 0-100", c.Pricing.DefaultInfill))
	}
	if c.Pricing.InfillSurchargeRate < 0 {
		errs = append(errs, "GOMESH_INFILL_SURCHARGE_RATE must be non-negative")
	}

	if c.Batch.Workers <= 0 {
		errs = append(errs, "GOMESH_BATCH_WORKERS must be positive")
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, "GOMESH_WATCH_DEBOUNCE must be non-negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
