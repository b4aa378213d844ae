// Package config loads gomesh settings from environment variables, with
// defaults for everything so the CLI works without any setup.
package config

import "time"

// Config holds all application configuration
type Config struct {
	Upload   UploadConfig
	Pricing  PricingConfig
	Batch    BatchConfig
	Watch    WatchConfig
	OpenSCAD OpenSCADConfig
	Logging  LoggingConfig
}

// UploadConfig holds the limits for the upload validator
type UploadConfig struct {
	// MaxFileSizeMB is the largest accepted file (default: 10)
	MaxFileSizeMB int `env:"GOMESH_MAX_FILE_SIZE_MB" envDefault:"10"`

	// AllowedExtensions is a comma-separated list (default: stl,obj)
	AllowedExtensions []string `env:"GOMESH_ALLOWED_EXTENSIONS" envDefault:"stl,obj"`
}

// PricingConfig holds quote settings
type PricingConfig struct {
	// MinimumPrice is the floor for any quote (default: 5.00)
	MinimumPrice float64 `env:"GOMESH_MIN_PRICE" envDefault:"5.00"`

	// SetupFee is added to every quote (default: 0)
	SetupFee float64 `env:"GOMESH_SETUP_FEE" envDefault:"0"`

	// DefaultInfill is the infill percentage used when none is given (default: 20)
	DefaultInfill float64 `env:"GOMESH_DEFAULT_INFILL" envDefault:"20"`

	// InfillSurchargeEnabled turns on the per-percent surcharge above 20% infill
	InfillSurchargeEnabled bool `env:"GOMESH_INFILL_SURCHARGE_ENABLED" envDefault:"false"`

	// InfillSurchargeRate is the price per infill percent above 20% (default: 0.02)
	InfillSurchargeRate float64 `env:"GOMESH_INFILL_SURCHARGE_RATE" envDefault:"0.02"`

	// MaterialsFile is an optional YAML or TOML material catalog
	MaterialsFile string `env:"GOMESH_MATERIALS_FILE"`
}

// BatchConfig holds settings for parsing many files at once
type BatchConfig struct {
	// Workers is the number of files parsed in parallel (default: 4)
	Workers int `env:"GOMESH_BATCH_WORKERS" envDefault:"4"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	// Debounce collapses bursts of change events (default: 500ms)
	Debounce time.Duration `env:"GOMESH_WATCH_DEBOUNCE" envDefault:"500ms"`
}

// OpenSCADConfig holds settings for rendering .scad sources
type OpenSCADConfig struct {
	// Binary is the openscad executable (default: openscad)
	Binary string `env:"GOMESH_OPENSCAD_BIN" envDefault:"openscad"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}
