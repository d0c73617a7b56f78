// Package config handles configuration loading and defaults.
package config

// Default values.
const (
	DefaultStoreFile     = "tasks.json"
	DefaultSchemaFile    = "tasks.schema.json"
	DefaultCategory      = "General"
	DefaultConfirmDelete = true
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// Paths
	StoreFile  string `toml:"store_file"`
	SchemaFile string `toml:"schema_file"`

	// Task defaults
	DefaultCategory string   `toml:"default_category"`
	Categories      []string `toml:"categories"`

	// UI behavior
	ConfirmDelete bool `toml:"confirm_delete"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory the relative paths resolve against (computed)
	WorkDir string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.StoreFile = DefaultStoreFile
	cfg.SchemaFile = DefaultSchemaFile
	cfg.DefaultCategory = DefaultCategory
	cfg.Categories = nil
	cfg.ConfirmDelete = DefaultConfirmDelete
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}
