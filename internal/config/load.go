package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskdeck/taskdeck.toml or OS-specific config dir)
// 3. Project config file (taskdeck.toml or .taskdeck.toml in current directory)
// 4. Environment variables (TASKDECK_*)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	userConfigFile := findUserConfigFile()
	if userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	projectConfigFile := findProjectConfigFile()
	if projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// findUserConfigFile returns the first user-level config file that
// exists, checking ~/.taskdeck/taskdeck.toml before the OS config dir.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".taskdeck", "taskdeck.toml")
		if fileExists(p) {
			return p
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "taskdeck", "taskdeck.toml")
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// findProjectConfigFile returns the per-directory config file, if any.
func findProjectConfigFile() string {
	for _, name := range []string{"taskdeck.toml", ".taskdeck.toml"} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKDECK_STORE"); v != "" {
		cfg.StoreFile = v
	}
	if v := os.Getenv("TASKDECK_SCHEMA"); v != "" {
		cfg.SchemaFile = v
	}
	if v := os.Getenv("TASKDECK_DEFAULT_CATEGORY"); v != "" {
		cfg.DefaultCategory = v
	}
	if v := os.Getenv("TASKDECK_CATEGORIES"); v != "" {
		cfg.Categories = splitAndTrim(v, ",")
	}
	if v := os.Getenv("TASKDECK_CONFIRM_DELETE"); v != "" {
		cfg.ConfirmDelete = boolFromString(v)
	}
	if v := os.Getenv("TASKDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKDECK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKDECK_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("TASKDECK_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.StoreFile, "store", cfg.StoreFile, "Path to task store file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to store schema file")
	fs.StringVar(&cfg.DefaultCategory, "default-category", cfg.DefaultCategory, "Category for tasks created without one")
	var categoriesStr string
	if cfg.Categories != nil {
		categoriesStr = strings.Join(cfg.Categories, ",")
	}
	fs.StringVar(&categoriesStr, "categories", categoriesStr, "Comma-separated preset category list")
	fs.BoolVar(&cfg.ConfirmDelete, "confirm-delete", cfg.ConfirmDelete, "Ask before deleting a task")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if categoriesStr != "" {
		cfg.Categories = splitAndTrim(categoriesStr, ",")
	}
	return nil
}

// splitAndTrim splits s on sep and drops empty entries.
func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// finalizeConfig expands paths and computes derived values.
func finalizeConfig(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	cfg.WorkDir = wd

	cfg.StoreFile = expandPath(cfg.StoreFile)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)
	return nil
}

// StorePath returns the store file path resolved against the working
// directory.
func (c *Config) StorePath() string {
	if filepath.IsAbs(c.StoreFile) {
		return c.StoreFile
	}
	return filepath.Join(c.WorkDir, c.StoreFile)
}

// SchemaPath returns the schema file path resolved against the working
// directory, or "" when no schema is configured.
func (c *Config) SchemaPath() string {
	if c.SchemaFile == "" {
		return ""
	}
	if filepath.IsAbs(c.SchemaFile) {
		return c.SchemaFile
	}
	return filepath.Join(c.WorkDir, c.SchemaFile)
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
