package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// fileName is the config file looked up in the working directory and in
// ConfigDir.
const fileName = "lpmtscan.yaml"

// ErrInvalid is returned when a loaded config has unusable values.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < overrides.
func Load(o Overrides) (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := o.ConfigPath
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI overrides (highest priority)
	o.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values a YAML file or flag could set out of range.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case FormatText, FormatJSON, FormatYAML, FormatCBOR:
	default:
		return fmt.Errorf("%w: report format %q", ErrInvalid, c.Report.Format)
	}
	if c.Report.Precision < 0 || c.Report.Precision > 17 {
		return fmt.Errorf("%w: report precision %d", ErrInvalid, c.Report.Precision)
	}
	if c.Scan.MaxEntries < 0 {
		return fmt.Errorf("%w: max entries %d", ErrInvalid, c.Scan.MaxEntries)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + fileName,
		filepath.Join(ConfigDir(), fileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "lpmtscan")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "lpmtscan")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "lpmtscan")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "lpmtscan")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
