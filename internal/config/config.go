// Package config handles scanner configuration loading and management.
package config

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// Config holds all scanner settings.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig holds block scanning settings.
type ScanConfig struct {
	MaxEntries int `yaml:"max_entries"` // 0 = unlimited
}

// ReportConfig holds output settings.
type ReportConfig struct {
	Format    string `yaml:"format"`     // text, json, yaml or cbor
	Precision int    `yaml:"precision"`  // Decimal places in text output
	ValidOnly bool   `yaml:"valid_only"` // Omit entries that fail validation
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxEntries: 0,
		},
		Report: ReportConfig{
			Format:    FormatText,
			Precision: 3,
			ValidOnly: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
