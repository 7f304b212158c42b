package config

// Overrides carries command-line values that take priority over the file.
// Zero values leave the loaded setting unchanged, except for Precision when
// PrecisionSet is true.
type Overrides struct {
	ConfigPath   string
	Debug        bool
	Format       string
	Precision    int
	PrecisionSet bool // Precision was given explicitly, zero included
	MaxEntries   int
	ValidOnly    bool
	LogFile      string
}

// apply applies CLI overrides to the config.
func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.Format != "" {
		cfg.Report.Format = o.Format
	}
	if o.PrecisionSet || o.Precision > 0 {
		cfg.Report.Precision = o.Precision
	}
	if o.MaxEntries > 0 {
		cfg.Scan.MaxEntries = o.MaxEntries
	}
	if o.ValidOnly {
		cfg.Report.ValidOnly = true
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}
