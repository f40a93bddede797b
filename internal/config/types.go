package config

// Config represents the cmdpool configuration file structure
type Config struct {
	// Defaults contains default settings for runs
	Defaults DefaultsConfig `yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// DefaultsConfig contains default configuration values
// Command-line flags override anything set here
type DefaultsConfig struct {
	// Concurrency is the default concurrency ceiling
	Concurrency int `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`

	// DelayMs is the default stagger delay between initial launches,
	// in milliseconds
	DelayMs int `yaml:"delayMs,omitempty" json:"delayMs,omitempty"`

	// Quiet suppresses per-task stdout blocks
	Quiet bool `yaml:"quiet,omitempty" json:"quiet,omitempty"`

	// OutputFormat is the default report format (human, table, json, yaml)
	OutputFormat string `yaml:"outputFormat,omitempty" json:"outputFormat,omitempty"`

	// NoColor disables colored output
	NoColor bool `yaml:"noColor,omitempty" json:"noColor,omitempty"`
}
