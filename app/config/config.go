// Package config holds the CLI defaults loaded from an optional yaml file
// and GOPP_-prefixed environment variables.
package config

// Config carries the defaults a calculation request starts from. Flags
// override everything here.
type Config struct {
	// Mode is the default ruleset: osu, taiko, catch or mania.
	Mode string `koanf:"mode"`

	// Mods holds default modifier acronyms applied to every calculation.
	Mods []string `koanf:"mods"`

	// Accuracy is the default target accuracy in percent.
	Accuracy float64 `koanf:"accuracy"`

	// Database points at the sqlite results history; empty disables it.
	Database string `koanf:"database"`

	// Step enables the running star rating output by default.
	Step bool `koanf:"step"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		Mode:     "osu",
		Accuracy: 100,
	}
}
