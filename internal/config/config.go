// Package config loads the optional venndy configuration file.
//
// A configuration file is TOML:
//
//	mode = "count"
//	format = "text"
//	labels = ["cats", "dogs"]
//	output = "pets.svg"
//
//	[log]
//	level = "debug"
//	format = "json"
package config

import (
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/rdeusser/venn/venn"
)

// Config holds settings shared by the venndy commands. Command line flags
// override values read from a file.
type Config struct {
	Mode   venn.Mode `toml:"mode"`
	Format string    `toml:"format"`
	Labels []string  `toml:"labels"`
	Output string    `toml:"output"`
	Log    Log       `toml:"log"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Mode:   venn.ModeCount,
		Format: "text",
		Log: Log{
			Level:  "info",
			Format: "cli",
		},
	}
}

// Load reads the file at path on top of the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}

	return Parse(data, cfg)
}

// Parse decodes TOML data on top of base. Unknown keys are rejected so that
// typos do not go unnoticed.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	cfg.Labels = slices.Clone(base.Labels)

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, &venn.ConfigurationError{Reason: "invalid config file", Err: err}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, &venn.ConfigurationError{Reason: "unknown config key " + undecoded[0].String()}
	}

	// An empty list means the default labels, same as leaving it out.
	if len(cfg.Labels) == 0 {
		cfg.Labels = nil
	}

	return cfg, nil
}
