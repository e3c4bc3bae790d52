// Package config loads the optional uwuc.yaml project file that
// supplies defaults for the cmd/uwuc driver. Its absence is not an
// error: Default() is always a valid Config on its own.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Color selects when the driver colors its diagnostics.
type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// Config is the shape of uwuc.yaml.
type Config struct {
	Glob          string `yaml:"glob"`
	OutExt        string `yaml:"out_ext"`
	TrailingNL    bool   `yaml:"trailing_newline"`
	Color         Color  `yaml:"color"`
}

// Default returns the built-in defaults used when no uwuc.yaml is
// present, or when a present file omits a field.
func Default() Config {
	return Config{
		Glob:       "**/*.uwu",
		OutExt:     ".js",
		TrailingNL: true,
		Color:      ColorAuto,
	}
}

// Load reads uwuc.yaml from dir, overlaying it on Default(). A
// missing file is not an error and yields Default() unchanged.
func Load(dir string) (Config, error) {
	cfg := Default()
	path := dir + "/uwuc.yaml"
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	return cfg, nil
}
