// Package config loads jsoninvert settings from a TOML file.
//
// The file is optional. Values it sets override the built-in defaults;
// command-line arguments override the file.
//
//	input   = "lables.json"
//	output  = "reversed.json"
//	indent  = 4
//	verbose = false
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	errs "github.com/matzehuels/jsoninvert/pkg/errors"
	"github.com/matzehuels/jsoninvert/pkg/invert"
)

const (
	// AppName is used for the configuration directory name.
	AppName = "jsoninvert"

	// FileName is the configuration file name inside the config directory.
	FileName = "config.toml"

	// DefaultInput is the input path used when none is given.
	DefaultInput = "lables.json"

	// DefaultOutput is the output path used when none is given.
	DefaultOutput = "reversed.json"
)

// Config holds user settings.
type Config struct {
	Input   string `toml:"input"`
	Output  string `toml:"output"`
	Indent  int    `toml:"indent"`
	Verbose bool   `toml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input:  DefaultInput,
		Output: DefaultOutput,
		Indent: invert.DefaultIndent,
	}
}

// Validate checks field values.
func (c Config) Validate() error {
	if err := errs.ValidatePath(c.Input); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "input")
	}
	if err := errs.ValidatePath(c.Output); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "output")
	}
	return errs.ValidateIndent(c.Indent)
}

// Parse decodes TOML data on top of the defaults.
// Keys absent from data keep their default values; unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration file at path from fsys.
//
// If optional is true, a missing file yields the defaults instead of an
// error. An empty path always yields the defaults.
func Load(fsys afero.Fs, path string, optional bool) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if optional {
				return Default(), nil
			}
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return Config{}, errs.Wrap(errs.ErrCodeInternal, err, "read config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return cfg, nil
}

// Dir returns the configuration directory using XDG standard (~/.config/jsoninvert/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPath returns the path of the default configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}
