// Package config loads the optional TOML settings file shared by the commands.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

const DefaultLogLevel = "warn"

// Config holds settings that do not change a program's observable behaviour.
type Config struct {
	// LogLevel is a zerolog level name such as "debug" or "trace".
	LogLevel string `toml:"log_level"`
	// MaxTape caps tape memory, e.g. "64MiB". Empty means unbounded.
	MaxTape string `toml:"max_tape"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{LogLevel: DefaultLogLevel}
}

// Load parses the TOML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	if _, err := c.Level(); err != nil {
		return nil, fmt.Errorf("invalid log_level in %s: %w", path, err)
	}
	if _, err := c.MaxTapeCells(); err != nil {
		return nil, fmt.Errorf("invalid max_tape in %s: %w", path, err)
	}
	return c, nil
}

// Level returns the configured log level.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.ParseLevel(DefaultLogLevel)
	}
	return zerolog.ParseLevel(c.LogLevel)
}

// MaxTapeCells returns the tape ceiling in cells, one byte each. Zero means
// unbounded.
func (c *Config) MaxTapeCells() (int, error) {
	if c.MaxTape == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(c.MaxTape)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%s exceeds %s", c.MaxTape, humanize.IBytes(math.MaxInt32))
	}
	return int(n), nil
}
