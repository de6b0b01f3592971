// Package config loads the optional cbr.yml run configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up next to a source file.
const FileName = "cbr.yml"

// Defaults.
const (
	DefaultMaxDepth     = 256
	DefaultMaxCallDepth = 4096
	DefaultSleepUnit    = time.Second
)

// Config holds the run settings of the interpreter.
type Config struct {
	Path string // file the settings came from; empty for defaults

	Verbose      bool
	MaxDepth     int
	MaxCallDepth int
	SleepUnit    time.Duration
	Seed         int64
}

// configFile is the on-disk form.
type configFile struct {
	Verbose      bool   `yaml:"verbose"`
	MaxDepth     *int   `yaml:"max_depth"`
	MaxCallDepth *int   `yaml:"max_call_depth"`
	SleepUnit    string `yaml:"sleep_unit"`
	Seed         int64  `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxDepth:     DefaultMaxDepth,
		MaxCallDepth: DefaultMaxCallDepth,
		SleepUnit:    DefaultSleepUnit,
	}
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString("validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads and validates the configuration at path. Fields the file
// omits keep their defaults; unknown fields are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(path, f)
}

// Decode reads a configuration from r. name is used in messages.
func Decode(name string, r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw configFile
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}

	c := Default()
	c.Path = name
	c.Verbose = raw.Verbose
	c.Seed = raw.Seed
	if raw.MaxDepth != nil {
		c.MaxDepth = *raw.MaxDepth
	}
	if raw.MaxCallDepth != nil {
		c.MaxCallDepth = *raw.MaxCallDepth
	}

	var issues []string
	if raw.SleepUnit != "" {
		d, err := time.ParseDuration(raw.SleepUnit)
		if err != nil {
			issues = append(issues, fmt.Sprintf("sleep_unit %q is not a duration", raw.SleepUnit))
		} else {
			c.SleepUnit = d
		}
	}
	issues = append(issues, c.issues()...)
	if len(issues) > 0 {
		return nil, &ValidationError{Path: name, Issues: issues}
	}
	return c, nil
}

// Find returns the configuration for the program at sourcePath: cbr.yml
// in the same directory if there is one, the defaults otherwise.
func Find(sourcePath string) (*Config, error) {
	path := filepath.Join(filepath.Dir(sourcePath), FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}
	return Load(path)
}

// Validate reports every problem with c.
func (c *Config) Validate() error {
	if issues := c.issues(); len(issues) > 0 {
		return &ValidationError{Path: c.Path, Issues: issues}
	}
	return nil
}

func (c *Config) issues() []string {
	var issues []string
	if c.MaxDepth < 1 {
		issues = append(issues, fmt.Sprintf("max_depth must be positive, got %d", c.MaxDepth))
	}
	if c.MaxCallDepth < 1 {
		issues = append(issues, fmt.Sprintf("max_call_depth must be positive, got %d", c.MaxCallDepth))
	}
	if c.SleepUnit <= 0 {
		issues = append(issues, fmt.Sprintf("sleep_unit must be positive, got %s", c.SleepUnit))
	}
	return issues
}
