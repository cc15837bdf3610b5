// Package config loads calcc settings from a TOML or YAML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lhaig/calcc/internal/backend"
	"github.com/lhaig/calcc/internal/eval"
)

// Environment variables that override file settings.
const (
	EnvTarget   = "CALCC_TARGET"
	EnvDivision = "CALCC_DIVISION"
)

// Config holds the complete application configuration
type Config struct {
	Target   string `toml:"target" yaml:"target"`
	Division string `toml:"division" yaml:"division"`
	Output   string `toml:"output" yaml:"output"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	Color    bool   `toml:"color" yaml:"color"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-" yaml:"-"`
}

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the format name
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DefaultPaths are searched in order when no path is given.
var DefaultPaths = []string{
	"calcc.toml",
	"calcc.yaml",
	"calcc.yml",
	filepath.Join("${HOME}", ".config", "calcc", "config.toml"),
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Target:   "stack",
		Division: "real",
		Output:   "text",
		LogLevel: "warn",
		Color:    true,
	}
}

// Load reads the configuration at path, or the first of DefaultPaths that
// exists when path is empty. With no file at all the defaults are used.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = discover()
	} else {
		path = os.ExpandEnv(path)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	}

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := parseContent(content, detectFormat(path), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg.Path = path
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func discover() string {
	for _, p := range DefaultPaths {
		p = os.ExpandEnv(p)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// detectFormat determines the configuration format from file extension
func detectFormat(filePath string) Format {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatTOML // Default to TOML
	}
}

// parseContent decodes content over cfg, so keys absent from the file keep
// their current values. Unknown keys are rejected.
func parseContent(content []byte, format Format, cfg *Config) error {
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

// applyEnv overrides settings from the environment
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvTarget); v != "" {
		c.Target = v
	}
	if v := os.Getenv(EnvDivision); v != "" {
		c.Division = v
	}
}

// Validate rejects unknown targets, division modes, output formats and
// log levels.
func (c *Config) Validate() error {
	if _, err := backend.Lookup(c.Target); err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	if _, ok := eval.ParseDivision(c.Division); !ok {
		return fmt.Errorf("invalid division %q (want real or truncate)", c.Division)
	}
	switch c.Output {
	case "text", "yaml":
	default:
		return fmt.Errorf("invalid output %q (want text or yaml)", c.Output)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", c.LogLevel)
	}
	return nil
}

// DivisionMode returns the configured division. Call Validate first.
func (c *Config) DivisionMode() eval.Division {
	d, _ := eval.ParseDivision(c.Division)
	return d
}

// Level returns the configured log level. Call Validate first.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
