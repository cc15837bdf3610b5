package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lhaig/calcc/internal/eval"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Target != "stack" || cfg.Division != "real" || cfg.Output != "text" || cfg.LogLevel != "warn" || !cfg.Color {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "calcc.toml", `
target = "asm"
division = "truncate"
color = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target != "asm" {
		t.Errorf("Target = %q, want asm", cfg.Target)
	}
	if cfg.DivisionMode() != eval.DivTruncate {
		t.Errorf("DivisionMode() = %v, want truncate", cfg.DivisionMode())
	}
	if cfg.Color {
		t.Error("Color = true, want false")
	}
	if cfg.Output != "text" || cfg.LogLevel != "warn" {
		t.Errorf("absent keys must keep defaults, got %+v", cfg)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"calcc.yaml", "calcc.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, "output: yaml\nlog_level: debug\n")
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Output != "yaml" {
				t.Errorf("Output = %q, want yaml", cfg.Output)
			}
			if cfg.Level() != slog.LevelDebug {
				t.Errorf("Level() = %v, want debug", cfg.Level())
			}
			if cfg.Target != "stack" {
				t.Errorf("Target = %q, want default stack", cfg.Target)
			}
		})
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "calcc.yaml", ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target != "stack" {
		t.Errorf("Target = %q, want stack", cfg.Target)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errPart string
	}{
		{"unknown toml key", "c.toml", `targte = "asm"`, "unknown key"},
		{"unknown yaml key", "c.yaml", "colour: false\n", "YAML parse error"},
		{"bad toml", "c.toml", `target = `, "TOML parse error"},
		{"bad target", "c.toml", `target = "jvm"`, "invalid target"},
		{"bad division", "c.yaml", "division: floor\n", "invalid division"},
		{"bad output", "c.toml", `output = "json"`, "invalid output"},
		{"bad log level", "c.toml", `log_level = "loud"`, "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestLoadDiscovery(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "calcc.yml"), []byte("target: asm\n"), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target != "asm" || cfg.Path != "calcc.yml" {
		t.Errorf("expected discovered calcc.yml, got %+v", cfg)
	}
}

func TestLoadNoFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != "" || cfg.Target != "stack" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "calcc.toml", `target = "stack"`)
	t.Setenv(EnvTarget, "asm")
	t.Setenv(EnvDivision, "truncate")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target != "asm" || cfg.Division != "truncate" {
		t.Errorf("expected environment to win, got %+v", cfg)
	}

	t.Setenv(EnvTarget, "bogus")
	if _, err := Load(path); err == nil {
		t.Error("expected invalid environment value to fail validation")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"a.toml", FormatTOML},
		{"a.yaml", FormatYAML},
		{"A.YML", FormatYAML},
		{"a.conf", FormatTOML},
	}
	for _, tt := range tests {
		if got := detectFormat(tt.path); got != tt.expected {
			t.Errorf("detectFormat(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
