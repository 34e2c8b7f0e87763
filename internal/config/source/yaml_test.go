package source

import (
	"os"
	"path/filepath"
	"testing"

	"cb9-core/internal/config/schema"
	coreerrors "cb9-core/internal/core/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cb9.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestYAMLSource_Name(t *testing.T) {
	s := NewYAMLSource("cb9.yaml")
	if s.Name() != "yaml" {
		t.Errorf("Name() = %q, want %q", s.Name(), "yaml")
	}
}

func TestYAMLSource_Priority(t *testing.T) {
	s := NewYAMLSource("cb9.yaml")
	if s.Priority() != PriorityYAML {
		t.Errorf("Priority() = %d, want %d", s.Priority(), PriorityYAML)
	}
}

func TestYAMLSource_LoadInto_NonExistent(t *testing.T) {
	cfg := &schema.Root{}
	s := NewYAMLSource("/nonexistent/path/cb9.yaml")

	if err := s.LoadInto(cfg); err != nil {
		t.Errorf("LoadInto() should not error on non-existent file, got %v", err)
	}
}

func TestYAMLSource_LoadInto_RequiredNonExistent(t *testing.T) {
	cfg := &schema.Root{}
	s := NewRequiredYAMLSource("/nonexistent/path/cb9.yaml")

	err := s.LoadInto(cfg)
	if err == nil {
		t.Fatal("LoadInto() should error on missing required file")
	}
	if !coreerrors.IsCode(err, coreerrors.CodeConfigError) {
		t.Errorf("error code = %v, want %v", coreerrors.GetCode(err), coreerrors.CodeConfigError)
	}
}

func TestYAMLSource_LoadInto_ValidFile(t *testing.T) {
	path := writeConfig(t, `
paths:
  root: /srv/script
  logs: joblogs

logger:
  name: nightly
  level: DEBUG
  console: false

retention:
  log_deletions: false
  tasks:
    - name: tmp
      root: /srv/script/temp
      patterns: ["*.tmp", "*.bak"]
      dry_run: true
`)

	cfg := GetDefaultConfig()
	s := NewYAMLSource(path)
	if err := s.LoadInto(cfg); err != nil {
		t.Fatalf("LoadInto() error = %v", err)
	}

	if cfg.Paths.Root != "/srv/script" {
		t.Errorf("Paths.Root = %q", cfg.Paths.Root)
	}
	if cfg.Paths.LogDir() != filepath.Join("/srv/script", "joblogs") {
		t.Errorf("Paths.LogDir() = %q", cfg.Paths.LogDir())
	}
	if cfg.Logger.Name != "nightly" || cfg.Logger.Level != "DEBUG" {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
	if cfg.Logger.Console {
		t.Error("Logger.Console should be overridden to false")
	}
	// 未出现的字段保留默认值
	if !cfg.Logger.Color {
		t.Error("Logger.Color should keep its default")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, should keep default", cfg.Log.Level)
	}
	if cfg.Retention.LogDeletions {
		t.Error("Retention.LogDeletions should be false")
	}
	if len(cfg.Retention.Tasks) != 1 {
		t.Fatalf("Retention.Tasks = %d, want 1", len(cfg.Retention.Tasks))
	}
	task := cfg.Retention.Tasks[0]
	if task.Name != "tmp" || !task.DryRun || len(task.Patterns) != 2 {
		t.Errorf("task = %+v", task)
	}
}

func TestYAMLSource_LoadInto_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "logger: [unclosed")

	cfg := &schema.Root{}
	err := NewYAMLSource(path).LoadInto(cfg)
	if err == nil {
		t.Fatal("LoadInto() should error on invalid YAML")
	}
	if !coreerrors.IsCode(err, coreerrors.CodeConfigError) {
		t.Errorf("error code = %v, want %v", coreerrors.GetCode(err), coreerrors.CodeConfigError)
	}
}

func TestYAMLSource_LoadInto_LaterFileWins(t *testing.T) {
	first := writeConfig(t, "logger:\n  name: first\n  level: ERROR\n")
	second := writeConfig(t, "logger:\n  name: second\n")

	cfg := &schema.Root{}
	if err := NewYAMLSource(first, second).LoadInto(cfg); err != nil {
		t.Fatalf("LoadInto() error = %v", err)
	}
	if cfg.Logger.Name != "second" {
		t.Errorf("Logger.Name = %q, want %q", cfg.Logger.Name, "second")
	}
	if cfg.Logger.Level != "ERROR" {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, "ERROR")
	}
}

func TestFindConfigFile_Explicit(t *testing.T) {
	path := writeConfig(t, "")
	if got := FindConfigFile(path); got != path {
		t.Errorf("FindConfigFile() = %q, want %q", got, path)
	}
}
