package loader

import (
	"os"
	"path/filepath"
	"testing"

	"cb9-core/internal/config/schema"
	"cb9-core/internal/config/source"
	coreerrors "cb9-core/internal/core/errors"
)

func TestLoader_NewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if len(l.sources) != 0 {
		t.Errorf("NewLoader() sources = %d, want 0", len(l.sources))
	}
}

func TestLoader_AddSource(t *testing.T) {
	l := NewLoader()
	l.AddSource(source.NewDefaultSource())
	l.AddSource(source.NewEnvSource("CB9"))

	if len(l.sources) != 2 {
		t.Errorf("AddSource() sources = %d, want 2", len(l.sources))
	}
}

func TestLoader_Load_NoSources(t *testing.T) {
	l := NewLoader()
	_, err := l.Load()
	if err == nil {
		t.Error("Load() should error when no sources are registered")
	}
}

func TestLoader_Load_DefaultsOnly(t *testing.T) {
	l := NewLoader()
	l.AddSource(source.NewDefaultSource())

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Paths.Root != "~/Documents/script" {
		t.Errorf("Paths.Root = %q", cfg.Paths.Root)
	}
}

func TestLoader_Load_PriorityOrder(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "cb9.yaml")
	yamlContent := `
log:
  level: info
logger:
  name: from-yaml
  level: ERROR
`
	if err := os.WriteFile(configFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CB9_LOGGER_LEVEL", "DEBUG")

	// 添加顺序与优先级相反，Load 应按优先级排序
	l := NewLoader()
	l.AddSource(source.NewCLISource(func(cfg *schema.Root) {
		cfg.Paths.Logs = "/cli/logs"
	}))
	l.AddSource(source.NewEnvSource("CB9"))
	l.AddSource(source.NewYAMLSource(configFile))
	l.AddSource(source.NewDefaultSource())

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info (yaml over defaults)", cfg.Log.Level)
	}
	if cfg.Logger.Name != "from-yaml" {
		t.Errorf("Logger.Name = %q, want from-yaml", cfg.Logger.Name)
	}
	if cfg.Logger.Level != "DEBUG" {
		t.Errorf("Logger.Level = %q, want DEBUG (env over yaml)", cfg.Logger.Level)
	}
	if cfg.Paths.LogDir() != "/cli/logs" {
		t.Errorf("Paths.LogDir() = %q, want /cli/logs", cfg.Paths.LogDir())
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want default text", cfg.Log.Format)
	}
}

func TestLoader_Load_SourceError(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "cb9.yaml")
	if err := os.WriteFile(configFile, []byte("paths: [broken"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	l := NewLoader()
	l.AddSource(source.NewDefaultSource())
	l.AddSource(source.NewYAMLSource(configFile))

	_, err := l.Load()
	if err == nil {
		t.Fatal("Load() should fail on broken YAML")
	}
	if !coreerrors.IsCode(err, coreerrors.CodeConfigError) {
		t.Errorf("error code = %v, want CONFIG_ERROR", coreerrors.GetCode(err))
	}
}

func TestLoaderBuilder_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() should fail when an explicit config file is missing")
	}
}

func TestLoaderBuilder_Build(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "cb9.yaml")
	if err := os.WriteFile(configFile, []byte("paths:\n  root: /from/file\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CB9T_PATHS_TEMP", "/from/env")

	cfg, err := NewLoaderBuilder().
		WithPrefix("CB9T").
		WithConfigFile(configFile).
		WithSource(source.NewCLISource(func(cfg *schema.Root) { cfg.Logger.Name = "cli" })).
		Build().
		Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.Root != "/from/file" {
		t.Errorf("Paths.Root = %q", cfg.Paths.Root)
	}
	if cfg.Paths.TempDir() != "/from/env" {
		t.Errorf("Paths.TempDir() = %q", cfg.Paths.TempDir())
	}
	if cfg.Logger.Name != "cli" {
		t.Errorf("Logger.Name = %q", cfg.Logger.Name)
	}
}
