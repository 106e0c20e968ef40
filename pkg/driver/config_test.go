package driver

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
max_depth: 5000
log_level: debug
print_result: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MaxDepth != 5000 {
		t.Fatalf("MaxDepth = %d, want 5000", cfg.MaxDepth)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("SlogLevel = %v, want debug", cfg.SlogLevel())
	}
	if !cfg.PrintResult {
		t.Fatalf("expected print_result to be enabled")
	}
	if !cfg.Color {
		t.Fatalf("color should keep its default when absent")
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadConfigEmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	def := DefaultConfig()
	if cfg.MaxDepth != def.MaxDepth || cfg.LogLevel != def.LogLevel || cfg.Color != def.Color {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoadConfigRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, `
max_depth: 10
stack_size: 20
`)
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "stack_size") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	path := writeConfig(t, `
max_depth: 0
log_level: loud
`)
	_, err := LoadConfig(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %#v", verr.Issues)
	}
	if !strings.Contains(verr.Error(), "max_depth must be positive") {
		t.Fatalf("unexpected message: %s", verr.Error())
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte("max_depth: 42\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig returned error: %v", err)
	}
	if found != filepath.Join(root, ConfigFileName) {
		t.Fatalf("FindConfig = %q, want %q", found, filepath.Join(root, ConfigFileName))
	}
}

func TestFindConfigFromFilePath(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte("color: false\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	doc := filepath.Join(root, "program.json")
	if err := os.WriteFile(doc, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}
	found, err := FindConfig(doc)
	if err != nil {
		t.Fatalf("FindConfig returned error: %v", err)
	}
	if filepath.Dir(found) != root {
		t.Fatalf("FindConfig = %q, want a file in %q", found, root)
	}
}

func TestSlogLevelFallsBackToWarn(t *testing.T) {
	cfg := Config{LogLevel: "chatty"}
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Fatalf("expected warn fallback, got %v", cfg.SlogLevel())
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
