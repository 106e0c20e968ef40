package interpreter

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rodrigocam/rinha/pkg/driver"
	"github.com/rodrigocam/rinha/pkg/runtime"
)

type fixtureManifest struct {
	Description string `json:"description"`
	Entry       string `json:"entry"`
	MaxDepth    int    `json:"maxDepth"`
	Expect      struct {
		Result *struct {
			Kind  string          `json:"kind"`
			Value json.RawMessage `json:"value"`
		} `json:"result"`
		Stdout []string `json:"stdout"`
		Errors []string `json:"errors"`
	} `json:"expect"`
}

func TestFixtures(t *testing.T) {
	root := filepath.Join("..", "..", "fixtures")
	count := 0
	walkFixtures(t, root, func(dir string) {
		count++
		rel, _ := filepath.Rel(root, dir)
		t.Run(filepath.ToSlash(rel), func(t *testing.T) {
			runFixture(t, dir)
		})
	})
	if count == 0 {
		t.Fatalf("no fixtures found under %s", root)
	}
}

func runFixture(t *testing.T, dir string) {
	manifest := readManifest(t, dir)
	entry := manifest.Entry
	if entry == "" {
		entry = "program.json"
	}
	var out bytes.Buffer
	opts := []Option{WithOutput(&out)}
	if manifest.MaxDepth > 0 {
		opts = append(opts, WithMaxDepth(manifest.MaxDepth))
	}
	interp := New(opts...)

	file, err := driver.LoadDocument(filepath.Join(dir, entry))
	var result runtime.Value
	if err == nil {
		result, err = interp.Run(file)
	}

	if len(manifest.Expect.Errors) > 0 {
		if err == nil {
			t.Fatalf("fixture %s expected an error, got %#v", dir, result)
		}
		diag := fixtureDiagnostic(err)
		described := driver.DescribeDiagnostic(diag)
		if !contains(manifest.Expect.Errors, described) && !contains(manifest.Expect.Errors, diag.Kind) {
			t.Fatalf("fixture %s expected error in %v, got %q (%s)", dir, manifest.Expect.Errors, described, diag.Kind)
		}
	} else if err != nil {
		t.Fatalf("fixture %s evaluation error: %v", dir, err)
	}

	if manifest.Expect.Stdout != nil || len(manifest.Expect.Errors) == 0 {
		var lines []string
		if text := strings.TrimSuffix(out.String(), "\n"); text != "" {
			lines = strings.Split(text, "\n")
		}
		if strings.Join(lines, "\n") != strings.Join(manifest.Expect.Stdout, "\n") {
			t.Fatalf("fixture %s expected stdout %q, got %q", dir, manifest.Expect.Stdout, lines)
		}
	}

	if expected := manifest.Expect.Result; expected != nil && err == nil {
		if got := result.Kind().String(); got != expected.Kind {
			t.Fatalf("fixture %s expected result kind %s, got %s", dir, expected.Kind, got)
		}
		if len(expected.Value) > 0 {
			want := rawText(expected.Value)
			if got := runtime.Format(result); got != want {
				t.Fatalf("fixture %s expected result %q, got %q", dir, want, got)
			}
		}
	}
}

func fixtureDiagnostic(err error) driver.Diagnostic {
	var docErr *driver.DocumentError
	if errors.As(err, &docErr) {
		return docErr.Diagnostic()
	}
	return RuntimeDiagnostic(err)
}

func walkFixtures(t *testing.T, dir string, fn func(string)) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	hasManifest := false
	for _, entry := range entries {
		if entry.Type().IsRegular() && entry.Name() == "manifest.json" {
			hasManifest = true
		}
	}
	if hasManifest {
		fn(dir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			walkFixtures(t, filepath.Join(dir, entry.Name()), fn)
		}
	}
}

func readManifest(t *testing.T, dir string) fixtureManifest {
	t.Helper()
	manifestPath := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("read manifest %s: %v", manifestPath, err)
	}
	var manifest fixtureManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("parse manifest %s: %v", manifestPath, err)
	}
	return manifest
}

// rawText unquotes JSON strings and keeps numbers and booleans verbatim, so
// both "x1" and 42 compare against the canonical rendering.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
