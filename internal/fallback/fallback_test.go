package fallback

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dalfonso89/fx-summary-service/internal/testutils"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample_fx.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeDataset(t, `{
		"base": "EUR",
		"rates": {
			"2025-01-02": {"USD": 1.03},
			"2025-01-03": {"USD": 1.05}
		}
	}`)

	loader := NewLoader(path, testutils.MockLogger())

	document, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(document.Rates) != 2 {
		t.Errorf("Load() rates length = %v, want 2", len(document.Rates))
	}
	if document.Rates["2025-01-03"]["USD"] != 1.05 {
		t.Errorf("Load() rate = %v, want %v", document.Rates["2025-01-03"]["USD"], 1.05)
	}
}

func TestLoader_LoadRepeatable(t *testing.T) {
	path := writeDataset(t, `{"rates": {"2025-01-02": {"USD": 1.03}}}`)
	loader := NewLoader(path, testutils.MockLogger())

	first, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() second call error = %v", err)
	}
	if first.Rates["2025-01-02"]["USD"] != second.Rates["2025-01-02"]["USD"] {
		t.Errorf("Load() results differ between calls")
	}
}

func TestLoader_LoadMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing.json"), testutils.MockLogger())

	_, err := loader.Load()
	if err == nil {
		t.Fatal("Load() error = nil, want UnavailableError")
	}

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("Load() error type = %T, want *UnavailableError", err)
	}
}

func TestLoader_LoadMalformedFile(t *testing.T) {
	path := writeDataset(t, `{"rates": not-json`)
	loader := NewLoader(path, testutils.MockLogger())

	_, err := loader.Load()
	if err == nil {
		t.Fatal("Load() error = nil, want UnavailableError")
	}

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("Load() error type = %T, want *UnavailableError", err)
	}
}
