package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadUISettingsDefaults(t *testing.T) {
	settings := loadUISettings(filepath.Join(t.TempDir(), "config.json"))
	if settings != defaultUISettings() {
		t.Fatalf("missing file should yield defaults, got %+v", settings)
	}
}

func TestSaveLoadUISettingsPreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"search_debounce_ms": 10}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	settings := defaultUISettings()
	settings.Theme = "solarized"
	settings.ChromaStyle = "monokai"
	if err := saveUISettings(path, settings); err != nil {
		t.Fatalf("saveUISettings failed: %v", err)
	}

	loaded := loadUISettings(path)
	if loaded != settings {
		t.Fatalf("loaded = %+v, want %+v", loaded, settings)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "search_debounce_ms") {
		t.Fatalf("unrelated keys must survive a save: %s", data)
	}

	settings.ChromaStyle = ""
	if err := saveUISettings(path, settings); err != nil {
		t.Fatalf("saveUISettings failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if strings.Contains(string(data), "chroma_style") {
		t.Fatalf("empty chroma style should be removed: %s", data)
	}
}
