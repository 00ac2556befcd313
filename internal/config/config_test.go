package config

import (
	"os"
	"path/filepath"
	"testing"

	"service-estimator/internal/errors"
)

func TestLoadMissingGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.DefaultFormat != "cli" || cfg.Storage.Backend != "sqlite" || cfg.Engine.SweepWorkers != 4 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Catalog.Path = "catalogs/k8s.hcl"
	cfg.Output.DefaultFormat = "json"
	cfg.Storage.Backend = "file"
	cfg.Engine.SweepWorkers = 2
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Catalog.Path != "catalogs/k8s.hcl" || loaded.Output.DefaultFormat != "json" ||
		loaded.Storage.Backend != "file" || loaded.Engine.SweepWorkers != 2 {
		t.Errorf("unexpected round trip %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"output": {"default_format": "json"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("expected json, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Engine.SweepWorkers != 4 || cfg.Storage.Backend != "sqlite" {
		t.Errorf("expected untouched sections to keep defaults, got %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{"output": `},
		{"format", `{"output": {"default_format": "xml"}}`},
		{"backend", `{"storage": {"backend": "postgres"}}`},
		{"workers", `{"engine": {"sweep_workers": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}
