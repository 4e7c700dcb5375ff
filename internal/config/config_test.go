package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
	if len(cfg.Catalog) != 5 {
		t.Errorf("default catalog has %d entries, want 5", len(cfg.Catalog))
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad backend", func(c *Config) { c.Detector.Backend = "gpt" }},
		{"bad send quality", func(c *Config) { c.Detector.SendQuality = 0 }},
		{"negative send max dim", func(c *Config) { c.Detector.SendMaxDim = -1 }},
		{"bad algorithm", func(c *Config) { c.Planner.Algorithm = "diagonal" }},
		{"zero zoom", func(c *Config) { c.Planner.Zoom = 0 }},
		{"zero min image size", func(c *Config) { c.Planner.MinImageSize = 0 }},
		{"empty catalog", func(c *Config) { c.Catalog = nil }},
		{"zero catalog size", func(c *Config) { c.Catalog[0].Width = 0 }},
		{"bad output quality", func(c *Config) { c.Output.Quality = 101 }},
	}

	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() accepted an invalid config", tc.name)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := Default()
	cfg.Planner.Zoom = 1.25
	cfg.Planner.Algorithm = "corner"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Planner.Zoom != 1.25 {
		t.Errorf("loaded zoom = %g, want 1.25", loaded.Planner.Zoom)
	}
	if loaded.Planner.Algorithm != "corner" {
		t.Errorf("loaded algorithm = %q, want %q", loaded.Planner.Algorithm, "corner")
	}
	if len(loaded.Catalog) != len(cfg.Catalog) {
		t.Errorf("loaded catalog has %d entries, want %d", len(loaded.Catalog), len(cfg.Catalog))
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.json"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
