package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		PoolDir:  "/pool",
		Products: []string{"steamos"},
		Releases: []string{"hoatzin", "holo"},
		Variants: []string{"steamdeck"},
		Archs:    []string{"amd64"},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing pool dir", func(c *Config) { c.PoolDir = "" }, true},
		{"empty products", func(c *Config) { c.Products = nil }, true},
		{"empty releases", func(c *Config) { c.Releases = nil }, true},
		{"empty variants", func(c *Config) { c.Variants = nil }, true},
		{"empty archs", func(c *Config) { c.Archs = nil }, true},
		{"unsorted releases", func(c *Config) { c.Releases = []string{"holo", "hoatzin"} }, true},
		{"remote info without export dir", func(c *Config) { c.RemoteInfo = true; c.ExportDir = "" }, true},
		{"remote info with export dir", func(c *Config) { c.RemoteInfo = true; c.ExportDir = "/out" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `
pool_dir: /pool
products: [steamos]
releases: [hoatzin, holo]
variants: [steamdeck]
archs: [amd64]
export_dir: /out
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if !cfg.RemoteInfo {
		t.Fatalf("RemoteInfo default = false, want true")
	}
	if cfg.WatchDebounce <= 0 {
		t.Fatalf("WatchDebounce default = %v, want > 0", cfg.WatchDebounce)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatalf("Load() of a missing file err = nil, want error")
	}
}
