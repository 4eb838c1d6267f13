package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeConfig writes a postsplit.yaml into a temp dir and returns its path
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Policy != PolicyLenient {
		t.Errorf("Policy = %q, want %q", cfg.Policy, PolicyLenient)
	}
	if cfg.InputPath() != filepath.Join("data", "blog-posts.json") {
		t.Errorf("InputPath() = %q", cfg.InputPath())
	}
	if cfg.IndexPath() != filepath.Join("data", "blog-index.json") {
		t.Errorf("IndexPath() = %q", cfg.IndexPath())
	}
	if cfg.ContentPath() != filepath.Join("data", "blog-content") {
		t.Errorf("ContentPath() = %q", cfg.ContentPath())
	}
	if cfg.CachePath() != ".postsplit-cache" {
		t.Errorf("CachePath() = %q", cfg.CachePath())
	}
	if cfg.Prune {
		t.Error("Prune should be disabled by default")
	}
	if !cfg.UseManifest {
		t.Error("Manifest should be enabled by default")
	}
	if cfg.Workers < 2 || cfg.Workers > 32 {
		t.Errorf("Workers = %d, want within [2, 32]", cfg.Workers)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfig(t, `
dataDir: "src/data"
input: "posts.json"
index: "index.json"
contentDir: "articles"
policy: "STRICT"
workers: 4
prune: true
compactIndex: true
precompress: ["gzip", "zst", "gzip"]
debounceDuration: 1s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Policy != PolicyStrict {
		t.Errorf("Policy = %q, want %q", cfg.Policy, PolicyStrict)
	}
	if cfg.InputPath() != filepath.Join("src", "data", "posts.json") {
		t.Errorf("InputPath() = %q", cfg.InputPath())
	}
	if cfg.ContentPath() != filepath.Join("src", "data", "articles") {
		t.Errorf("ContentPath() = %q", cfg.ContentPath())
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if !cfg.Prune || !cfg.CompactIndex {
		t.Error("Prune and CompactIndex should be enabled")
	}
	if len(cfg.Precompress) != 2 || !cfg.HasFormat(FormatGzip) || !cfg.HasFormat(FormatZstd) {
		t.Errorf("Precompress = %v, want [gzip zstd]", cfg.Precompress)
	}
	if cfg.DebounceDuration != time.Second {
		t.Errorf("DebounceDuration = %v, want 1s", cfg.DebounceDuration)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "policy: [unclosed")

	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail on invalid YAML")
	}
}

func TestLoad_UnknownPolicy(t *testing.T) {
	path := writeConfig(t, "policy: paranoid\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should reject unknown policy")
	}
	if !strings.Contains(err.Error(), "paranoid") {
		t.Errorf("error should name the policy, got %v", err)
	}
}

func TestValidate_Clamping(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		check  func(*testing.T, *Config)
	}{
		{
			name:   "workers below minimum",
			modify: func(c *Config) { c.Workers = 0 },
			check: func(t *testing.T, c *Config) {
				if c.Workers != 2 {
					t.Errorf("Workers = %d, want 2", c.Workers)
				}
			},
		},
		{
			name:   "workers above maximum",
			modify: func(c *Config) { c.Workers = 1000 },
			check: func(t *testing.T, c *Config) {
				if c.Workers != 32 {
					t.Errorf("Workers = %d, want 32", c.Workers)
				}
			},
		},
		{
			name:   "debounce too small",
			modify: func(c *Config) { c.DebounceDuration = time.Millisecond },
			check: func(t *testing.T, c *Config) {
				if c.DebounceDuration != 10*time.Millisecond {
					t.Errorf("DebounceDuration = %v, want 10ms", c.DebounceDuration)
				}
			},
		},
		{
			name:   "db timeout too small",
			modify: func(c *Config) { c.CacheDBTimeout = 0 },
			check: func(t *testing.T, c *Config) {
				if c.CacheDBTimeout != time.Second {
					t.Errorf("CacheDBTimeout = %v, want 1s", c.CacheDBTimeout)
				}
			},
		},
		{
			name:   "empty policy falls back to lenient",
			modify: func(c *Config) { c.Policy = "" },
			check: func(t *testing.T, c *Config) {
				if c.Policy != PolicyLenient {
					t.Errorf("Policy = %q, want lenient", c.Policy)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() failed: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty input", func(c *Config) { c.Input = "" }},
		{"empty index", func(c *Config) { c.Index = "" }},
		{"empty content dir", func(c *Config) { c.ContentDir = "" }},
		{"unknown format", func(c *Config) { c.Precompress = []string{"brotli"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestPaths_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "posts.json")
	cfg := Default()
	cfg.Input = abs

	if cfg.InputPath() != abs {
		t.Errorf("InputPath() = %q, want %q", cfg.InputPath(), abs)
	}
}
