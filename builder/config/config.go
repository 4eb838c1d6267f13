// Package config holds the tunable parameters of a partition run.
// Values come from postsplit.yaml when present and may be overridden by CLI flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "postsplit.yaml"

// Policy decides how strictly input records are checked.
type Policy string

const (
	PolicyLenient Policy = "lenient"
	PolicyStrict  Policy = "strict"
)

// Precompression formats written next to each output file.
const (
	FormatGzip = "gzip"
	FormatZstd = "zstd"
)

type Config struct {
	// Paths, relative ones resolve against DataDir
	DataDir    string `yaml:"dataDir"`
	Input      string `yaml:"input"`
	Index      string `yaml:"index"`
	ContentDir string `yaml:"contentDir"`
	CacheDir   string `yaml:"cacheDir"`

	Policy       Policy   `yaml:"policy"`
	Workers      int      `yaml:"workers"`      // Fan-out workers (default: NumCPU, 2..32)
	Prune        bool     `yaml:"prune"`        // Remove content files of slugs gone from the input
	CompactIndex bool     `yaml:"compactIndex"` // Minified index instead of pretty-printed
	Precompress  []string `yaml:"precompress"`  // "gzip", "zstd"
	UseManifest  bool     `yaml:"useManifest"`

	DebounceDuration time.Duration `yaml:"debounceDuration"` // Watch debounce (default: 200ms)
	CacheDBTimeout   time.Duration `yaml:"cacheDBTimeout"`   // BoltDB timeout (default: 10s)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir:    "data",
		Input:      "blog-posts.json",
		Index:      "blog-index.json",
		ContentDir: "blog-content",
		CacheDir:   ".postsplit-cache",

		Policy:      PolicyLenient,
		Workers:     runtime.NumCPU(),
		UseManifest: true,

		DebounceDuration: 200 * time.Millisecond,
		CacheDBTimeout:   10 * time.Second,
	}
}

// Load reads the YAML file at path over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.validate()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that cannot be clamped and clamps the rest.
func (c *Config) Validate() error {
	c.Policy = Policy(strings.ToLower(string(c.Policy)))
	switch c.Policy {
	case "":
		c.Policy = PolicyLenient
	case PolicyLenient, PolicyStrict:
	default:
		return fmt.Errorf("unknown policy %q (want %q or %q)", c.Policy, PolicyLenient, PolicyStrict)
	}

	seen := make(map[string]bool, len(c.Precompress))
	formats := make([]string, 0, len(c.Precompress))
	for _, f := range c.Precompress {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case "":
			continue
		case "gz":
			f = FormatGzip
		case "zst":
			f = FormatZstd
		case FormatGzip, FormatZstd:
		default:
			return fmt.Errorf("unknown precompress format %q", f)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	c.Precompress = formats

	if c.Input == "" {
		return errors.New("input path must not be empty")
	}
	if c.Index == "" {
		return errors.New("index path must not be empty")
	}
	if c.ContentDir == "" {
		return errors.New("content directory must not be empty")
	}

	c.validate()
	return nil
}

// validate clamps numeric settings into sane bounds
func (c *Config) validate() {
	if c.Workers < 2 {
		c.Workers = 2
	}
	if c.Workers > 32 {
		c.Workers = 32
	}

	if c.DebounceDuration < 10*time.Millisecond {
		c.DebounceDuration = 10 * time.Millisecond
	}
	if c.DebounceDuration > 5*time.Second {
		c.DebounceDuration = 5 * time.Second
	}
	if c.CacheDBTimeout < 1*time.Second {
		c.CacheDBTimeout = 1 * time.Second
	}
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.DataDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(c.DataDir, p)
}

// InputPath is the monolithic posts document.
func (c *Config) InputPath() string { return c.resolve(c.Input) }

// IndexPath is the list-view document.
func (c *Config) IndexPath() string { return c.resolve(c.Index) }

// ContentPath is the per-article directory.
func (c *Config) ContentPath() string { return c.resolve(c.ContentDir) }

// CachePath is not resolved against DataDir.
func (c *Config) CachePath() string { return filepath.Clean(c.CacheDir) }

// HasFormat reports whether a precompression format is enabled.
func (c *Config) HasFormat(format string) bool {
	for _, f := range c.Precompress {
		if f == format {
			return true
		}
	}
	return false
}
