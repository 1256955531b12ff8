// Package model holds the configuration schema shared by the CLI and the
// pipeline.
package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the full creditline configuration
type Config struct {
	Extract     ExtractConfig     `mapstructure:"extract" yaml:"extract"`
	Render      RenderConfig      `mapstructure:"render" yaml:"render"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Input       InputConfig       `mapstructure:"input" yaml:"input"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
}

// ExtractConfig controls how credits are located and followed
type ExtractConfig struct {
	Subject    string `mapstructure:"subject" yaml:"subject"`         // Subject URI; empty means <> dc:source
	BaseURI    string `mapstructure:"base_uri" yaml:"base_uri"`       // Base for relative IRIs; empty means file URL
	MaxDepth   int    `mapstructure:"max_depth" yaml:"max_depth"`     // Source levels followed; 0 is unlimited
	CycleGuard bool   `mapstructure:"cycle_guard" yaml:"cycle_guard"` // Skip sources already on the path
}

// RenderConfig controls the credit line output
type RenderConfig struct {
	Format      string `mapstructure:"format" yaml:"format"` // text, html, markdown, terminal, json
	SourceDepth int    `mapstructure:"source_depth" yaml:"source_depth"`
	Locale      string `mapstructure:"locale" yaml:"locale"`   // Built-in catalog, e.g. "sv"
	Catalog     string `mapstructure:"catalog" yaml:"catalog"` // Catalog file, overrides Locale
	ShowURLs    bool   `mapstructure:"show_urls" yaml:"show_urls"`
}

// CacheConfig controls result caching
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Dir       string        `mapstructure:"dir" yaml:"dir"`
	MemoryTTL time.Duration `mapstructure:"memory_ttl" yaml:"memory_ttl"`
	DiskTTL   time.Duration `mapstructure:"disk_ttl" yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// InputConfig limits what is read
type InputConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes" yaml:"max_bytes"`
}

// OutputConfig controls diagnostics
type OutputConfig struct {
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// Supported render formats
var Formats = []string{"text", "html", "markdown", "terminal", "json"}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	cacheDir := ".creditline/cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".creditline", "cache")
	}

	return &Config{
		Extract: ExtractConfig{
			MaxDepth:   64,
			CycleGuard: true,
		},
		Render: RenderConfig{
			Format:      "text",
			SourceDepth: 1,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Input: InputConfig{
			MaxBytes: 16 << 20,
		},
	}
}

// Validate checks values the pipeline cannot work with
func (c *Config) Validate() error {
	if !validFormat(c.Render.Format) {
		return fmt.Errorf("unknown format %q (want one of %v)", c.Render.Format, Formats)
	}
	if c.Extract.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.Extract.MaxDepth)
	}
	if c.Concurrency.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Concurrency.Workers)
	}
	if c.Input.MaxBytes <= 0 {
		return fmt.Errorf("max_bytes must be positive, got %d", c.Input.MaxBytes)
	}
	return nil
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
