// Package config loads the pipeline configuration: seed pages, HTTP
// settings and the data directory layout. A YAML file overrides the
// built-in defaults field by field.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/gaurav-prasanna/studyharvest/crawl"
	"gopkg.in/yaml.v2"
)

// baseURL is the main source site of the default seeds.
const baseURL = "https://www.fomesoutra.com"

// SourceConfig is one seed page and the source type of its documents.
type SourceConfig struct {
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
}

// HTTPConfig tunes page fetching and PDF downloads. Zero timeouts select
// the fetcher defaults; a zero delay disables download pacing.
type HTTPConfig struct {
	UserAgent          string `yaml:"user_agent"`
	PageTimeoutSec     int    `yaml:"page_timeout_sec"`
	DownloadTimeoutSec int    `yaml:"download_timeout_sec"`
	DownloadDelayMS    int    `yaml:"download_delay_ms"`
}

// PathsConfig lays out the data directory. Every entry except DataRoot is
// relative to DataRoot.
type PathsConfig struct {
	DataRoot  string `yaml:"data_root"`
	URLs      string `yaml:"urls"`
	PDFs      string `yaml:"pdfs"`
	Extracted string `yaml:"extracted"`
	Raw       string `yaml:"raw"`
	Report    string `yaml:"report"`
	Failed    string `yaml:"failed"`
}

// LogConfig selects the log level (debug, info, warn, error) and format
// (pretty or json).
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ExtractConfig tunes PDF text extraction.
type ExtractConfig struct {
	// MaxPages limits how many pages are read per PDF; zero reads them all.
	MaxPages int `yaml:"max_pages"`
}

// Config is the full pipeline configuration.
type Config struct {
	Sources []SourceConfig `yaml:"sources"`
	HTTP    HTTPConfig     `yaml:"http"`
	Paths   PathsConfig    `yaml:"paths"`
	Extract ExtractConfig  `yaml:"extract"`
	Log     LogConfig      `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Sources: []SourceConfig{
			{Type: "exercice", URL: baseURL + "/cours/secondaire/3eme/maths"},
			{Type: "annale", URL: baseURL + "/bepc/sujets-de-maths-3eme/anciens-sujets-de-mathematique-du-bepc"},
			{Type: "livre", URL: baseURL + "/les-livres/livres-et-annales-de-la-troisieme?limit=100"},
			{Type: "annale", URL: "https://www.banquedesepreuves.com/index.php/component/edocman/cote-d-ivoire/bepc"},
			{Type: "annale", URL: "https://epreuvesetcorriges.com/categories/cote-d-ivoire/examens/bepc"},
			{Type: "annale", URL: "https://sujetcorrige.com/sujets-bepc-cote-d-ivoire"},
		},
		HTTP: HTTPConfig{
			PageTimeoutSec:     25,
			DownloadTimeoutSec: 60,
			DownloadDelayMS:    500,
		},
		Paths: PathsConfig{
			DataRoot:  "data",
			URLs:      "urls.json",
			PDFs:      "pdfs",
			Extracted: "extracted",
			Raw:       "raw",
			Report:    "download_report.json",
			Failed:    "failed_urls.json",
		},
		Log: LogConfig{Level: "info", Format: "pretty"},
	}
}

// Load reads a YAML file on top of Default. An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown source types, empty seed URLs and a negative
// page limit.
func (c *Config) Validate() error {
	for i, s := range c.Sources {
		if !core.SourceType(s.Type).Valid() {
			return fmt.Errorf("sources[%d]: unknown type %q", i, s.Type)
		}
		if s.URL == "" {
			return fmt.Errorf("sources[%d]: missing url", i)
		}
	}
	if c.Extract.MaxPages < 0 {
		return fmt.Errorf("extract.max_pages must not be negative, got %d", c.Extract.MaxPages)
	}
	return nil
}

// Seeds returns the sources in configuration order.
func (c *Config) Seeds() []crawl.Seed {
	seeds := make([]crawl.Seed, 0, len(c.Sources))
	for _, s := range c.Sources {
		seeds = append(seeds, crawl.Seed{SourceType: core.SourceType(s.Type), URL: s.URL})
	}
	return seeds
}

// PageTimeout is the per-request timeout for seed and landing pages.
func (h HTTPConfig) PageTimeout() time.Duration {
	return time.Duration(h.PageTimeoutSec) * time.Second
}

// DownloadTimeout is the per-request timeout for PDF downloads.
func (h HTTPConfig) DownloadTimeout() time.Duration {
	return time.Duration(h.DownloadTimeoutSec) * time.Second
}

// DownloadDelay is the minimum spacing between two downloads.
func (h HTTPConfig) DownloadDelay() time.Duration {
	return time.Duration(h.DownloadDelayMS) * time.Millisecond
}

// In returns a path inside the data root.
func (p PathsConfig) In(name string) string {
	return filepath.Join(p.DataRoot, name)
}
