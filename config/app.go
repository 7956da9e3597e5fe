package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DataDir string        `yaml:"dataDir"` // Where index snapshots are persisted
	Corpus  CorpusConfig  `yaml:"corpus"`  // Optional corpus indexed at startup
	Index   IndexSettings `yaml:"index"`   // Settings for the startup index
	Jobs    JobsConfig    `yaml:"jobs"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	MaxRequestSize int64         `yaml:"maxRequestSize"` // bytes
}

// CorpusConfig points at a directory of pre-crawled HTML pages.
type CorpusConfig struct {
	Dir         string `yaml:"dir"`
	Extension   string `yaml:"extension"`
	Concurrency int    `yaml:"concurrency"` // parallel file reads
}

// JobsConfig sizes the background job manager.
type JobsConfig struct {
	MaxWorkers int `yaml:"maxWorkers"`
}

// MetricsConfig controls the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's command line
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	cfg.Index.ApplyDefaults()

	if conflicts := cfg.Index.Validate(); len(conflicts) > 0 {
		return nil, fmt.Errorf("invalid index settings: %s", strings.Join(conflicts, "; "))
	}
	return cfg, nil
}

// DefaultConfig returns a Config suitable for local use.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			MaxRequestSize: 32 << 20,
		},
		DataDir: "./search_data",
		Corpus: CorpusConfig{
			Extension:   ".html",
			Concurrency: 8,
		},
		Index: IndexSettings{
			Name:          "pages",
			MinTermLength: DefaultMinTermLength,
			TitleBonus:    DefaultTitleBonus,
		},
		Jobs:    JobsConfig{MaxWorkers: 2},
		Metrics: MetricsConfig{Enabled: true},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PAGESEARCH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PAGESEARCH_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PAGESEARCH_CORPUS_DIR"); v != "" {
		cfg.Corpus.Dir = v
	}
	if v := os.Getenv("PAGESEARCH_INDEX_NAME"); v != "" {
		cfg.Index.Name = v
	}
	if v := os.Getenv("PAGESEARCH_TITLE_BONUS"); v != "" {
		if bonus, err := strconv.Atoi(v); err == nil {
			cfg.Index.TitleBonus = bonus
		}
	}
	if v := os.Getenv("PAGESEARCH_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = v == "true" || v == "1"
	}
}
