package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-workspace configuration file.
const FileName = "codelens.yaml"

// Config holds the operational knobs for one workspace. None of them change
// the indexing algorithm, only its resource bounds and filters.
type Config struct {
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes"`
	Workers          int   `yaml:"workers"`
	ChunkSize        int   `yaml:"chunk_size"`
	MaxResults       int   `yaml:"max_results"`
	SymbolLimit      int   `yaml:"symbol_limit"`
	FileLimit        int   `yaml:"file_limit"`

	IncludePatterns []string `yaml:"include_patterns"`
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// Watch enables the filesystem watch stream for incremental updates.
	Watch bool `yaml:"watch"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		MaxFileSizeBytes: 500 * 1024,
		Workers:          10,
		ChunkSize:        100,
		SymbolLimit:      100,
		FileLimit:        500,
		Watch:            true,
	}
}

// Resolve builds the effective configuration for a workspace: defaults,
// overlaid by codelens.yaml in the workspace root when present, overlaid by
// CODELENS_* environment variables.
func Resolve(workspace string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(workspace, FileName)
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", FileName, err)
		}
	}

	cfg.applyEnv()

	if cfg.MaxFileSizeBytes <= 0 {
		cfg.MaxFileSizeBytes = Default().MaxFileSizeBytes
	}
	if cfg.Workers <= 0 {
		cfg.Workers = Default().Workers
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = Default().ChunkSize
	}

	return cfg, nil
}

// applyEnv overlays CODELENS_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v, ok := envInt64("CODELENS_MAX_FILE_SIZE"); ok {
		c.MaxFileSizeBytes = v
	}
	if v, ok := envInt("CODELENS_WORKERS"); ok {
		c.Workers = v
	}
	if v, ok := envInt("CODELENS_CHUNK_SIZE"); ok {
		c.ChunkSize = v
	}
	if v, ok := envInt("CODELENS_MAX_RESULTS"); ok {
		c.MaxResults = v
	}
	if v, ok := envInt("CODELENS_SYMBOL_LIMIT"); ok {
		c.SymbolLimit = v
	}
	if v, ok := envInt("CODELENS_FILE_LIMIT"); ok {
		c.FileLimit = v
	}
	if v := os.Getenv("CODELENS_WATCH"); v != "" {
		c.Watch = v == "1" || v == "true"
	}
}

func envInt(name string) (int, bool) {
	v, ok := envInt64(name)
	return int(v), ok
}

func envInt64(name string) (int64, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
