package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gork-labs/tsdox/internal/resolver"
)

// Config is the content of a tsdox.yml file. Relative paths are resolved
// against the directory holding the file.
type Config struct {
	BaseDir     string    `yaml:"base_dir"`
	Format      string    `yaml:"format" validate:"omitempty,oneof=json yaml yml"`
	Output      string    `yaml:"output"`
	MaxDepth    int       `yaml:"max_depth" validate:"gte=0"`
	Concurrency int       `yaml:"concurrency" validate:"gte=0"`
	Handlers    []Handler `yaml:"handlers" validate:"dive"`
}

// Handler names one exported function for batch extraction.
type Handler struct {
	File   string `yaml:"file" validate:"required"`
	Export string `yaml:"export" validate:"required"`
}

func loadConfigFile(opts *Options) (*Config, error) {
	if opts.ConfigPath == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(filepath.Clean(opts.ConfigPath))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(opts.ConfigPath)
	for i := range cfg.Handlers {
		cfg.Handlers[i].File = relativeTo(dir, cfg.Handlers[i].File)
	}

	// Apply config values if flags weren't set
	if opts.BaseDir == defaultBaseDir && cfg.BaseDir != "" {
		opts.BaseDir = relativeTo(dir, cfg.BaseDir)
	}
	if opts.Format == defaultFormat && cfg.Format != "" {
		opts.Format = cfg.Format
	}
	if opts.Output == defaultOutput && cfg.Output != "" {
		opts.Output = relativeTo(dir, cfg.Output)
	}
	if opts.MaxDepth == resolver.DefaultMaxDepth && cfg.MaxDepth != 0 {
		opts.MaxDepth = cfg.MaxDepth
	}
	if opts.Concurrency == defaultConcurrency && cfg.Concurrency != 0 {
		opts.Concurrency = cfg.Concurrency
	}

	return &cfg, nil
}

func relativeTo(dir, path string) string {
	if path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
