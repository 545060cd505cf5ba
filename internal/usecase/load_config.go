package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-triage/internal/domain"
)

// LoadConfigInput contains the parameters for loading the orchestrator config.
type LoadConfigInput struct {
	Path string // Config file path; defaults to domain.DefaultConfigPath
}

// LoadConfigOutput contains the loaded config.
type LoadConfigOutput struct {
	Config *domain.Config
	Path   string
}

// LoadConfig reads and validates the orchestrator config.
type LoadConfig struct {
	loader domain.ConfigLoader
	logger domain.Logger
}

// NewLoadConfig creates a new LoadConfig use case.
func NewLoadConfig(loader domain.ConfigLoader, logger domain.Logger) *LoadConfig {
	return &LoadConfig{loader: loader, logger: logger}
}

// Execute loads the config. Every failure wraps domain.ErrConfig.
// Non-fatal loader warnings are logged and kept on the config.
func (uc *LoadConfig) Execute(_ context.Context, in LoadConfigInput) (*LoadConfigOutput, error) {
	path := in.Path
	if path == "" {
		path = domain.DefaultConfigPath
	}

	cfg, err := uc.loader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if uc.logger != nil {
		for _, w := range cfg.Warnings {
			uc.logger.Warn(0, "config", w)
		}
		uc.logger.Debug(0, "config", fmt.Sprintf("loaded %d track(s) from %s", len(cfg.Tracks), path))
	}
	return &LoadConfigOutput{Config: cfg, Path: path}, nil
}
