package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/store"
)

// buildConfig merges CLI flag values over the optional config file and the
// package defaults.
func buildConfig(flags config.Config) (config.Config, error) {
	fileCfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	merged := flags.MergeWithDefaults(fileCfg)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// openStore picks the PostgreSQL store when a database URL is configured and
// the JSON file store otherwise. The returned closer is a no-op for the file
// store.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		ps, err := store.ConnectPostgres(ctx, cfg.DatabaseURL, cfg.Owner)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return ps, ps.Close, nil
	}

	fs, err := store.NewFileStore(cfg.DataFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open data file: %w", err)
	}
	return fs, func() {}, nil
}

// newAIClient creates the provider client with any configured model
// overrides applied.
func newAIClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required: set %s or 'api_key' in the config file", config.EnvAPIKey)
	}

	llmCfg := llm.DefaultConfig()
	if cfg.ScoringModel != "" {
		llmCfg.Models[llm.TierScoring] = cfg.ScoringModel
	}
	if cfg.WritingModel != "" {
		llmCfg.Models[llm.TierWriting] = cfg.WritingModel
	}
	return llm.NewClient(ctx, llmCfg, cfg.APIKey)
}
