package main

import (
	"context"
	"fmt"

	"github.com/thywilljoshua/pdf-outline/internal/ai"
	"github.com/thywilljoshua/pdf-outline/internal/cache"
	"github.com/thywilljoshua/pdf-outline/internal/convert"
)

// pipelineConfig builds the processor settings from the loaded config. The
// returned cleanup closes the cache, if one was opened.
func (a *app) pipelineConfig(ctx context.Context) (convert.Config, func(), error) {
	cfg := convert.Config{
		InputDir:   a.cfg.InputDir,
		OutputDir:  a.cfg.OutputDir,
		Workers:    a.cfg.Workers,
		Thresholds: a.cfg.Thresholds,
		Validate:   a.cfg.Preflight,
		Logger:     a.logger,
	}
	cleanup := func() {}

	if a.cfg.AIEnabled() {
		g, err := ai.NewGemini(ctx, a.cfg.AI.APIKey, a.cfg.AI.Model)
		if err != nil {
			return cfg, cleanup, fmt.Errorf("init gemini: %w", err)
		}
		cfg.Enhancer = g
	}

	if a.cfg.CachePath != "" {
		store, err := cache.Open(a.cfg.CachePath)
		if err != nil {
			return cfg, cleanup, err
		}
		cfg.Cache = store
		cleanup = func() {
			if err := store.Close(); err != nil {
				a.logger.Warn("closing cache", "err", err)
			}
		}
	}
	return cfg, cleanup, nil
}
