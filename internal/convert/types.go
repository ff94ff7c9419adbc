package convert

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/thywilljoshua/pdf-outline/internal/ai"
	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

// Cache stores finished results keyed by document digest.
type Cache interface {
	Get(ctx context.Context, key string) (outline.Result, bool, error)
	Put(ctx context.Context, key string, res outline.Result) error
}

type Config struct {
	InputDir   string
	OutputDir  string
	Workers    int
	Thresholds outline.Thresholds
	// Validate runs a pdfcpu preflight before extraction.
	Validate bool
	Cache    Cache
	Enhancer ai.Enhancer
	Logger   *slog.Logger
}

func (c *Config) defaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Thresholds == (outline.Thresholds{}) {
		c.Thresholds = outline.DefaultThresholds()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Summary reports what a batch run did.
type Summary struct {
	Found   int `json:"found"`
	Written int `json:"written"`
	Failed  int `json:"failed"`
}
