// Package config loads pdfoutline settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

type Config struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"`
	// CachePath is a SQLite file for finished results. Empty disables caching.
	CachePath string `yaml:"cache_path"`
	// Preflight runs pdfcpu validation before extraction.
	Preflight bool   `yaml:"validate"`

	Listen      string   `yaml:"listen"`
	MaxUploadMB int      `yaml:"max_upload_mb"`
	CORSOrigins []string `yaml:"cors_origins"`

	AI         AIConfig           `yaml:"ai"`
	Thresholds outline.Thresholds `yaml:"thresholds"`
}

type AIConfig struct {
	// Provider is "" (off) or "gemini".
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		InputDir:    "/app/input",
		OutputDir:   "/app/output",
		Workers:     runtime.NumCPU(),
		Listen:      ":8080",
		MaxUploadMB: 50,
		AI:          AIConfig{Model: "gemini-2.5-flash"},
		Thresholds:  outline.DefaultThresholds(),
	}
}

// Load returns Default merged with the YAML file at path (if path is not
// empty) and then with the environment. A .env file in the working
// directory is read when present.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	_ = godotenv.Load()
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.InputDir = getEnv("PDFOUTLINE_INPUT_DIR", c.InputDir)
	c.OutputDir = getEnv("PDFOUTLINE_OUTPUT_DIR", c.OutputDir)
	c.Workers = getEnvInt("PDFOUTLINE_WORKERS", c.Workers)
	c.CachePath = getEnv("PDFOUTLINE_CACHE", c.CachePath)
	c.Listen = getEnv("PDFOUTLINE_LISTEN", c.Listen)
	c.AI.Provider = getEnv("PDFOUTLINE_AI", c.AI.Provider)
	c.AI.Model = getEnv("PDFOUTLINE_AI_MODEL", c.AI.Model)
	c.AI.APIKey = getEnv("GOOGLE_API_KEY", c.AI.APIKey)
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be > 0")
	}
	switch strings.ToLower(c.AI.Provider) {
	case "", "none", "off":
	case "gemini":
		if c.AI.APIKey == "" {
			return fmt.Errorf("ai provider gemini needs GOOGLE_API_KEY")
		}
	default:
		return fmt.Errorf("unsupported ai provider %q (use gemini or leave empty)", c.AI.Provider)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

// AIEnabled reports whether text repair is switched on.
func (c *Config) AIEnabled() bool {
	return strings.EqualFold(c.AI.Provider, "gemini")
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) * 1024 * 1024 }

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring non-integer environment value", "key", key, "value", v, "default", def)
		return def
	}
	return n
}
