package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/thywilljoshua/pdf-outline/internal/ai"
	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

// Processor turns one PDF into an outline result.
type Processor struct {
	ex       *outline.Extractor
	validate bool
	cache    Cache
	enhancer ai.Enhancer
	logger   *slog.Logger
}

func NewProcessor(cfg Config) *Processor {
	cfg.defaults()
	return &Processor{
		ex:       outline.New(cfg.Thresholds),
		validate: cfg.Validate,
		cache:    cfg.Cache,
		enhancer: cfg.Enhancer,
		logger:   cfg.Logger,
	}
}

// Process extracts the outline of the PDF at path. The returned result is
// always usable: on failure it is the canonical empty result and err says
// why. Failures are logged here so callers may ignore err.
func (p *Processor) Process(ctx context.Context, path string) (res outline.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("outline pipeline panic: %v", r)
		}
		if err != nil {
			p.logger.Error("outline extraction failed", "file", path, "err", err)
			res = outline.Empty()
		}
	}()
	if err := ctx.Err(); err != nil {
		return outline.Empty(), err
	}

	var key string
	if p.cache != nil {
		key, err = p.cacheKey(path)
		if err != nil {
			return outline.Empty(), fmt.Errorf("%w: %v", ErrExtract, err)
		}
		if cached, ok, cerr := p.cache.Get(ctx, key); cerr != nil {
			p.logger.Warn("cache lookup failed", "file", path, "err", cerr)
		} else if ok {
			p.logger.Debug("cache hit", "file", path)
			return cached, nil
		}
	}

	if p.validate {
		if err := preflight(path); err != nil {
			return outline.Empty(), err
		}
	}
	pages, err := ReadPages(path)
	if err != nil {
		return outline.Empty(), err
	}
	res = p.ex.Extract(pages)
	res = p.enhance(ctx, path, res)

	if p.cache != nil {
		if cerr := p.cache.Put(ctx, key, res); cerr != nil {
			p.logger.Warn("cache store failed", "file", path, "err", cerr)
		}
	}
	return res, nil
}

// ProcessReader extracts the outline from an in-memory PDF. name only
// labels log lines.
func (p *Processor) ProcessReader(ctx context.Context, name string, ra io.ReaderAt, size int64) (res outline.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("outline pipeline panic: %v", r)
		}
		if err != nil {
			p.logger.Error("outline extraction failed", "file", name, "err", err)
			res = outline.Empty()
		}
	}()
	pages, err := ReadPagesFrom(ra, size)
	if err != nil {
		return outline.Empty(), err
	}
	return p.enhance(ctx, name, p.ex.Extract(pages)), nil
}

// enhance applies the optional text repair. Any failure keeps the original.
func (p *Processor) enhance(ctx context.Context, path string, res outline.Result) outline.Result {
	if p.enhancer == nil {
		return res
	}
	if t, err := p.enhancer.RepairTitle(ctx, res.Title); err != nil {
		p.logger.Warn("title repair failed", "file", path, "err", err)
	} else if strings.TrimSpace(t) != "" {
		res.Title = t
	}

	if len(res.Outline) == 0 {
		return res
	}
	texts := make([]string, len(res.Outline))
	for i, e := range res.Outline {
		texts[i] = e.Text
	}
	fixed, err := p.enhancer.RepairHeadings(ctx, texts)
	if err != nil || len(fixed) != len(texts) {
		p.logger.Warn("heading repair skipped", "file", path, "err", err)
		return res
	}
	out := make([]outline.Entry, len(res.Outline))
	for i, e := range res.Outline {
		if strings.TrimSpace(fixed[i]) != "" {
			e.Text = fixed[i]
		}
		out[i] = e
	}
	res.Outline = out
	return res
}

// cacheKey digests the file together with the thresholds, so a change of
// tuning never serves a stale result.
func (p *Processor) cacheKey(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	fmt.Fprintf(h, "%+v", p.ex.Thresholds())
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Run processes every PDF in cfg.InputDir and writes one JSON file per
// document into cfg.OutputDir. A missing input directory or an empty one is
// not an error. Documents that fail still get the empty result written.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	cfg.defaults()
	log := cfg.Logger

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}
	files, err := listPDFs(cfg.InputDir)
	if errors.Is(err, os.ErrNotExist) {
		log.Error("input directory does not exist", "dir", cfg.InputDir)
		return Summary{}, nil
	}
	if err != nil {
		return Summary{}, fmt.Errorf("scan input dir: %w", err)
	}
	if len(files) == 0 {
		log.Info("no PDF files found in input directory", "dir", cfg.InputDir)
		return Summary{}, nil
	}
	log.Info("found PDF files to process", "count", len(files))

	proc := NewProcessor(cfg)
	var written, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in := filepath.Join(cfg.InputDir, name)
			out := filepath.Join(cfg.OutputDir, outputName(name))
			log.Info("processing", "file", name)

			res, perr := proc.Process(gctx, in)
			if perr != nil {
				failed.Add(1)
			}
			if err := writeResultFile(out, res); err != nil {
				log.Error("failed to write result", "file", name, "err", err)
				if perr == nil {
					failed.Add(1)
				}
				return nil
			}
			written.Add(1)
			log.Info("generated", "file", filepath.Base(out))
			return nil
		})
	}
	err = g.Wait()
	sum := Summary{Found: len(files), Written: int(written.Load()), Failed: int(failed.Load())}
	return sum, err
}

func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}
