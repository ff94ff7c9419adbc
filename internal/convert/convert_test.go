package convert

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memCache struct {
	mu   sync.Mutex
	m    map[string]outline.Result
	hits int
}

func (c *memCache) Get(_ context.Context, key string) (outline.Result, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.m[key]
	if ok {
		c.hits++
	}
	return r, ok, nil
}

func (c *memCache) Put(_ context.Context, key string, res outline.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = map[string]outline.Result{}
	}
	c.m[key] = res
	return nil
}

type upperEnhancer struct{ fail bool }

func (e upperEnhancer) RepairTitle(_ context.Context, title string) (string, error) {
	if e.fail {
		return "", errors.New("model unavailable")
	}
	return strings.ToUpper(title), nil
}

func (e upperEnhancer) RepairHeadings(_ context.Context, texts []string) ([]string, error) {
	if e.fail {
		return nil, errors.New("model unavailable")
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = strings.ToUpper(t)
	}
	return out, nil
}

func TestProcess_Fixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	buildPDF(t, path, reportFixture()...)

	p := NewProcessor(Config{Logger: quietLogger()})
	res, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Title != "Annual Report 2024" {
		t.Errorf("title = %q", res.Title)
	}
	if res.Outline == nil {
		t.Error("outline must never be nil")
	}
}

func TestProcess_BadFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewProcessor(Config{Logger: quietLogger()})
	res, err := p.Process(context.Background(), path)
	if err == nil {
		t.Fatal("expected an error")
	}
	if diff := cmp.Diff(outline.Empty(), res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestProcess_Cache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	buildPDF(t, path, reportFixture()...)

	c := &memCache{}
	p := NewProcessor(Config{Cache: c, Logger: quietLogger()})
	first, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if c.hits != 1 {
		t.Errorf("cache hits = %d, want 1", c.hits)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result differs (-first +second):\n%s", diff)
	}

	// Different thresholds must not share entries.
	th := outline.DefaultThresholds()
	th.LargeFont = 1.4
	other := NewProcessor(Config{Cache: c, Thresholds: th, Logger: quietLogger()})
	if _, err := other.Process(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if c.hits != 1 {
		t.Errorf("cache hits = %d after threshold change, want 1", c.hits)
	}
	if len(c.m) != 2 {
		t.Errorf("cache entries = %d, want 2", len(c.m))
	}
}

func TestEnhance(t *testing.T) {
	in := outline.Result{
		Title: "Annual Report",
		Outline: []outline.Entry{
			{Level: outline.H1, Text: "Introduction", Page: 1},
			{Level: outline.H2, Text: "Scope", Page: 2},
		},
	}

	p := NewProcessor(Config{Enhancer: upperEnhancer{}, Logger: quietLogger()})
	got := p.enhance(context.Background(), "doc.pdf", in)
	want := outline.Result{
		Title: "ANNUAL REPORT",
		Outline: []outline.Entry{
			{Level: outline.H1, Text: "INTRODUCTION", Page: 1},
			{Level: outline.H2, Text: "SCOPE", Page: 2},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("enhance mismatch (-want +got):\n%s", diff)
	}
	if in.Outline[0].Text != "Introduction" {
		t.Error("enhance must not mutate its input")
	}

	p = NewProcessor(Config{Enhancer: upperEnhancer{fail: true}, Logger: quietLogger()})
	if diff := cmp.Diff(in, p.enhance(context.Background(), "doc.pdf", in)); diff != "" {
		t.Errorf("failed repair should keep the original (-want +got):\n%s", diff)
	}
}

func TestRun_MissingInputDir(t *testing.T) {
	dir := t.TempDir()
	sum, err := Run(context.Background(), Config{
		InputDir:  filepath.Join(dir, "nope"),
		OutputDir: filepath.Join(dir, "out"),
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum != (Summary{}) {
		t.Errorf("summary = %+v, want zero", sum)
	}
}

func TestRun_NoPDFs(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(filepath.Join(in, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	sum, err := Run(context.Background(), Config{InputDir: in, OutputDir: out, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum != (Summary{}) {
		t.Errorf("summary = %+v, want zero", sum)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Errorf("output dir has %d files, want 0", len(entries))
	}
}

func TestRun_Batch(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	buildPDF(t, filepath.Join(in, "report.pdf"), reportFixture()...)
	if err := os.WriteFile(filepath.Join(in, "bad.PDF"), []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(in, "readme.md"), []byte("# hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	sum, err := Run(context.Background(), Config{InputDir: in, OutputDir: out, Workers: 2, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(Summary{Found: 2, Written: 2, Failed: 1}, sum); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(filepath.Join(out, "bad.json"))
	if err != nil {
		t.Fatalf("read bad.json: %v", err)
	}
	if got, want := string(raw), "{\n  \"title\": \"\",\n  \"outline\": []\n}\n"; got != want {
		t.Errorf("bad.json = %q, want %q", got, want)
	}

	raw, err = os.ReadFile(filepath.Join(out, "report.json"))
	if err != nil {
		t.Fatalf("read report.json: %v", err)
	}
	var res outline.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		t.Fatalf("decode report.json: %v", err)
	}
	if res.Title != "Annual Report 2024" {
		t.Errorf("title = %q", res.Title)
	}
}

func TestRun_Cancelled(t *testing.T) {
	in := t.TempDir()
	buildPDF(t, filepath.Join(in, "report.pdf"), reportFixture()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{InputDir: in, OutputDir: t.TempDir(), Logger: quietLogger()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestProcess_Preflight(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "report.pdf")
	buildPDF(t, good, reportFixture()...)
	bad := filepath.Join(dir, "truncated.pdf")
	raw, err := os.ReadFile(good)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, raw[:len(raw)/3], 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProcessor(Config{Validate: true, Logger: quietLogger()})
	if res, err := p.Process(context.Background(), good); err != nil || res.Title != "Annual Report 2024" {
		t.Errorf("valid file: title %q, err %v", res.Title, err)
	}
	res, err := p.Process(context.Background(), bad)
	if !errors.Is(err, ErrExtract) {
		t.Errorf("truncated file: err = %v, want ErrExtract", err)
	}
	if diff := cmp.Diff(outline.Empty(), res); diff != "" {
		t.Errorf("truncated file result (-want +got):\n%s", diff)
	}
}
