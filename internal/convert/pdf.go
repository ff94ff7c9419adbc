package convert

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	rpdf "rsc.io/pdf"

	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

// ErrExtract marks failures to open or parse a source PDF.
var ErrExtract = errors.New("pdf extraction failed")

// baselineTolerance is how far two glyph baselines may drift and still be
// emitted as the same line group.
const baselineTolerance = 1.0

var (
	subsetPrefixRe = regexp.MustCompile(`^[A-Z]{6}\+`)

	boldMarkers   = []string{"bold", "black", "heavy", "semibold", "demi"}
	italicMarkers = []string{"italic", "oblique"}
)

// ReadPages opens a PDF file and returns its text as typed fragments
// grouped into lines, one outline.Page per PDF page.
func ReadPages(path string) ([]outline.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	return ReadPagesFrom(f, fi.Size())
}

// ReadPagesFrom is ReadPages over an in-memory or already opened source.
func ReadPagesFrom(ra io.ReaderAt, size int64) (pages []outline.Page, err error) {
	// rsc.io/pdf panics on malformed content streams
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrExtract, r)
		}
	}()

	r, err := rpdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pages = append(pages, readPage(i, p))
	}
	return pages, nil
}

func readPage(num int, p rpdf.Page) outline.Page {
	x0, y0, x1, y1 := mediaBox(p)
	out := outline.Page{Number: num, Width: x1 - x0, Height: y1 - y0}

	var (
		groups []outline.LineGroup
		cur    *outline.LineGroup
		run    *glyphRun
		lastY  float64
	)
	flush := func() {
		if run == nil {
			return
		}
		if f, ok := run.fragment(x0, y1); ok {
			cur.Fragments = append(cur.Fragments, f)
		}
		run = nil
	}
	for _, t := range p.Content().Text {
		if t.S == "" {
			continue
		}
		sameLine := cur != nil && math.Abs(t.Y-lastY) < baselineTolerance
		if !sameLine {
			flush()
			if cur != nil && len(cur.Fragments) > 0 {
				groups = append(groups, *cur)
			}
			cur = &outline.LineGroup{}
		}
		lastY = t.Y
		if run != nil && run.accepts(t) {
			run.add(t)
			continue
		}
		flush()
		run = newGlyphRun(t)
	}
	flush()
	if cur != nil && len(cur.Fragments) > 0 {
		groups = append(groups, *cur)
	}
	out.Groups = groups
	return out
}

// glyphRun accumulates consecutive glyphs sharing font, size and baseline.
type glyphRun struct {
	font  string
	size  float64
	x     float64
	y     float64
	right float64
	text  strings.Builder
}

func newGlyphRun(t rpdf.Text) *glyphRun {
	r := &glyphRun{font: baseFont(t.Font), size: t.FontSize, x: t.X, y: t.Y, right: t.X + t.W}
	r.text.WriteString(t.S)
	return r
}

func (r *glyphRun) accepts(t rpdf.Text) bool {
	if baseFont(t.Font) != r.font || math.Abs(t.FontSize-r.size) > 0.01 {
		return false
	}
	gap := t.X - r.right
	return gap > -r.size && gap < 2*r.size
}

func (r *glyphRun) add(t rpdf.Text) {
	if gap := t.X - r.right; gap > 0.2*r.size && !strings.HasSuffix(r.text.String(), " ") {
		r.text.WriteByte(' ')
	}
	r.text.WriteString(t.S)
	r.right = max(r.right, t.X+t.W)
}

// fragment converts the run into top-down page coordinates.
func (r *glyphRun) fragment(originX, pageTop float64) (outline.Fragment, bool) {
	text := strings.TrimSpace(norm.NFKC.String(r.text.String()))
	if text == "" {
		return outline.Fragment{}, false
	}
	size := math.Round(r.size*100) / 100
	return outline.Fragment{
		Text:  text,
		Size:  size,
		Font:  r.font,
		Style: outline.StyleFromFlags(fontFlags(r.font)),
		Box: outline.Rect{
			Left:   r.x - originX,
			Top:    pageTop - (r.y + size),
			Right:  r.right - originX,
			Bottom: pageTop - r.y,
		},
	}, true
}

// baseFont drops the subset tag ("ABCDEF+") embedded fonts carry, so all
// subsets of one face compare equal.
func baseFont(name string) string {
	return subsetPrefixRe.ReplaceAllString(name, "")
}

// fontFlags infers the span flags bitmask from a PostScript font name.
func fontFlags(font string) int {
	name := strings.ToLower(font)
	flags := 0
	for _, m := range boldMarkers {
		if strings.Contains(name, m) {
			flags |= outline.FlagBold
			break
		}
	}
	for _, m := range italicMarkers {
		if strings.Contains(name, m) {
			flags |= outline.FlagItalic
			break
		}
	}
	return flags
}

// mediaBox returns the page's MediaBox, walking up the page tree when the
// page inherits it. Letter size is assumed when none is present.
func mediaBox(p rpdf.Page) (x0, y0, x1, y1 float64) {
	v := p.V
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			x0, y0 = box.Index(0).Float64(), box.Index(1).Float64()
			x1, y1 = box.Index(2).Float64(), box.Index(3).Float64()
			if x1 < x0 {
				x0, x1 = x1, x0
			}
			if y1 < y0 {
				y0, y1 = y1, y0
			}
			return x0, y0, x1, y1
		}
		v = v.Key("Parent")
	}
	return 0, 0, 612, 792
}
