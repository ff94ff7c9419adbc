package outline

import (
	"testing"
)

func frag(text string, size float64, left, top float64) Fragment {
	return Fragment{
		Text: text,
		Size: size,
		Font: "Helvetica",
		Box:  Rect{Left: left, Top: top, Right: left + float64(len(text))*size*0.5, Bottom: top + size},
	}
}

func group(frags ...Fragment) LineGroup { return LineGroup{Fragments: frags} }

func page(n int, groups ...LineGroup) Page {
	return Page{Number: n, Width: 612, Height: 800, Groups: groups}
}

func TestReconstructLines_MergeTolerance(t *testing.T) {
	tests := []struct {
		name      string
		tops      []float64
		wantLines int
	}{
		{"within tolerance", []float64{100, 102}, 1},
		{"beyond tolerance", []float64{100, 108}, 2},
		{"exactly tolerance stays apart", []float64{100, 105}, 2},
		{"chained neighbours", []float64{100, 104, 108}, 1},
		{"chain broken", []float64{100, 104, 110}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var groups []LineGroup
			for i, top := range tt.tops {
				groups = append(groups, group(frag("w", 12, float64(i)*50, top)))
			}
			lines := ReconstructLines([]Page{page(1, groups...)}, 5)
			if len(lines) != tt.wantLines {
				t.Fatalf("got %d lines, want %d: %+v", len(lines), tt.wantLines, lines)
			}
		})
	}
}

func TestReconstructLines_ReadingOrder(t *testing.T) {
	p := page(1,
		group(frag("World", 12, 200, 101)),
		group(frag("Hello", 12, 50, 100)),
	)
	lines := ReconstructLines([]Page{p}, 5)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "Hello World" {
		t.Errorf("text = %q, want %q", lines[0].Text, "Hello World")
	}
	if lines[0].Words != 2 || lines[0].Chars != 11 {
		t.Errorf("words/chars = %d/%d, want 2/11", lines[0].Words, lines[0].Chars)
	}
}

func TestReconstructLines_SortsByTop(t *testing.T) {
	p := page(1,
		group(frag("second", 12, 50, 300)),
		group(frag("first", 12, 50, 100)),
	)
	lines := ReconstructLines([]Page{p}, 5)
	if len(lines) != 2 || lines[0].Text != "first" || lines[1].Text != "second" {
		t.Fatalf("unexpected order: %+v", lines)
	}
}

func TestReconstructLines_DropsWhitespace(t *testing.T) {
	p := page(1,
		group(frag("   ", 12, 50, 100)),
		group(frag("Title", 12, 50, 200), frag(" \t", 30, 10, 200)),
	)
	lines := ReconstructLines([]Page{p}, 5)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Size != 12 {
		t.Errorf("size = %v, whitespace fragment should not count", lines[0].Size)
	}
	if lines[0].Box.Left != 50 {
		t.Errorf("box left = %v, whitespace fragment should not widen the box", lines[0].Box.Left)
	}
}

func TestReconstructLines_Metadata(t *testing.T) {
	a := frag("A", 10, 10, 100)
	a.Font = "Times"
	b := frag("B", 14, 40, 101)
	b.Font = "Arial"
	b.Style = Bold
	c := frag("C", 12, 70, 99)
	c.Font = "Arial"
	c.Style = Italic

	lines := ReconstructLines([]Page{page(3, group(a, b), group(c))}, 5)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	l := lines[0]
	if l.Text != "A B C" {
		t.Errorf("text = %q", l.Text)
	}
	if l.Size != 12 {
		t.Errorf("avg size = %v, want 12", l.Size)
	}
	if l.Font != "Arial" {
		t.Errorf("font = %q, want majority Arial", l.Font)
	}
	if !l.Style.Bold() || !l.Style.Italic() {
		t.Errorf("style = %v, want bold and italic", l.Style)
	}
	if l.Top() != 99 || l.Left() != 10 {
		t.Errorf("top/left = %v/%v, want 99/10", l.Top(), l.Left())
	}
	if l.Page != 3 || l.PageHeight != 800 || l.PageWidth != 612 {
		t.Errorf("page metadata = %d %v %v", l.Page, l.PageHeight, l.PageWidth)
	}
}

func TestReconstructLines_FontTieKeepsFirst(t *testing.T) {
	a := frag("one", 12, 10, 100)
	a.Font = "Serif"
	b := frag("two", 12, 80, 100)
	b.Font = "Sans"
	lines := ReconstructLines([]Page{page(1, group(b, a))}, 5)
	if lines[0].Font != "Serif" {
		t.Errorf("font = %q, want leftmost font on a tie", lines[0].Font)
	}
}

func TestStyleFromFlags(t *testing.T) {
	if s := StyleFromFlags(16); !s.Bold() || s.Italic() {
		t.Errorf("flags 16 -> %v", s)
	}
	if s := StyleFromFlags(2); s.Bold() || !s.Italic() {
		t.Errorf("flags 2 -> %v", s)
	}
	if s := StyleFromFlags(16 | 2 | 4); !s.Bold() || !s.Italic() {
		t.Errorf("flags 22 -> %v", s)
	}
	if s := StyleFromFlags(0); s != 0 {
		t.Errorf("flags 0 -> %v", s)
	}
}
