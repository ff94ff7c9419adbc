package outline

import (
	"fmt"
	"strings"
)

// Style is the set of typographic capabilities of a fragment or line.
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
)

// Flag bits used by the extraction layer.
const (
	FlagItalic = 1 << 1
	FlagBold   = 1 << 4
)

// StyleFromFlags derives the capability set from a raw span flags bitmask.
func StyleFromFlags(flags int) Style {
	var s Style
	if flags&FlagBold != 0 {
		s |= Bold
	}
	if flags&FlagItalic != 0 {
		s |= Italic
	}
	return s
}

func (s Style) Bold() bool   { return s&Bold != 0 }
func (s Style) Italic() bool { return s&Italic != 0 }

// Rect is a bounding box in top-down page coordinates.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Union returns the smallest rect covering both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Fragment is one run of text with uniform typography.
type Fragment struct {
	Text  string
	Size  float64
	Font  string
	Style Style
	Box   Rect
}

// LineGroup is a set of fragments the extraction layer emitted as one line.
type LineGroup struct {
	Fragments []Fragment
}

// Top is the vertical position of the group (top of its first fragment box).
func (g LineGroup) Top() float64 {
	if len(g.Fragments) == 0 {
		return 0
	}
	top := g.Fragments[0].Box.Top
	for _, f := range g.Fragments[1:] {
		top = min(top, f.Box.Top)
	}
	return top
}

// Page holds the raw line groups of one page. Number is 1-based.
type Page struct {
	Number int
	Width  float64
	Height float64
	Groups []LineGroup
}

// Line is a reconstructed visual line of text.
type Line struct {
	Text       string
	Size       float64
	Font       string
	Style      Style
	Box        Rect
	Page       int
	PageWidth  float64
	PageHeight float64
	Chars      int
	Words      int
}

func (l Line) Top() float64   { return l.Box.Top }
func (l Line) Left() float64  { return l.Box.Left }
func (l Line) Width() float64 { return l.Box.Right - l.Box.Left }
func (l Line) Bold() bool     { return l.Style.Bold() }

// Level is an outline depth, H1 being the top.
type Level int

const (
	H1 Level = iota + 1
	H2
	H3
	H4
)

func (l Level) String() string {
	if l < H1 || l > H4 {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return fmt.Sprintf("H%d", int(l))
}

func (l Level) MarshalText() ([]byte, error) {
	if l < H1 || l > H4 {
		return nil, fmt.Errorf("invalid heading level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "H1":
		*l = H1
	case "H2":
		*l = H2
	case "H3":
		*l = H3
	case "H4":
		*l = H4
	default:
		return fmt.Errorf("invalid heading level %q", string(b))
	}
	return nil
}

// Entry is one element of the final outline.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Result is the externally visible output for one document.
type Result struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Empty returns the canonical empty result.
func Empty() Result {
	return Result{Title: "", Outline: []Entry{}}
}
