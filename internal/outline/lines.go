package outline

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ReconstructLines merges the raw line groups of every page into logical
// lines. Groups whose tops are within tolerance of their neighbour are
// chained into one candidate set, which absorbs super/subscripts and spans
// the extraction layer split into separate groups.
func ReconstructLines(pages []Page, tolerance float64) []Line {
	var out []Line
	for _, p := range pages {
		out = append(out, reconstructPage(p, tolerance)...)
	}
	return out
}

func reconstructPage(p Page, tolerance float64) []Line {
	groups := make([]LineGroup, 0, len(p.Groups))
	for _, g := range p.Groups {
		var frags []Fragment
		for _, f := range g.Fragments {
			if strings.TrimSpace(f.Text) != "" {
				frags = append(frags, f)
			}
		}
		if len(frags) > 0 {
			groups = append(groups, LineGroup{Fragments: frags})
		}
	}
	if len(groups) == 0 {
		return nil
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Top() < groups[j].Top() })

	var lines []Line
	start := 0
	for i := 1; i <= len(groups); i++ {
		if i < len(groups) && abs(groups[i].Top()-groups[i-1].Top()) < tolerance {
			continue
		}
		if l, ok := mergeGroups(groups[start:i], p); ok {
			lines = append(lines, l)
		}
		start = i
	}
	return lines
}

// mergeGroups joins a candidate set into one line, reading fragments left to right.
func mergeGroups(groups []LineGroup, p Page) (Line, bool) {
	var frags []Fragment
	for _, g := range groups {
		frags = append(frags, g.Fragments...)
	}
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].Box.Left < frags[j].Box.Left })

	var (
		b        strings.Builder
		sizeSum  float64
		used     int
		style    Style
		fonts    []string
		fontSeen = map[string]int{}
	)
	for _, f := range frags {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(text, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		sizeSum += f.Size
		used++
		style |= f.Style
		if _, ok := fontSeen[f.Font]; !ok {
			fonts = append(fonts, f.Font)
		}
		fontSeen[f.Font]++
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return Line{}, false
	}

	box := frags[0].Box
	for _, f := range frags[1:] {
		box = box.Union(f.Box)
	}

	// ties go to the font seen first in reading order
	dominant := fonts[0]
	for _, f := range fonts[1:] {
		if fontSeen[f] > fontSeen[dominant] {
			dominant = f
		}
	}

	return Line{
		Text:       text,
		Size:       sizeSum / float64(used),
		Font:       dominant,
		Style:      style,
		Box:        box,
		Page:       p.Number,
		PageWidth:  p.Width,
		PageHeight: p.Height,
		Chars:      utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
