package outline

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Candidate is a line accepted as a heading, before deduplication.
type Candidate struct {
	Level Level
	Text  string
	Page  int
	Top   float64
	Size  float64
}

const dedupeKeyLen = 40

// dedupeKey lowercases, collapses whitespace, drops punctuation and keeps
// the first 40 characters.
func dedupeKey(text string) string {
	s := strings.ToLower(strings.TrimSpace(norm.NFKC.String(text)))
	s = strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			return r
		}
		return -1
	}, s)
	if utf8.RuneCountInString(s) > dedupeKeyLen {
		s = string([]rune(s)[:dedupeKeyLen])
	}
	return s
}

// better reports whether a should be kept over b: lower level first, then
// earlier page, then longer text.
func better(a, b Candidate) bool {
	if a.Level != b.Level {
		return a.Level < b.Level
	}
	if a.Page != b.Page {
		return a.Page < b.Page
	}
	return utf8.RuneCountInString(a.Text) > utf8.RuneCountInString(b.Text)
}

// Dedupe keeps one candidate per normalized key and orders the survivors
// by page and vertical position.
func Dedupe(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return nil
	}
	var keys []string
	best := map[string]Candidate{}
	for _, c := range cands {
		k := dedupeKey(c.Text)
		cur, ok := best[k]
		if !ok {
			keys = append(keys, k)
			best[k] = c
			continue
		}
		if better(c, cur) {
			best[k] = c
		}
	}

	out := make([]Candidate, 0, len(keys))
	for _, k := range keys {
		out = append(out, best[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].Top < out[j].Top
	})
	return out
}
