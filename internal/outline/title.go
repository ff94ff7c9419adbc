package outline

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ExtractTitle picks the document title from the early lines. A document
// with flyer indicators never has one, whatever other family it matches;
// forms and proposals try their own rules before the general largest-font
// rule.
func ExtractTitle(lines []Line, s *Structure, th Thresholds) string {
	if len(lines) == 0 || s.Flyer {
		return ""
	}
	switch s.Family() {
	case Form:
		if t := formTitle(lines, th); t != "" {
			return t
		}
	case Proposal:
		if t := proposalTitle(lines, s, th); t != "" {
			return t
		}
	}
	return generalTitle(lines, s, th)
}

func formTitle(lines []Line, th Thresholds) string {
	var first []Line
	for _, l := range lines {
		if l.Page == 1 {
			first = append(first, l)
			if len(first) == 10 {
				break
			}
		}
	}
	for _, l := range first {
		text := strings.TrimSpace(l.Text)
		n := utf8.RuneCountInString(text)
		if IsNoise(l, th) || n < 10 {
			continue
		}
		lower := strings.ToLower(text)
		if (strings.Contains(lower, "form") || strings.Contains(lower, "application")) && n > 15 {
			return text
		}
	}
	return ""
}

type titleCandidate struct {
	text  string
	ratio float64
	page  int
	top   float64
}

func proposalTitle(lines []Line, s *Structure, th Thresholds) string {
	var cands []titleCandidate
	for _, l := range lines {
		if l.Page > 2 || IsNoise(l, th) || IsBodyOrFragment(l, s) {
			continue
		}
		text := strings.TrimSpace(l.Text)
		lower := strings.ToLower(text)
		n := utf8.RuneCountInString(text)
		if strings.Contains(lower, "rfp") && strings.Contains(lower, "request") && n > 20 {
			return text
		}
		if n > 15 && n < 200 &&
			(strings.Contains(lower, "proposal") || strings.Contains(lower, "ontario") || strings.Contains(lower, "digital library")) {
			cands = append(cands, titleCandidate{text: text, page: l.Page, top: l.Top()})
		}
	}
	if len(cands) == 0 {
		return ""
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].page != cands[j].page {
			return cands[i].page < cands[j].page
		}
		return cands[i].top < cands[j].top
	})

	// a title may wrap over several lines near the first candidate
	head := cands[0]
	var parts []string
	for _, c := range cands {
		if c.page == head.page && abs(c.top-head.top) < 100 {
			parts = append(parts, c.text)
		}
	}
	return strings.Join(parts, " ")
}

func generalTitle(lines []Line, s *Structure, th Thresholds) string {
	body := s.BodySize
	if body <= 0 {
		body = 12
	}
	large := s.LargeSize
	if large <= 0 {
		large = body * th.LargeFont
	}

	var cands []titleCandidate
	for _, l := range lines {
		if l.Page > 2 {
			continue
		}
		text := strings.TrimSpace(l.Text)
		n := utf8.RuneCountInString(text)
		if IsNoise(l, th) || n < 5 || n > 500 || IsBodyOrFragment(l, s) {
			continue
		}
		if l.Size >= large && l.Top() > th.TitleMinTop && l.Top() < th.TitleMaxTop && len(strings.Fields(text)) >= 2 {
			cands = append(cands, titleCandidate{text: text, ratio: l.Size / body, page: l.Page, top: l.Top()})
		}
	}
	if len(cands) == 0 {
		return ""
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.ratio != b.ratio {
			return a.ratio > b.ratio
		}
		if a.page != b.page {
			return a.page < b.page
		}
		return a.top < b.top
	})
	return cands[0].text
}
