package outline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	pageNumberRe   = regexp.MustCompile(`^\d+$`)
	pageLabelRe    = regexp.MustCompile(`^page \d+`)
	dateHeaderRe   = regexp.MustCompile(`^march \d+, \d+$`)
	runningTitleRe = regexp.MustCompile(`^to develop.*business plan$`)

	capsHeaderRe       = regexp.MustCompile(`^[A-Z\s]+:?$`)
	numberedOpenRe     = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	upperStartRe       = regexp.MustCompile(`^[A-Z]`)
	syllableFragmentRe = regexp.MustCompile(`^(r|quest|oposal|r pr)$`)

	proposalBodyRe = compile(
		`^the odl will deliver`,
		`^first, some background`,
		`^we will provide`,
		`^working together`,
		`must also secure.*commitment`,
		`^that documents and clearly`,
		`^structures, as well as implementation`,
		`^areas, have the facilities`,
		`^the odl steering committee`,
		`this document`,
		`the following`,
		`ontario residents`,
		`library association`,
	)
)

// IsNoise reports whether a line is a running header, footer or page number.
func IsNoise(l Line, th Thresholds) bool {
	height := l.PageHeight
	if height <= 0 {
		height = 800
	}
	if l.Top() < th.Margin || l.Top() > height-th.Margin {
		return true
	}

	lower := strings.ToLower(strings.TrimSpace(l.Text))
	return pageNumberRe.MatchString(lower) ||
		pageLabelRe.MatchString(lower) ||
		strings.Contains(lower, "copyright") ||
		strings.Contains(lower, "©") ||
		dateHeaderRe.MatchString(lower) ||
		runningTitleRe.MatchString(lower)
}

// IsBodyOrFragment reports whether a line reads as prose or as a leftover
// piece of a word split by line reconstruction.
func IsBodyOrFragment(l Line, s *Structure) bool {
	text := strings.TrimSpace(l.Text)
	lower := strings.ToLower(text)

	if s.Proposal {
		for _, re := range proposalBodyRe {
			if re.MatchString(lower) {
				return true
			}
		}
	}

	n := utf8.RuneCountInString(text)
	if n > 80 &&
		!capsHeaderRe.MatchString(text) &&
		!numberedOpenRe.MatchString(text) &&
		(strings.Contains(lower, "the ") || strings.Contains(lower, "and ") || strings.Contains(lower, "to ")) {
		return true
	}

	return n < 20 &&
		!upperStartRe.MatchString(text) &&
		!strings.HasSuffix(text, ":") &&
		syllableFragmentRe.MatchString(lower)
}
