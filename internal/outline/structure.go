package outline

import (
	"regexp"
	"sort"
	"strings"
)

// Family is the document category that selects a heuristic rule set.
type Family int

const (
	General Family = iota
	Proposal
	Form
	Flyer
)

func (f Family) String() string {
	switch f {
	case Proposal:
		return "proposal"
	case Form:
		return "form"
	case Flyer:
		return "flyer"
	default:
		return "general"
	}
}

type familyIndicator struct {
	patterns []*regexp.Regexp
	min      int
}

func (fi familyIndicator) score(text string) int {
	n := 0
	for _, re := range fi.patterns {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

func (fi familyIndicator) matches(text string) bool { return fi.score(text) >= fi.min }

var (
	proposalIndicator = familyIndicator{min: 2, patterns: compile(
		`rfp.*request for proposal`,
		`business plan.*ontario digital library`,
		`ontario.*digital library`,
		`summary.*background`,
		`appendix.*phases.*funding`,
	)}
	formIndicator = familyIndicator{min: 2, patterns: compile(
		`application.*form`,
		`signature`,
		`undertake.*refund`,
	)}
	flyerIndicator = familyIndicator{min: 3, patterns: compile(
		`pathway`,
		`stem`,
		`elective.*course`,
		`what colleges say`,
	)}
)

// Structure holds document-wide statistics. It is computed once per
// document by Analyze and only read afterwards.
type Structure struct {
	BodySize   float64
	Sizes      []float64 // distinct sizes, descending
	SizeFreq   map[float64]int
	LargeSize  float64
	MediumSize float64

	Proposal bool
	Form     bool
	Flyer    bool
}

// Analyze computes the document structure from all reconstructed lines.
func Analyze(lines []Line, th Thresholds) *Structure {
	s := &Structure{SizeFreq: map[float64]int{}}
	if len(lines) == 0 {
		return s
	}

	var order []float64
	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := s.SizeFreq[l.Size]; !ok {
			order = append(order, l.Size)
		}
		s.SizeFreq[l.Size]++
		texts = append(texts, strings.ToLower(l.Text))
	}
	s.BodySize = order[0]
	for _, size := range order[1:] {
		if s.SizeFreq[size] > s.SizeFreq[s.BodySize] {
			s.BodySize = size
		}
	}
	s.Sizes = append([]float64(nil), order...)
	sort.Sort(sort.Reverse(sort.Float64Slice(s.Sizes)))
	s.LargeSize = s.BodySize * th.LargeFont
	s.MediumSize = s.BodySize * th.MediumFont

	all := strings.Join(texts, " ")
	s.Proposal = proposalIndicator.matches(all)
	s.Form = formIndicator.matches(all)
	s.Flyer = flyerIndicator.matches(all)
	return s
}

// Family resolves the flags to one family. Proposal wins over form, form
// over flyer.
func (s *Structure) Family() Family {
	switch {
	case s.Proposal:
		return Proposal
	case s.Form:
		return Form
	case s.Flyer:
		return Flyer
	default:
		return General
	}
}

// Ratio is size relative to the body font size.
func (s *Structure) Ratio(size float64) float64 {
	if s.BodySize <= 0 {
		return 1
	}
	return size / s.BodySize
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}
