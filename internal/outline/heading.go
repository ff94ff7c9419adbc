package outline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// features are the per-line values every heading rule looks at.
type features struct {
	text  string
	lower string
	chars int
	words int
	ratio float64
	bold  bool
	upper bool
}

// headingRule assigns level when match holds. Tables are evaluated in
// order and the first match wins.
type headingRule struct {
	level Level
	match func(f features, th Thresholds) bool
}

func patternRules(level Level, patterns ...string) []headingRule {
	var rules []headingRule
	for _, re := range compile(patterns...) {
		rules = append(rules, headingRule{level: level, match: func(f features, _ Thresholds) bool {
			return re.MatchString(f.lower)
		}})
	}
	return rules
}

func concat(tables ...[]headingRule) []headingRule {
	var out []headingRule
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}

var (
	numberedSectionRe    = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	numberedSubsectionRe = regexp.MustCompile(`^\d+\.\d+\s+[A-Z]`)
	lonelyNumberRe       = regexp.MustCompile(`^\d+\.$`)
	lowerLabelRe         = regexp.MustCompile(`^[a-z\s]+:$`)
)

var proposalRules = concat(
	patternRules(H1,
		`^ontario.*s digital library$`,
		`^a critical component.*prosperity strategy$`,
		`^(rfp:?\s*)?request for proposals?$`,
		`^summary$`,
		`^background$`,
		`^the business plan to be developed$`,
		`^approach and specific proposal requirements$`,
		`^evaluation and awarding of contract$`,
		`^appendix [abc]:.*`,
	),
	patternRules(H2,
		`^timeline:?$`,
		`^milestones$`,
		`^phase [iv]+:.*`,
		`^appendix [abc]:.*`,
	),
	patternRules(H3,
		`^equitable access.*:$`,
		`^shared.*:$`,
		`^local points.*:$`,
		`^access:$`,
		`^guidance.*:$`,
		`^training:$`,
		`^provincial.*:$`,
		`^technological.*:$`,
		`^what could.*:$`,
		`^\d+\.\s+[a-z].*`,
	),
	patternRules(H4,
		`^for each ontario.*:$`,
		`^for the ontario.*:$`,
	),
)

var formRules = []headingRule{
	{H1, func(f features, th Thresholds) bool {
		if !(f.ratio >= th.FormRatio || (f.ratio >= th.FormBoldRatio && f.bold && f.chars > 20)) {
			return false
		}
		return !lonelyNumberRe.MatchString(f.text) && !lowerLabelRe.MatchString(f.lower) && len(strings.Fields(f.text)) >= 3
	}},
}

var flyerRules = concat(
	patternRules(H1, `stem pathways?$`, `parsippany.*stem`),
	[]headingRule{{H1, func(f features, th Thresholds) bool {
		return f.ratio >= th.FlyerH1Ratio && f.words <= 8 && f.bold
	}}},
	patternRules(H2, `^pathway options?$`, `^elective course offerings?$`),
	[]headingRule{{H2, func(f features, th Thresholds) bool {
		return f.ratio >= th.FlyerH2Ratio && f.words <= 6 && f.bold && f.upper
	}}},
	patternRules(H3, `^what colleges say!?$`),
)

var generalRules = []headingRule{
	{H1, func(f features, th Thresholds) bool {
		return f.ratio >= th.H1Ratio ||
			(f.ratio >= th.H1BoldRatio && f.bold) ||
			numberedSectionRe.MatchString(f.text) ||
			(f.ratio >= th.H1CapsRatio && f.words <= 6 && f.upper)
	}},
	{H2, func(f features, th Thresholds) bool {
		return f.ratio >= th.H2Ratio ||
			(f.ratio >= th.H2BoldRatio && f.bold) ||
			numberedSubsectionRe.MatchString(f.text)
	}},
	{H3, func(f features, th Thresholds) bool {
		return f.ratio >= th.H3Ratio ||
			(f.ratio >= th.H3BoldRatio && f.bold) ||
			(f.bold && f.ratio >= 1.0 && f.words <= 10 && strings.HasSuffix(f.text, ":"))
	}},
}

var familyRules = map[Family][]headingRule{
	General:  generalRules,
	Proposal: proposalRules,
	Form:     formRules,
	Flyer:    flyerRules,
}

// ClassifyHeading decides whether a line is a heading and at which level.
func ClassifyHeading(l Line, s *Structure, th Thresholds) (Level, bool) {
	text := strings.TrimSpace(l.Text)
	n := utf8.RuneCountInString(text)
	if n < 2 || n > 300 || IsNoise(l, th) || IsBodyOrFragment(l, s) {
		return 0, false
	}

	words := l.Words
	if words == 0 {
		words = len(strings.Fields(text))
	}
	f := features{
		text:  text,
		lower: strings.ToLower(text),
		chars: n,
		words: words,
		ratio: s.Ratio(l.Size),
		bold:  l.Bold(),
		upper: isUpper(text),
	}
	for _, r := range familyRules[s.Family()] {
		if r.match(f, th) {
			return r.level, true
		}
	}
	return 0, false
}

// isUpper holds when text has at least one cased letter and no lowercase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
