package convert

import "testing"

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Introduction":         "introduction",
		"  1. Scope of Work ":  "1-scope-of-work",
		"Appendix A/B":         "appendix-a-b",
		"Résumé & Références":  "résumé-références",
		"---":                  "",
		"Phase II: Timeline!!": "phase-ii-timeline",
	}
	for in, want := range tests {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":      "report.json",
		"SCAN.PDF":        "SCAN.json",
		"/in/dir/a.b.pdf": "a.b.json",
		"no-extension":    "no-extension.json",
	}
	for in, want := range tests {
		if got := outputName(in); got != want {
			t.Errorf("outputName(%q) = %q, want %q", in, got, want)
		}
	}
}
