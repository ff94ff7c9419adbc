package convert

import (
	"bytes"
	"testing"

	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

func TestRenderMarkdown(t *testing.T) {
	res := outline.Result{
		Title: "Annual Report",
		Outline: []outline.Entry{
			{Level: outline.H1, Text: "Introduction", Page: 1},
			{Level: outline.H2, Text: "Scope [draft]", Page: 2},
			{Level: outline.H3, Text: "Notes", Page: 2},
			{Level: outline.H1, Text: "Notes", Page: 3},
		},
	}
	want := "# Annual Report\n\n" +
		"- [Introduction](#introduction) (p. 1)\n" +
		"  - [Scope \\[draft\\]](#scope-draft) (p. 2)\n" +
		"    - [Notes](#notes) (p. 2)\n" +
		"- [Notes](#notes-1) (p. 3)\n"
	if got := RenderMarkdown(res); got != want {
		t.Errorf("RenderMarkdown:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if got := RenderMarkdown(outline.Empty()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestWriteJSON_NonASCII(t *testing.T) {
	var buf bytes.Buffer
	res := outline.Result{
		Title:   "Rapport annuel & bilan",
		Outline: []outline.Entry{{Level: outline.H1, Text: "Überblick <intro>", Page: 1}},
	}
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatal(err)
	}
	want := `{
  "title": "Rapport annuel & bilan",
  "outline": [
    {
      "level": "H1",
      "text": "Überblick <intro>",
      "page": 1
    }
  ]
}
`
	if got := buf.String(); got != want {
		t.Errorf("WriteJSON:\n%s\nwant:\n%s", got, want)
	}
}
