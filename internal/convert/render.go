package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

// WriteJSON encodes v as UTF-8 JSON with a 2-space indent. Non-ASCII text
// is written as is.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeResultFile(path string, res outline.Result) error {
	if res.Outline == nil {
		res.Outline = []outline.Entry{}
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// RenderMarkdown renders the result as a Markdown table of contents: the
// title as a heading, then a nested list with one item per entry.
func RenderMarkdown(res outline.Result) string {
	var b strings.Builder
	if res.Title != "" {
		b.WriteString("# ")
		b.WriteString(res.Title)
		b.WriteString("\n\n")
	}
	seen := map[string]int{}
	for _, e := range res.Outline {
		slug := slugify(e.Text)
		if n := seen[slug]; n > 0 {
			seen[slug] = n + 1
			slug = fmt.Sprintf("%s-%d", slug, n)
		} else {
			seen[slug] = 1
		}
		b.WriteString(strings.Repeat("  ", int(e.Level)-1))
		b.WriteString(fmt.Sprintf("- [%s](#%s) (p. %d)\n", escapeBrackets(e.Text), slug, e.Page))
	}
	return b.String()
}

func escapeBrackets(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}
