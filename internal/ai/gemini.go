package ai

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	genai "google.golang.org/genai"
)

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, model: model}, nil
}

func (g *Gemini) prompt(ctx context.Context, text string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}

func (g *Gemini) RepairTitle(ctx context.Context, title string) (string, error) {
	if g.client == nil || strings.TrimSpace(title) == "" {
		return title, nil
	}
	p := "This is a document title recovered from a PDF. Fix only broken words, doubled spaces and split hyphenation. " +
		"Do not translate, shorten or rephrase. Return ONLY the title on one line.\n\n" + title
	out, err := g.prompt(ctx, p)
	if err != nil {
		return title, err
	}
	lines := splitLines(stripCodeFences(out))
	if len(lines) != 1 {
		return title, fmt.Errorf("gemini returned %d lines for a title", len(lines))
	}
	return strings.TrimSpace(lines[0]), nil
}

func (g *Gemini) RepairHeadings(ctx context.Context, headings []string) ([]string, error) {
	if g.client == nil || len(headings) == 0 {
		return headings, nil
	}
	var b strings.Builder
	b.WriteString("These are headings recovered from a PDF, one per numbered line. Fix only broken words, doubled spaces and split hyphenation. ")
	b.WriteString("Do not translate, merge, split, reorder or rephrase. Return exactly the same number of lines as 'N. heading', no extra text.\n\n")
	for i, h := range headings {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(h)
		b.WriteByte('\n')
	}
	out, err := g.prompt(ctx, b.String())
	if err != nil {
		return headings, err
	}
	lines := splitLines(stripCodeFences(out))
	if len(lines) != len(headings) {
		return headings, fmt.Errorf("gemini returned %d lines for %d headings", len(lines), len(headings))
	}
	fixed := make([]string, len(lines))
	for i, ln := range lines {
		fixed[i] = stripNumber(ln, i+1)
	}
	return fixed, nil
}

func stripNumber(line string, n int) string {
	line = strings.TrimSpace(line)
	prefix := strconv.Itoa(n) + "."
	if strings.HasPrefix(line, prefix) {
		line = strings.TrimSpace(line[len(prefix):])
	}
	return line
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if firstNewline := strings.Index(s, "\n"); firstNewline != -1 {
			s = s[firstNewline+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func splitLines(s string) []string {
	var lines []string
	for _, ln := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}
