package ai

import "context"

// Enhancer repairs text the typographic pipeline got wrong, such as words
// split across spans or stray hyphenation. It must never reorder, add or
// drop entries; callers keep the original text whenever the shape of the
// answer does not match the request.
type Enhancer interface {
	RepairTitle(ctx context.Context, title string) (string, error)
	RepairHeadings(ctx context.Context, headings []string) ([]string, error)
}

type Noop struct{}

func (Noop) RepairTitle(ctx context.Context, title string) (string, error) { return title, nil }
func (Noop) RepairHeadings(ctx context.Context, headings []string) ([]string, error) {
	return headings, nil
}
