// Package outline infers a title and a leveled heading outline from the
// typography of a PDF's text, without relying on embedded bookmarks.
//
// The pipeline runs strictly forward: fragments are merged into lines, the
// lines are classified as a document family, then each line is tested as a
// title or heading candidate and the headings are deduplicated and ordered.
//
//	ex := outline.New(outline.DefaultThresholds())
//	res := ex.Extract(pages)
package outline

// Extractor runs the pipeline with a fixed set of thresholds. It holds no
// per-document state and is safe for concurrent use.
type Extractor struct {
	th Thresholds
}

// New returns an Extractor using th.
func New(th Thresholds) *Extractor {
	return &Extractor{th: th}
}

// Thresholds returns the thresholds the extractor was built with.
func (e *Extractor) Thresholds() Thresholds { return e.th }

// Extract runs the full pipeline over the pages of one document.
func (e *Extractor) Extract(pages []Page) Result {
	return e.ExtractLines(ReconstructLines(pages, e.th.LineMerge))
}

// ExtractLines runs the pipeline from already reconstructed lines.
func (e *Extractor) ExtractLines(lines []Line) Result {
	if len(lines) == 0 {
		return Empty()
	}

	s := Analyze(lines, e.th)
	res := Empty()
	res.Title = ExtractTitle(lines, s, e.th)
	if s.Family() == Form {
		return res
	}

	var cands []Candidate
	for _, l := range lines {
		level, ok := ClassifyHeading(l, s, e.th)
		if !ok {
			continue
		}
		cands = append(cands, Candidate{Level: level, Text: l.Text, Page: l.Page, Top: l.Top(), Size: l.Size})
	}
	for _, c := range Dedupe(cands) {
		res.Outline = append(res.Outline, Entry{Level: c.Level, Text: c.Text, Page: c.Page})
	}
	return res
}
