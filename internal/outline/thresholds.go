package outline

import "fmt"

// Thresholds holds the tunable constants of the pipeline. The defaults were
// tuned on a small sample of reports, forms, flyers and proposal documents;
// small changes to the ratio tiers shift lines between heading levels.
type Thresholds struct {
	// LineMerge is the maximum vertical distance between two line groups
	// that are still treated as the same visual line.
	LineMerge float64 `yaml:"line_merge" json:"line_merge"`
	// Margin is the band at the top and bottom of a page treated as header/footer.
	Margin float64 `yaml:"margin" json:"margin"`

	LargeFont  float64 `yaml:"large_font" json:"large_font"`
	MediumFont float64 `yaml:"medium_font" json:"medium_font"`

	TitleMinTop float64 `yaml:"title_min_top" json:"title_min_top"`
	TitleMaxTop float64 `yaml:"title_max_top" json:"title_max_top"`

	// General documents, checked top down.
	H1Ratio     float64 `yaml:"h1_ratio" json:"h1_ratio"`
	H1BoldRatio float64 `yaml:"h1_bold_ratio" json:"h1_bold_ratio"`
	H1CapsRatio float64 `yaml:"h1_caps_ratio" json:"h1_caps_ratio"`
	H2Ratio     float64 `yaml:"h2_ratio" json:"h2_ratio"`
	H2BoldRatio float64 `yaml:"h2_bold_ratio" json:"h2_bold_ratio"`
	H3Ratio     float64 `yaml:"h3_ratio" json:"h3_ratio"`
	H3BoldRatio float64 `yaml:"h3_bold_ratio" json:"h3_bold_ratio"`

	FormRatio     float64 `yaml:"form_ratio" json:"form_ratio"`
	FormBoldRatio float64 `yaml:"form_bold_ratio" json:"form_bold_ratio"`

	FlyerH1Ratio float64 `yaml:"flyer_h1_ratio" json:"flyer_h1_ratio"`
	FlyerH2Ratio float64 `yaml:"flyer_h2_ratio" json:"flyer_h2_ratio"`
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LineMerge:     5,
		Margin:        80,
		LargeFont:     1.3,
		MediumFont:    1.15,
		TitleMinTop:   50,
		TitleMaxTop:   600,
		H1Ratio:       1.5,
		H1BoldRatio:   1.3,
		H1CapsRatio:   1.2,
		H2Ratio:       1.25,
		H2BoldRatio:   1.15,
		H3Ratio:       1.15,
		H3BoldRatio:   1.05,
		FormRatio:     1.8,
		FormBoldRatio: 1.5,
		FlyerH1Ratio:  1.8,
		FlyerH2Ratio:  1.4,
	}
}

// Validate reports thresholds that would make the pipeline meaningless.
func (t Thresholds) Validate() error {
	if t.LineMerge <= 0 {
		return fmt.Errorf("line_merge must be > 0, got %v", t.LineMerge)
	}
	if t.Margin < 0 {
		return fmt.Errorf("margin must be >= 0, got %v", t.Margin)
	}
	if t.LargeFont <= 0 || t.MediumFont <= 0 {
		return fmt.Errorf("font thresholds must be > 0")
	}
	if t.TitleMinTop >= t.TitleMaxTop {
		return fmt.Errorf("title_min_top (%v) must be below title_max_top (%v)", t.TitleMinTop, t.TitleMaxTop)
	}
	if !(t.H1Ratio >= t.H2Ratio && t.H2Ratio >= t.H3Ratio) {
		return fmt.Errorf("heading ratios must not increase from h1 to h3 (%v, %v, %v)", t.H1Ratio, t.H2Ratio, t.H3Ratio)
	}
	return nil
}
