package deck

import "fmt"

// TemplateSchema names the layout and placeholder slots the assembler
// depends on. The indices mirror the corporate template's master; a template
// laid out differently fails validation at load instead of producing a
// half-filled deck.
type TemplateSchema struct {
	// Slide layout indices within the first master.
	ContentLayout      int
	ImageOnlyLayout    int
	ContactLayout      int
	DisclaimerENLayout int
	DisclaimerCNLayout int

	// Placeholder idx values.
	ContentTitleIdx    int
	ContentBodyIdx     int
	ContactTextIdx     int
	ContactAddressIdxs []int
	DisclaimerTitleIdx int
	DisclaimerBodyIdx  int

	// Seed slides reused in place.
	CoverSlide   int
	SummarySlide int
	// Content slides may reuse up to this many pre-existing slides after
	// the summary before new ones are created.
	ReusableContentSlides int

	// Annotation textbox geometry, in EMU.
	TitleBox  Box
	SourceBox Box
}

// Box is a shape rectangle in EMU.
type Box struct {
	Left, Top, Width, Height int64
}

// DefaultSchema matches the shipped corporate templates.
func DefaultSchema() TemplateSchema {
	return TemplateSchema{
		ContentLayout:      9,
		ImageOnlyLayout:    10,
		ContactLayout:      2,
		DisclaimerENLayout: 3,
		DisclaimerCNLayout: 4,

		ContentTitleIdx:    0,
		ContentBodyIdx:     10,
		ContactTextIdx:     15,
		ContactAddressIdxs: []int{10, 17, 18, 19, 20, 21, 22},
		DisclaimerTitleIdx: 0,
		DisclaimerBodyIdx:  12,

		CoverSlide:            0,
		SummarySlide:          1,
		ReusableContentSlides: 6,

		TitleBox:  Box{Left: 3750684, Top: 3016459, Width: 1616075, Height: 226581},
		SourceBox: Box{Left: 7315200, Top: 6316663, Width: 1285875, Height: 266700},
	}
}

// Validate checks the schema against an opened presentation: every layout
// index it names must exist and the presentation must carry the two seed
// slides.
func (s TemplateSchema) Validate(pres *Presentation) error {
	layoutCount := len(pres.LayoutNames())
	for _, idx := range []int{s.ContentLayout, s.ImageOnlyLayout, s.ContactLayout, s.DisclaimerENLayout, s.DisclaimerCNLayout} {
		if idx < 0 || idx >= layoutCount {
			return fmt.Errorf("template has %d layouts, schema needs layout %d", layoutCount, idx)
		}
	}
	if n := pres.SlideCount(); n <= s.SummarySlide {
		return fmt.Errorf("template has %d slides, schema needs cover and summary seeds", n)
	}
	return nil
}
