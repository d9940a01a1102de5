package model

// Report is the structured outlook document the synthesis step produces and
// the slide assembler consumes.
type Report struct {
	Document         Document         `json:"document"`
	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`
	ContentSlides    []ContentSlide   `json:"content_slides"`
}

// Document holds the cover fields.
type Document struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// ExecutiveSummary is the summary table: one row per asset category, in the
// order the table renders them. Row order is significant.
type ExecutiveSummary struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// ContentSlide is one asset-category slide: a title that should begin with a
// canonical asset-category name, plus a short ordered bullet list. The title
// prefix is enforced only by prompt instruction, so consumers must not rely
// on it.
type ContentSlide struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}
