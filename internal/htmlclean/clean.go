// Package htmlclean strips article HTML down to the plain text fed into the
// synthesis prompt.
package htmlclean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Source-caption markers. Paragraphs carrying either are boilerplate under
// the chart image, not article text.
var sourceMarkers = []string{"资料来源", "data source"}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes markup with a plain tag sweep. It is the least-cleaned
// form Clean falls back to, and what the prompt builder uses verbatim.
func StripTags(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(tagPattern.ReplaceAllString(raw, ""))
}

// Clean returns the plain text of an HTML fragment with <img> elements,
// script/style bodies, and any paragraph containing a data-source marker
// removed. Malformed HTML never fails: at worst the tag-swept text is
// returned. Clean is idempotent.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return StripTags(raw)
	}

	doc.Find("img, script, style").Remove()
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.ToLower(p.Text())
		for _, marker := range sourceMarkers {
			if strings.Contains(text, marker) {
				p.Remove()
				return
			}
		}
	})

	return strings.TrimSpace(doc.Text())
}
