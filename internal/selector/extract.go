package selector

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	chartTitlePattern = regexp.MustCompile(`图表\s*[0-9一二三四五六七八九十]+\s*[：:]\s*([^<>\n]+)`)
	backgroundPattern = regexp.MustCompile(`url\(["']?(.*?)["']?\)`)
	tagRemnantPattern = regexp.MustCompile(`<[^>]+>`)
)

// sourceMarker is the literal that introduces a chart's data-source caption.
const sourceMarker = "资料来源"

// maxSourceLen rejects mis-split paragraphs: a genuine source caption is a
// short vendor name, never a sentence.
const maxSourceLen = 50

// FirstImageURL returns the src of the first <img> in the fragment. When no
// img exists it falls back to the first CSS background:url(...) declaration.
// Empty string means no image.
func FirstImageURL(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}

	if src, ok := doc.Find("img").First().Attr("src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}

	found := ""
	doc.Find("[style]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		style, _ := s.Attr("style")
		if !strings.Contains(style, "background") {
			return true
		}
		if m := backgroundPattern.FindStringSubmatch(style); m != nil {
			found = strings.TrimSpace(m[1])
			return false
		}
		return true
	})
	return found
}

// ChartTitle locates the "图表 <n>：<title>" pattern in the raw HTML and
// returns the trimmed title with tag remnants and unbalanced brackets
// removed. Empty string means no chart title was found.
func ChartTitle(raw string) string {
	m := chartTitlePattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	title := strings.TrimSpace(m[1])
	title = tagRemnantPattern.ReplaceAllString(title, "")
	title = RemoveUnpairedBrackets(title)
	return strings.TrimSpace(title)
}

// RemoveUnpairedBrackets deletes every parenthesis, ASCII or full-width,
// that has no matching partner. Truncated HTML snippets routinely leave a
// dangling open bracket at the end of a chart title.
func RemoveUnpairedBrackets(s string) string {
	runes := []rune(s)
	var stack []int
	remove := make(map[int]bool)

	for i, r := range runes {
		switch r {
		case '(', '（':
			stack = append(stack, i)
		case ')', '）':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			} else {
				remove[i] = true
			}
		}
	}
	for _, i := range stack {
		remove[i] = true
	}
	if len(remove) == 0 {
		return s
	}

	out := make([]rune, 0, len(runes))
	for i, r := range runes {
		if !remove[i] {
			out = append(out, r)
		}
	}
	return string(out)
}

// DataSource scans paragraph elements for the source marker and returns the
// caption after it: colon and whitespace stripped, cut at the first newline,
// and rejected entirely when longer than maxSourceLen runes. Empty string
// means no usable source was found.
func DataSource(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}

	found := ""
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := p.Text()
		if !strings.Contains(text, sourceMarker) {
			return true
		}
		parts := strings.Split(text, sourceMarker)
		candidate := parts[len(parts)-1]
		candidate = strings.ReplaceAll(candidate, "：", "")
		candidate = strings.ReplaceAll(candidate, ":", "")
		candidate = strings.TrimSpace(candidate)
		if i := strings.IndexByte(candidate, '\n'); i >= 0 {
			candidate = strings.TrimSpace(candidate[:i])
		}
		if candidate != "" && len([]rune(candidate)) < maxSourceLen {
			found = candidate
			return false
		}
		return true
	})
	return found
}
