package assets

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var topicNoise = regexp.MustCompile(`[【】\[\]()（）,，.。、/\\|\s]`)

// keyRule maps topic keywords, Chinese or English, to the canonical key the
// asset files are named with. Keywords are matched against the lowercased,
// whitespace-and-punctuation-stripped topic head.
type keyRule struct {
	keywords []string
	key      string
}

// Ordered: the picks and fund-flow rules must run before the generic bond
// rule so "bond picks" never resolves to the bond-market key.
var keyRules = []keyRule{
	{[]string{"个债精选", "bondpick"}, CategoryBondPick},
	{[]string{"个股精选", "stockpick"}, CategoryStockPick},
	{[]string{"资金流", "fundflow"}, CategoryFundFlow},
	{[]string{"债市", "债券", "fixedincome", "bond"}, "债券"},
	{[]string{"黄金", "gold"}, "黄金"},
	{[]string{"原油", "crude", "oil"}, "原油"},
	{[]string{"美股", "usequit", "u.s.equit"}, "美股"},
	{[]string{"欧股", "europ"}, "欧股"},
	{[]string{"日股", "japan"}, "日股"},
	{[]string{"中港", "港股", "hkchina", "chinaequit"}, "中港"},
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".bmp": true, ".webp": true,
}

// Matcher resolves a slide's free-text topic to an asset file on disk.
type Matcher struct {
	// matchLength is how many runes of the normalized topic head form the
	// fallback key when no keyword rule matches.
	matchLength int
}

// NewMatcher creates a matcher with the default fallback key length.
func NewMatcher() *Matcher {
	return &Matcher{matchLength: 2}
}

// CanonicalKey derives the short key a topic's asset files are named with.
// The derivation is total: every topic maps to some key, falling back to a
// truncation of the topic itself.
func (m *Matcher) CanonicalKey(topic string) string {
	cleaned := topicNoise.ReplaceAllString(topic, "")
	head := strings.SplitN(cleaned, "_", 2)[0]
	lower := strings.ToLower(head)

	for _, rule := range keyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.key
			}
		}
	}

	runes := []rune(head)
	if len(runes) > m.matchLength {
		return string(runes[:m.matchLength])
	}
	return head
}

// FindImage returns the path of the first image in imagesDir whose filename
// starts with the topic's canonical key. Candidates are sorted lexically so
// the result does not depend on directory-listing order. Empty string means
// no match or no directory; neither is an error.
func (m *Matcher) FindImage(topic, imagesDir string) string {
	key := m.CanonicalKey(topic)
	if key == "" {
		return ""
	}

	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return ""
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.HasPrefix(stem, key) {
			return filepath.Join(imagesDir, name)
		}
	}
	return ""
}
