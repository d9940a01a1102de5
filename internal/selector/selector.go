// Package selector picks the single most relevant article per asset category
// and extracts the chart assets referenced by its HTML body.
package selector

import (
	"sort"
	"strings"
	"time"

	"github.com/cioinsight/deckgen/internal/model"
)

// DeriveCategories maps an article's CIO tags to category keys. Tags carrying
// the category prefix win; bare tags are the fallback; an article with no
// usable tags lands in the uncategorized sentinel. The first returned key is
// the grouping key.
func DeriveCategories(a *model.Article) []string {
	tags := a.Metadata.Classifications.TagNames.CIO
	if len(tags) == 0 {
		return []string{model.Uncategorized}
	}

	var prefixed []string
	for _, tag := range tags {
		if strings.Contains(tag, model.CategoryTagPrefix) {
			prefixed = append(prefixed, strings.ReplaceAll(tag, model.CategoryTagPrefix, ""))
		}
	}
	if len(prefixed) > 0 {
		return prefixed
	}
	return tags
}

// Select groups articles by their first derived category key and keeps the
// newest article of each group. Articles without a parsable publish time sort
// oldest; ties keep the first-seen article. Output order follows the order
// categories were first observed. Empty input yields empty output.
func Select(articles []model.Article) []model.SelectedArticle {
	type entry struct {
		article *model.Article
		at      time.Time
		parsed  bool
		seen    int
	}

	groups := make(map[string][]entry)
	var order []string

	for i := range articles {
		a := &articles[i]
		category := DeriveCategories(a)[0]
		if _, ok := groups[category]; !ok {
			order = append(order, category)
		}
		at, parsed := a.PublishedAt()
		groups[category] = append(groups[category], entry{article: a, at: at, parsed: parsed, seen: i})
	}

	selected := make([]model.SelectedArticle, 0, len(order))
	for _, category := range order {
		entries := groups[category]
		sort.SliceStable(entries, func(i, j int) bool {
			ei, ej := entries[i], entries[j]
			if ei.parsed != ej.parsed {
				return ei.parsed
			}
			return ei.at.After(ej.at)
		})
		newest := entries[0]
		selected = append(selected, model.SelectedArticle{
			Article:     newest.article,
			Category:    category,
			PublishTime: newest.article.PublishTime(),
		})
	}
	return selected
}

// FilterLatestDate keeps only the articles published on the single most
// recent calendar date across the whole set, ignoring categories. Articles
// with unparsable timestamps are excluded. This is the alternate entry point
// to Select, not a stage composed with it.
func FilterLatestDate(articles []model.Article) []model.Article {
	var latest time.Time
	found := false
	for i := range articles {
		if at, ok := articles[i].PublishedAt(); ok {
			if !found || at.After(latest) {
				latest = at
				found = true
			}
		}
	}
	if !found {
		return nil
	}

	y, m, d := latest.Date()
	var out []model.Article
	for i := range articles {
		at, ok := articles[i].PublishedAt()
		if !ok {
			continue
		}
		ay, am, ad := at.Date()
		if ay == y && am == m && ad == d {
			out = append(out, articles[i])
		}
	}
	return out
}

// LatestDate formats the newest parsable publish date in the set as
// YYYYMMDD, or "unknown" if none parses. Used to name a run's directories.
func LatestDate(articles []model.Article) string {
	var latest time.Time
	found := false
	for i := range articles {
		if at, ok := articles[i].PublishedAt(); ok {
			if !found || at.After(latest) {
				latest = at
				found = true
			}
		}
	}
	if !found {
		return "unknown"
	}
	return latest.Format("20060102")
}
