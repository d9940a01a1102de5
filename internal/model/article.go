package model

import (
	"strings"
	"time"
)

// Locale keys used by the news platform payloads.
const (
	LocaleZhCN = "zh_CN"
	LocaleEnUS = "en_US"
)

// PublishTimeLayout is the timestamp format the news platform emits.
const PublishTimeLayout = "2006-01-02T15:04:05Z"

// CategoryTagPrefix marks the asset-category tags on the CIO channel.
const CategoryTagPrefix = "cio_category_"

// Uncategorized is the sentinel category for articles without usable tags.
const Uncategorized = "未分类"

// Article is one news item as delivered by the news platform. It is created
// upstream, mutated exactly once by the materializer to attach
// LocalImagePath, and otherwise treated as immutable.
type Article struct {
	ID             any               `json:"id,omitempty"`
	Titles         map[string]string `json:"titles"`
	Summaries      map[string]string `json:"summaries,omitempty"`
	Contents       map[string]string `json:"contents"`
	Metadata       ArticleMetadata   `json:"metadata"`
	LocalImagePath string            `json:"local_image_path,omitempty"`
}

// ArticleMetadata carries the platform envelope fields the pipeline reads.
type ArticleMetadata struct {
	Audit           ArticleAudit           `json:"audit"`
	Classifications ArticleClassifications `json:"classifications"`
}

// ArticleAudit holds publication bookkeeping.
type ArticleAudit struct {
	PublishTime string `json:"publishTime,omitempty"`
}

// ArticleClassifications holds per-channel tag lists.
type ArticleClassifications struct {
	TagNames ArticleTagNames `json:"tagNames"`
}

// ArticleTagNames maps channel name to its tags. Only the CIO channel is
// consumed here.
type ArticleTagNames struct {
	CIO []string `json:"cio,omitempty"`
}

// Title returns the title for the given locale, or the empty string.
func (a *Article) Title(locale string) string {
	if a.Titles == nil {
		return ""
	}
	return a.Titles[locale]
}

// Content returns the HTML body for the given locale, or the empty string.
func (a *Article) Content(locale string) string {
	if a.Contents == nil {
		return ""
	}
	return a.Contents[locale]
}

// PublishTime returns the raw publish timestamp string, which may be empty.
func (a *Article) PublishTime() string {
	return a.Metadata.Audit.PublishTime
}

// PublishedAt parses the publish timestamp. Unparsable or missing timestamps
// return the zero time and false, never an error: such articles sort oldest.
func (a *Article) PublishedAt() (time.Time, bool) {
	raw := strings.TrimSpace(a.PublishTime())
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(PublishTimeLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SelectedArticle is the single newest article chosen to represent one
// category in a run.
type SelectedArticle struct {
	Article     *Article `json:"article"`
	Category    string   `json:"category"`
	PublishTime string   `json:"publish_time"`
}

// PublishDate returns the selection's publish date as YYYYMMDD, or the
// no-date sentinel when the timestamp is missing or unparsable.
func (s *SelectedArticle) PublishDate() string {
	t, ok := s.Article.PublishedAt()
	if !ok {
		return "无日期"
	}
	return t.Format("20060102")
}
