// Package assets downloads chart images to disk, encodes their metadata into
// deterministic filenames, and matches those files back to slide topics.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/cioinsight/deckgen/internal/model"
	"github.com/cioinsight/deckgen/internal/selector"
)

// Categories with special filename handling.
const (
	// CategoryStockView is a feed with broken chart metadata; its images are
	// relabeled to the fund-flow naming wholesale. A documented business
	// rule, not a general mechanism.
	CategoryStockView = "个股投资观点更新"
	CategoryFundFlow  = "资金流"
	CategoryStockPick = "个股精选"
	CategoryBondPick  = "个债精选"
)

// Untitled is the placeholder when no chart title could be extracted.
const Untitled = "无标题"

var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Sanitize replaces filesystem-illegal characters with underscores so the
// value can safely join a filename.
func Sanitize(s string) string {
	return illegalFilenameChars.ReplaceAllString(s, "_")
}

// ImageExtension derives the file extension from the image URL path,
// defaulting to .jpg when absent or implausibly long.
func ImageExtension(imgURL string) string {
	parsed, err := url.Parse(imgURL)
	if err != nil {
		return ".jpg"
	}
	ext := path.Ext(parsed.Path)
	if ext == "" || len(ext) > 10 {
		return ".jpg"
	}
	return ext
}

// ImageFileName builds the destination filename for a downloaded chart. The
// inputs must already be sanitized. Three rules apply:
//
//   - the stock-view feed is relabeled to 资金流_NONE_Bloomberg,
//   - the picks categories keep a bare category name and rely on collision
//     suffixing,
//   - everything else encodes {category}_{title}[_{source}].
func ImageFileName(category, chartTitle, source, ext string) string {
	switch category {
	case CategoryStockView:
		return CategoryFundFlow + "_NONE_Bloomberg" + ext
	case CategoryStockPick, CategoryBondPick:
		return category + ext
	}
	if chartTitle == "" {
		chartTitle = Untitled
	}
	if source == "" {
		return fmt.Sprintf("%s_%s%s", category, chartTitle, ext)
	}
	return fmt.Sprintf("%s_%s_%s%s", category, chartTitle, source, ext)
}

// uniquePath returns dir/name, suffixing _1, _2, … before the extension
// until the path does not exist yet.
func uniquePath(dir, name string) string {
	dest := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	for i := 1; ; i++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}

// Materializer persists selected articles and their chart images.
type Materializer struct {
	down *Downloader
	log  *logrus.Entry
}

// NewMaterializer creates a materializer using the given downloader.
func NewMaterializer(down *Downloader, log *logrus.Entry) *Materializer {
	return &Materializer{down: down, log: log}
}

// Materialize writes each selection as {category}_{YYYYMMDD}.json into
// articlesDir and downloads its first chart image into imagesDir, recording
// the image's relative path back onto the article record. A failed download
// or extraction degrades that one article and never aborts the rest; only
// an unusable output directory is an error.
func (m *Materializer) Materialize(ctx context.Context, selected []model.SelectedArticle, articlesDir, imagesDir string) ([]model.SelectedArticle, error) {
	if err := os.MkdirAll(articlesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create articles dir: %w", err)
	}
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}

	for i := range selected {
		sel := &selected[i]
		log := m.log.WithField("category", sel.Category)

		jsonPath := filepath.Join(articlesDir, fmt.Sprintf("%s_%s.json", Sanitize(sel.Category), sel.PublishDate()))
		if err := writeArticle(jsonPath, sel.Article); err != nil {
			log.WithError(err).Warn("write article record failed")
			continue
		}

		html := sel.Article.Content(model.LocaleZhCN)
		if html == "" {
			log.Debug("no HTML content, skipping image")
			continue
		}
		imgURL := selector.FirstImageURL(html)
		if imgURL == "" {
			log.Debug("no embedded image found")
			continue
		}

		category := Sanitize(sel.Category)
		chartTitle := Sanitize(selector.ChartTitle(html))
		source := Sanitize(selector.DataSource(html))
		name := ImageFileName(category, chartTitle, source, ImageExtension(imgURL))
		destPath := uniquePath(imagesDir, name)

		if err := m.down.Download(ctx, imgURL, destPath); err != nil {
			log.WithError(err).WithField("url", imgURL).Warn("image download failed")
			continue
		}

		rel, err := filepath.Rel(filepath.Dir(imagesDir), destPath)
		if err != nil {
			rel = destPath
		}
		sel.Article.LocalImagePath = rel
		if err := writeArticle(jsonPath, sel.Article); err != nil {
			log.WithError(err).Warn("rewrite article record failed")
		}
	}
	return selected, nil
}

func writeArticle(path string, a *model.Article) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
