package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cioinsight/deckgen/internal/assets"
	"github.com/cioinsight/deckgen/internal/deck"
	"github.com/cioinsight/deckgen/internal/model"
	"github.com/cioinsight/deckgen/internal/newsapi"
	"github.com/cioinsight/deckgen/internal/selector"
	"github.com/cioinsight/deckgen/internal/synth"
)

// Pipeline orchestrates the complete deck generation process: collecting
// articles and chart images, synthesizing the investment report, and
// rendering the slide deck.
type Pipeline struct {
	news         *newsapi.Client
	materializer *assets.Materializer
	config       *model.Config
	log          *logrus.Entry
}

// CollectOptions tune the collect stage.
type CollectOptions struct {
	// LatestOnly restricts the run to articles published on the most
	// recent calendar date before grouping by category.
	LatestOnly bool
}

// NewPipeline creates a new pipeline with the given configuration.
func NewPipeline(cfg *model.Config, log *logrus.Entry) *Pipeline {
	downloader := assets.NewDownloader(cfg.HTTP, log)
	return &Pipeline{
		news:         newsapi.NewClient(cfg.News, cfg.HTTP, log),
		materializer: assets.NewMaterializer(downloader, log),
		config:       cfg,
		log:          log,
	}
}

// Collect fetches the article feed, picks the newest article per category,
// and materializes articles and chart images into a dated run directory
// under the workspace base. Any previous run for the same date is removed
// first. Returns the run directory.
func (p *Pipeline) Collect(ctx context.Context, opts CollectOptions) (string, error) {
	p.log.Info("fetching articles")
	articles, err := p.news.FetchArticles(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch articles: %w", err)
	}
	p.log.WithField("count", len(articles)).Info("articles fetched")

	if opts.LatestOnly {
		articles = selector.FilterLatestDate(articles)
	}
	if len(articles) == 0 {
		return "", fmt.Errorf("no articles to process")
	}

	date := selector.LatestDate(articles)
	runDir := filepath.Join(p.config.Workspace.BaseDir, date)
	articlesDir := filepath.Join(runDir, "articles_"+date)
	imagesDir := filepath.Join(runDir, "images_"+date)

	if err := os.RemoveAll(runDir); err != nil {
		return "", fmt.Errorf("clear run directory: %w", err)
	}
	for _, dir := range []string{articlesDir, imagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create run directory: %w", err)
		}
	}

	if err := saveArticles(articles, filepath.Join(runDir, "articles.json")); err != nil {
		return "", err
	}

	selected := selector.Select(articles)
	p.log.WithField("categories", len(selected)).Info("articles selected")

	selected, err = p.materializer.Materialize(ctx, selected, articlesDir, imagesDir)
	if err != nil {
		return "", fmt.Errorf("materialize assets: %w", err)
	}

	names := make([]string, 0, len(selected))
	for i := range selected {
		names = append(names, selected[i].Category)
	}
	p.log.WithFields(logrus.Fields{
		"run_dir":    runDir,
		"categories": strings.Join(names, ", "),
	}).Info("collect complete")
	return runDir, nil
}

// Synthesize merges the run's articles into a synthesis prompt, calls the
// configured provider, and writes the resulting report into the run
// directory. Returns the report path.
func (p *Pipeline) Synthesize(ctx context.Context, runDir string) (string, error) {
	provider, err := synth.NewProvider(p.config.Synthesis, p.config.HTTP, p.log)
	if err != nil {
		return "", err
	}

	articlesDir, err := p.articlesDir(runDir)
	if err != nil {
		return "", err
	}

	contextText, err := synth.BuildContext(articlesDir, p.log)
	if err != nil {
		return "", err
	}
	prompt := synth.BuildPrompt(p.config.Deck.Language, contextText)

	p.log.WithFields(logrus.Fields{
		"provider":     provider.Name(),
		"prompt_bytes": len(prompt),
	}).Info("synthesizing report")

	report, err := provider.Synthesize(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("synthesize report: %w", err)
	}

	reportPath := filepath.Join(runDir, synth.ReportFileName)
	if err := synth.SaveReport(report, reportPath); err != nil {
		return "", err
	}
	p.log.WithFields(logrus.Fields{
		"report":     reportPath,
		"categories": len(report.ContentSlides),
	}).Info("report saved")
	return reportPath, nil
}

// Render loads the run's report and assembles the deck for the configured
// location and language, overwriting any previous output. Returns the deck
// path.
func (p *Pipeline) Render(runDir string) (string, error) {
	location := p.config.Deck.Location
	language := p.config.Deck.Language

	report, err := synth.LoadReport(filepath.Join(runDir, synth.ReportFileName))
	if err != nil {
		return "", err
	}

	templatePath := p.config.Deck.TemplatePath(location, language)
	if templatePath == "" {
		return "", fmt.Errorf("no template configured for location %q", location)
	}

	imagesDir, err := p.imagesDir(runDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(p.config.Workspace.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	outputPath := filepath.Join(p.config.Workspace.OutputDir,
		fmt.Sprintf("AI_PPT_generated_%s_%s.pptx", location, language))

	p.log.WithFields(logrus.Fields{
		"template": templatePath,
		"location": location,
		"language": language,
	}).Info("assembling deck")

	assembler := deck.NewAssembler(deck.DefaultSchema(), deck.RulesFor(language), p.log)
	if err := assembler.Run(report, templatePath, outputPath, location, imagesDir); err != nil {
		return "", err
	}
	p.log.WithField("output", outputPath).Info("deck written")
	return outputPath, nil
}

// Generate runs the full pipeline end to end and returns the deck path.
func (p *Pipeline) Generate(ctx context.Context, opts CollectOptions) (string, error) {
	runDir, err := p.Collect(ctx, opts)
	if err != nil {
		return "", err
	}
	if _, err := p.Synthesize(ctx, runDir); err != nil {
		return "", err
	}
	return p.Render(runDir)
}

// LatestRun returns the most recent run directory under the workspace base.
// Run directories are named YYYYMMDD, so lexical order is date order.
func (p *Pipeline) LatestRun() (string, error) {
	entries, err := os.ReadDir(p.config.Workspace.BaseDir)
	if err != nil {
		return "", fmt.Errorf("read workspace: %w", err)
	}
	var runs []string
	for _, e := range entries {
		if e.IsDir() {
			runs = append(runs, e.Name())
		}
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs found under %s", p.config.Workspace.BaseDir)
	}
	sort.Strings(runs)
	return filepath.Join(p.config.Workspace.BaseDir, runs[len(runs)-1]), nil
}

// articlesDir locates the articles_<date> directory inside a run directory.
func (p *Pipeline) articlesDir(runDir string) (string, error) {
	return runSubdir(runDir, "articles_")
}

// imagesDir locates the images_<date> directory inside a run directory.
func (p *Pipeline) imagesDir(runDir string) (string, error) {
	return runSubdir(runDir, "images_")
}

func runSubdir(runDir, prefix string) (string, error) {
	entries, err := os.ReadDir(runDir)
	if err != nil {
		return "", fmt.Errorf("read run directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			return filepath.Join(runDir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no %s* directory under %s", prefix, runDir)
}

// saveArticles dumps the raw feed in the platform's list envelope shape.
func saveArticles(articles []model.Article, path string) error {
	envelope := struct {
		Articles []model.Article `json:"articles"`
	}{Articles: articles}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal articles: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write articles: %w", err)
	}
	return nil
}
