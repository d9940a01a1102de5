package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cioinsight/deckgen/internal/pipeline"
)

var (
	genLocation   string
	genLanguage   string
	genLatestOnly bool
	genTimeout    time.Duration
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full pipeline: collect, synthesize, render",
	Long: `Generate runs the complete pipeline end to end: fetch articles and
chart images, synthesize the investment report, and render the slide deck
for the given location and language.

Example:
  deckgen generate
  deckgen generate --location 香港 --language en
  deckgen generate --latest-only --timeout 20m`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genLocation, "location", "", "client location: 香港, 中国大陆 or 新加坡 (default from config)")
	generateCmd.Flags().StringVar(&genLanguage, "language", "", "deck language: cn or en (default from config)")
	generateCmd.Flags().BoolVar(&genLatestOnly, "latest-only", false, "keep only articles from the most recent publish date")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 20*time.Minute, "overall pipeline timeout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if genLocation != "" {
		cfg.Deck.Location = genLocation
	}
	if genLanguage != "" {
		cfg.Deck.Language = genLanguage
	}

	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg, newLogger())
	deckPath, err := p.Generate(ctx, pipeline.CollectOptions{LatestOnly: genLatestOnly})
	if err != nil {
		return err
	}

	fmt.Printf("Deck: %s\n", deckPath)
	return nil
}
