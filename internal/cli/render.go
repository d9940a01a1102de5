package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cioinsight/deckgen/internal/pipeline"
)

var (
	renderRun      string
	renderLocation string
	renderLanguage string
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a run's report into the slide deck template",
	Long: `Render loads the synthesized report of a run and assembles the
PPTX deck using the template configured for the given location and
language. A previous deck for the same location and language is
overwritten.

Without --run the most recent run in the workspace is used.

Example:
  deckgen render
  deckgen render --location 香港 --language cn
  deckgen render --run input_articles/20260110 --location 中国大陆`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderRun, "run", "", "run directory (default: most recent run)")
	renderCmd.Flags().StringVar(&renderLocation, "location", "", "client location: 香港, 中国大陆 or 新加坡 (default from config)")
	renderCmd.Flags().StringVar(&renderLanguage, "language", "", "deck language: cn or en (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if renderLocation != "" {
		cfg.Deck.Location = renderLocation
	}
	if renderLanguage != "" {
		cfg.Deck.Language = renderLanguage
	}

	p := pipeline.NewPipeline(cfg, newLogger())
	runDir := renderRun
	if runDir == "" {
		if runDir, err = p.LatestRun(); err != nil {
			return err
		}
	}

	deckPath, err := p.Render(runDir)
	if err != nil {
		return err
	}

	fmt.Printf("Deck: %s\n", deckPath)
	return nil
}
