package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cioinsight/deckgen/internal/pipeline"
)

var (
	synthRun      string
	synthLanguage string
	synthTimeout  time.Duration
)

// synthesizeCmd represents the synthesize command
var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Merge a run's articles and synthesize the investment report",
	Long: `Synthesize merges the collected articles of a run into a single
prompt, sends it to the configured LLM provider, and writes the structured
report back into the run directory.

Without --run the most recent run in the workspace is used.

Example:
  deckgen synthesize
  deckgen synthesize --run input_articles/20260110 --language en`,
	Args: cobra.NoArgs,
	RunE: runSynthesize,
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)

	synthesizeCmd.Flags().StringVar(&synthRun, "run", "", "run directory (default: most recent run)")
	synthesizeCmd.Flags().StringVar(&synthLanguage, "language", "", "report language: cn or en (default from config)")
	synthesizeCmd.Flags().DurationVar(&synthTimeout, "timeout", 10*time.Minute, "overall synthesis timeout")
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if synthLanguage != "" {
		cfg.Deck.Language = synthLanguage
	}

	ctx, cancel := context.WithTimeout(context.Background(), synthTimeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg, newLogger())
	runDir := synthRun
	if runDir == "" {
		if runDir, err = p.LatestRun(); err != nil {
			return err
		}
	}

	reportPath, err := p.Synthesize(ctx, runDir)
	if err != nil {
		return err
	}

	fmt.Printf("Report: %s\n", reportPath)
	return nil
}
