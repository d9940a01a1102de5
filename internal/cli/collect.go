package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cioinsight/deckgen/internal/pipeline"
)

var (
	collectTimeout    time.Duration
	collectLatestOnly bool
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch articles and chart images into a dated run directory",
	Long: `Collect fetches the CIO article feed, keeps the newest article per
asset category, and writes each article plus its first chart image into
<workspace>/<YYYYMMDD>/. Any previous run for the same date is replaced.

Example:
  deckgen collect
  deckgen collect --latest-only
  deckgen collect --timeout 5m`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().DurationVar(&collectTimeout, "timeout", 10*time.Minute, "overall collect timeout")
	collectCmd.Flags().BoolVar(&collectLatestOnly, "latest-only", false, "keep only articles from the most recent publish date")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg, newLogger())
	runDir, err := p.Collect(ctx, pipeline.CollectOptions{LatestOnly: collectLatestOnly})
	if err != nil {
		return err
	}

	fmt.Printf("Run directory: %s\n", runDir)
	return nil
}
