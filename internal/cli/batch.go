package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritas-checks/veritas/internal/worker"
)

var (
	batchConcurrency int
	batchMaxClaims   int
	batchTimeout     time.Duration
	batchOut         string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Analyze many article files concurrently",
	Long: `Batch reads article file paths from <list-file> (one per line,
# comments allowed) and analyzes them on a bounded worker pool.

Example:
  veritas batch articles.txt --concurrency 4 --out results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "articles analyzed in parallel")
	batchCmd.Flags().IntVar(&batchMaxClaims, "max-claims", 0, "claim cap per article (0 = configured default)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output JSON path (default: stdout)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	processor := worker.NewBatchProcessor(analyzer, batchConcurrency, batchMaxClaims)
	outcomes, err := processor.ProcessListFile(ctx, args[0])
	if err != nil {
		return err
	}

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			if verbose {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Path, outcome.Err)
			}
		}
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Analyzed %d articles (%d failed)\n", len(outcomes), failed)
	}

	return writeResult(outcomes, batchOut)
}
