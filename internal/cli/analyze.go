package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veritas-checks/veritas/internal/annotate"
	"github.com/veritas-checks/veritas/internal/model"
	"github.com/veritas-checks/veritas/internal/pipeline"
)

var (
	analyzeMaxClaims int
	analyzeTimeout   time.Duration
	analyzeOut       string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze one article text file and print the verdict as JSON",
	Long: `Analyze extracts claims from the article text in <file>, retrieves
evidence for each claim from the trusted-domain allowlist, and prints the
aggregated credibility verdict.

Example:
  veritas analyze article.txt
  veritas analyze article.txt --max-claims 5 --out verdict.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&analyzeMaxClaims, "max-claims", 0, "claim cap (0 = configured default)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "output JSON path (default: stdout)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read article: %w", err)
	}

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", args[0])
	}
	result, err := analyzer.Analyze(ctx, string(data), analyzeMaxClaims)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Checked %d claims, score %.2f (%s)\n",
			result.ClaimsChecked, result.ArticleScore, result.ArticleLabel)
	}

	return writeResult(result, analyzeOut)
}

// newAnalyzer builds a pipeline for CLI use: prose annotator, quiet logger
// unless verbose
func newAnalyzer(cfg *model.Config) (*pipeline.Analyzer, error) {
	annotator, err := annotate.NewProseAnnotator()
	if err != nil {
		return nil, fmt.Errorf("annotator: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}

	return pipeline.NewAnalyzer(cfg, pipeline.Deps{
		Annotator: annotator,
		Logger:    logger,
	})
}

func writeResult(result any, outPath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outPath)
	}
	return nil
}
