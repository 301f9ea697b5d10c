package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/veritas-checks/veritas/internal/model"
)

// ArticleAnalyzer analyzes one article's text
type ArticleAnalyzer interface {
	Analyze(ctx context.Context, text string, maxClaims int) (*model.AnalysisResult, error)
}

// AnalyzeJob analyzes the article text stored in one file
type AnalyzeJob struct {
	Path      string
	MaxClaims int
	Analyzer  ArticleAnalyzer
}

// AnalyzeOutcome is the per-file batch result
type AnalyzeOutcome struct {
	Path   string                `json:"path"`
	Result *model.AnalysisResult `json:"result,omitempty"`
	Err    error                 `json:"-"`
	Error  string                `json:"error,omitempty"`
}

// GetError returns the job error, if any
func (o *AnalyzeOutcome) GetError() error { return o.Err }

// Execute reads and analyzes the file
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &AnalyzeOutcome{Path: j.Path, Err: err, Error: err.Error()}
	}
	result, err := j.Analyzer.Analyze(ctx, string(data), j.MaxClaims)
	if err != nil {
		return &AnalyzeOutcome{Path: j.Path, Err: err, Error: err.Error()}
	}
	return &AnalyzeOutcome{Path: j.Path, Result: result}
}

// BatchProcessor analyzes many article files concurrently
type BatchProcessor struct {
	analyzer    ArticleAnalyzer
	concurrency int
	maxClaims   int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(analyzer ArticleAnalyzer, concurrency, maxClaims int) *BatchProcessor {
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency, maxClaims: maxClaims}
}

// ProcessFiles analyzes the given article files on the pool
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AnalyzeOutcome {
	if len(paths) == 0 {
		return []*AnalyzeOutcome{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	for _, path := range paths {
		pool.Submit(&AnalyzeJob{Path: path, MaxClaims: b.maxClaims, Analyzer: b.analyzer})
	}
	results := pool.Wait()

	outcomes := make([]*AnalyzeOutcome, len(results))
	for i, result := range results {
		outcomes[i] = result.(*AnalyzeOutcome)
	}
	return outcomes
}

// ProcessListFile reads article file paths (one per line, # comments
// allowed) and analyzes them
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*AnalyzeOutcome, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read path list: %w", err)
	}
	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads one path per line, skipping blanks, comments,
// and duplicates
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || seen[line] {
			continue
		}
		seen[line] = true
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}
