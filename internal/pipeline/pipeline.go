// Package pipeline orchestrates the full analysis: claim extraction,
// concurrent evidence retrieval, re-ranking, stance classification, and
// aggregation into the article verdict.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/veritas-checks/veritas/internal/aggregate"
	"github.com/veritas-checks/veritas/internal/annotate"
	"github.com/veritas-checks/veritas/internal/cache"
	"github.com/veritas-checks/veritas/internal/extract"
	"github.com/veritas-checks/veritas/internal/model"
	"github.com/veritas-checks/veritas/internal/rerank"
	"github.com/veritas-checks/veritas/internal/retrieve"
	"github.com/veritas-checks/veritas/internal/search"
	"github.com/veritas-checks/veritas/internal/stance"
	"github.com/veritas-checks/veritas/internal/worker"
)

// Analyzer runs the claim-checking pipeline for one article at a time.
// It is safe for concurrent use; the snippet cache is the only shared
// mutable state and synchronizes internally.
type Analyzer struct {
	extractor    *extract.Extractor
	retriever    *retrieve.Retriever
	reranker     rerank.Reranker
	aggregator   *aggregate.Aggregator
	claimWorkers int
	logger       *zap.Logger
}

// Deps are the injected capabilities the pipeline composes. Searcher and
// Classifier default to a CSE client and the safe stance default; the
// Annotator has no default and must be provided.
type Deps struct {
	Annotator  annotate.Annotator
	Searcher   search.Client
	Classifier stance.Classifier
	Logger     *zap.Logger
}

// NewAnalyzer wires the pipeline from configuration and capabilities
func NewAnalyzer(cfg *model.Config, deps Deps) (*Analyzer, error) {
	if deps.Annotator == nil {
		return nil, fmt.Errorf("pipeline: %w", annotate.ErrAnnotatorUnavailable)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	searcher := deps.Searcher
	if searcher == nil {
		searcher = search.NewCSEClient(cfg.Search, cfg.Retrieval.RetrievalTimeout())
	}

	classifier := deps.Classifier
	if classifier == nil {
		built, err := stance.NewClassifier(cfg.Stance)
		if err != nil {
			logger.Warn("stance classifier unavailable, using safe default", zap.Error(err))
			built = stance.Unimplemented{}
		}
		classifier = built
	}

	retriever := retrieve.NewRetriever(retrieve.Options{
		Searcher:     searcher,
		Allowlist:    retrieve.NewAllowlist(cfg.TrustedSites),
		Fetcher:      retrieve.NewFetcher(cfg.HTTP, cfg.Retrieval.RetrievalTimeout()),
		Cache:        cache.NewSnippetCache(cfg.Cache),
		Retrieval:    cfg.Retrieval,
		FetchWorkers: cfg.Concurrency.FetchWorkers,
		Logger:       logger,
	})

	var reranker rerank.Reranker = rerank.NewPassthrough(cfg.Rerank.TopKFinal)
	if cfg.Rerank.UseEmbeddings && cfg.Stance.APIKey != "" {
		reranker = rerank.NewEmbeddingReranker(cfg.Stance.APIKey, cfg.Rerank.TopKFinal)
	}

	return &Analyzer{
		extractor:    extract.NewExtractor(deps.Annotator, cfg.Extraction),
		retriever:    retriever,
		reranker:     reranker,
		aggregator:   aggregate.NewAggregator(classifier, cfg.Aggregation, nil),
		claimWorkers: cfg.Concurrency.ClaimWorkers,
		logger:       logger,
	}, nil
}

// claimJob evaluates one claim on the worker pool
type claimJob struct {
	index    int
	claim    model.Claim
	analyzer *Analyzer
}

// claimOutcome carries a resolved claim back with its ordering index
type claimOutcome struct {
	index  int
	result model.ClaimResult
}

func (o *claimOutcome) GetError() error { return nil }

func (j *claimJob) Execute(ctx context.Context) worker.Result {
	a := j.analyzer

	// A claim left unresolved when the deadline elapses degrades to
	// unclear instead of failing the response
	if ctx.Err() != nil {
		return &claimOutcome{index: j.index, result: degraded(j.claim)}
	}

	snippets := a.retriever.Retrieve(ctx, j.claim.Text)
	snippets = a.reranker.Rerank(ctx, j.claim.Text, snippets)
	return &claimOutcome{
		index:  j.index,
		result: a.aggregator.ResolveClaim(ctx, j.claim.Text, snippets),
	}
}

func degraded(claim model.Claim) model.ClaimResult {
	return model.ClaimResult{
		Claim:      claim.Text,
		Label:      model.StanceUnclear,
		Confidence: 0.0,
		Evidence:   model.SentinelEvidence(),
	}
}

// Analyze runs the pipeline over article text. maxClaims <= 0 uses the
// configured default. The only fatal error is an unavailable annotator;
// everything downstream degrades per claim.
func (a *Analyzer) Analyze(ctx context.Context, text string, maxClaims int) (*model.AnalysisResult, error) {
	claims, err := a.extractor.Extract(text, maxClaims)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	a.logger.Debug("extracted claims", zap.Int("count", len(claims)))

	if len(claims) == 0 {
		return a.aggregator.Aggregate([]model.ClaimResult{}), nil
	}

	pool := worker.NewPool(ctx, a.claimWorkers)
	pool.Start()
	for i, claim := range claims {
		pool.Submit(&claimJob{index: i, claim: claim, analyzer: a})
	}
	outcomes := pool.Wait()

	// Restore salience order; claims cancelled before execution degrade
	results := make([]model.ClaimResult, len(claims))
	resolved := make([]bool, len(claims))
	for _, out := range outcomes {
		o := out.(*claimOutcome)
		results[o.index] = o.result
		resolved[o.index] = true
	}
	for i, ok := range resolved {
		if !ok {
			results[i] = degraded(claims[i])
		}
	}

	// Index order is the extractor's salience order
	return a.aggregator.Aggregate(results), nil
}
