// Package retrieve finds, fetches, and ranks evidence snippets for a claim
// from the trusted-domain allowlist.
package retrieve

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/veritas-checks/veritas/internal/cache"
	"github.com/veritas-checks/veritas/internal/model"
	"github.com/veritas-checks/veritas/internal/search"
)

// Retriever turns a claim into a ranked list of evidence snippets.
// Per-source failures are absorbed: Retrieve never fails, it only returns
// fewer (possibly zero) snippets.
type Retriever struct {
	searcher     search.Client
	allowlist    *Allowlist
	fetcher      *Fetcher
	snippets     *cache.SnippetCache // nil when caching is disabled
	topKDocs     int
	topKSnippets int
	fetchWorkers int
	logger       *zap.Logger

	// at-most-one in-flight fetch per URL; waiters join the result
	mu       sync.Mutex
	inflight map[string]*fetchCall
}

type fetchCall struct {
	done chan struct{}
	text string
	err  error
}

// Options carries the retriever's collaborators and knobs
type Options struct {
	Searcher     search.Client
	Allowlist    *Allowlist
	Fetcher      *Fetcher
	Cache        *cache.SnippetCache
	Retrieval    model.RetrievalConfig
	FetchWorkers int
	Logger       *zap.Logger
}

// NewRetriever composes the evidence retrieval pipeline
func NewRetriever(opts Options) *Retriever {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.FetchWorkers
	if workers <= 0 {
		workers = 3
	}
	return &Retriever{
		searcher:     opts.Searcher,
		allowlist:    opts.Allowlist,
		fetcher:      opts.Fetcher,
		snippets:     opts.Cache,
		topKDocs:     opts.Retrieval.TopKDocs,
		topKSnippets: opts.Retrieval.TopKSnippets,
		fetchWorkers: workers,
		logger:       logger,
	}
}

// Retrieve returns evidence snippets for the claim, ordered by descending
// retrieval score and truncated to the configured top-k. Snippets scoring
// zero or less never appear.
func (r *Retriever) Retrieve(ctx context.Context, claim string) []model.EvidenceSnippet {
	hits, err := r.searcher.Search(ctx, claim, r.topKDocs)
	if err != nil {
		r.logger.Debug("search failed, claim proceeds with no evidence",
			zap.String("claim", claim), zap.Error(err))
		return nil
	}

	urls := make([]string, 0, len(hits))
	for _, hit := range hits {
		urls = append(urls, hit.URL)
	}
	urls = r.allowlist.Filter(urls)
	if len(urls) > r.topKDocs {
		urls = urls[:r.topKDocs]
	}
	if len(urls) == 0 {
		return nil
	}

	// Evaluate URLs in parallel, bounded by the fetch worker count
	perURL := make([][]model.EvidenceSnippet, len(urls))
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.fetchWorkers)
	for i, u := range urls {
		wg.Add(1)
		go func(idx int, pageURL string) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()
			perURL[idx] = r.evaluateURL(ctx, claim, pageURL)
		}(i, u)
	}
	wg.Wait()

	var out []model.EvidenceSnippet
	for _, snips := range perURL {
		out = append(out, snips...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RetrievalScore > out[j].RetrievalScore
	})
	if len(out) > r.topKSnippets {
		out = out[:r.topKSnippets]
	}
	return out
}

// evaluateURL produces the scored snippets one source contributes to a
// claim. Failures skip the source silently.
func (r *Retriever) evaluateURL(ctx context.Context, claim, pageURL string) []model.EvidenceSnippet {
	// Cached snippets skip the fetch; the score is recomputed against the
	// current claim so a hit from another claim's fetch stays honest
	if cached, ok := r.snippets.Get(pageURL); ok {
		return rescore(claim, cached)
	}

	text, err := r.pageText(ctx, pageURL)
	if err != nil {
		r.logger.Debug("skipping source", zap.String("url", pageURL), zap.Error(err))
		return nil
	}
	if len(text) < MinArticleChars {
		return nil
	}

	snippet := BestSnippet(claim, text, DefaultWindowChars)
	score := OverlapScore(claim, snippet)
	if score <= 0 {
		return nil
	}
	result := []model.EvidenceSnippet{{
		Snippet:        truncateSnippet(snippet),
		Source:         pageURL,
		RetrievalScore: clampScore(score),
	}}
	r.snippets.Put(pageURL, result)
	return result
}

// pageText fetches and extracts a page, deduplicating concurrent fetches of
// the same URL across all claim evaluations
func (r *Retriever) pageText(ctx context.Context, pageURL string) (string, error) {
	r.mu.Lock()
	if call, ok := r.inflight[pageURL]; ok {
		r.mu.Unlock()
		select {
		case <-call.done:
			return call.text, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if r.inflight == nil {
		r.inflight = make(map[string]*fetchCall)
	}
	call := &fetchCall{done: make(chan struct{})}
	r.inflight[pageURL] = call
	r.mu.Unlock()

	raw, err := r.fetcher.Fetch(ctx, pageURL)
	if err == nil {
		call.text = ExtractMainText(raw)
	}
	call.err = err
	close(call.done)

	r.mu.Lock()
	delete(r.inflight, pageURL)
	r.mu.Unlock()

	return call.text, call.err
}

// rescore recomputes retrieval scores of cached snippets against the
// current claim, dropping those that no longer overlap
func rescore(claim string, cached []model.EvidenceSnippet) []model.EvidenceSnippet {
	var out []model.EvidenceSnippet
	for _, snip := range cached {
		score := OverlapScore(claim, snip.Snippet)
		if score <= 0 {
			continue
		}
		snip.RetrievalScore = clampScore(score)
		out = append(out, snip)
	}
	return out
}

func clampScore(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}
