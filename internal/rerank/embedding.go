package rerank

import (
	"context"
	"math"
	"sort"

	openai "github.com/sashabaranov/go-openai"

	"github.com/veritas-checks/veritas/internal/model"
)

// EmbeddingReranker re-orders snippets by cosine similarity between the
// claim embedding and each snippet embedding. Any embedding failure falls
// back to the retrieval order.
type EmbeddingReranker struct {
	client    *openai.Client
	embModel  openai.EmbeddingModel
	topKFinal int
}

// NewEmbeddingReranker creates the embedding-backed re-ranker
func NewEmbeddingReranker(apiKey string, topKFinal int) *EmbeddingReranker {
	if topKFinal <= 0 {
		topKFinal = 2
	}
	return &EmbeddingReranker{
		client:    openai.NewClient(apiKey),
		embModel:  openai.SmallEmbedding3,
		topKFinal: topKFinal,
	}
}

func (r *EmbeddingReranker) Rerank(ctx context.Context, claim string, snippets []model.EvidenceSnippet) []model.EvidenceSnippet {
	if len(snippets) <= 1 {
		return truncate(snippets, r.topKFinal)
	}

	inputs := make([]string, 0, len(snippets)+1)
	inputs = append(inputs, claim)
	for _, s := range snippets {
		inputs = append(inputs, s.Snippet)
	}

	resp, err := r.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: r.embModel,
		Input: inputs,
	})
	if err != nil || len(resp.Data) != len(inputs) {
		return truncate(snippets, r.topKFinal)
	}

	claimVec := resp.Data[0].Embedding
	type scored struct {
		snippet model.EvidenceSnippet
		sim     float64
	}
	ranked := make([]scored, len(snippets))
	for i, s := range snippets {
		ranked[i] = scored{snippet: s, sim: cosine(claimVec, resp.Data[i+1].Embedding)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].sim > ranked[j].sim
	})

	out := make([]model.EvidenceSnippet, len(ranked))
	for i, s := range ranked {
		out[i] = s.snippet
	}
	return truncate(out, r.topKFinal)
}

func truncate(snippets []model.EvidenceSnippet, k int) []model.EvidenceSnippet {
	if len(snippets) > k {
		return snippets[:k]
	}
	return snippets
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
