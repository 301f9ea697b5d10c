// Package rerank re-orders retrieved evidence snippets before stance
// classification. The default is a pass-through that only truncates;
// an embedding-based re-ranker can be switched on by configuration.
package rerank

import (
	"context"

	"github.com/veritas-checks/veritas/internal/model"
)

// Reranker re-orders snippets for a claim and truncates to the final top-k
type Reranker interface {
	Rerank(ctx context.Context, claim string, snippets []model.EvidenceSnippet) []model.EvidenceSnippet
}

// Passthrough preserves the retrieval order and truncates to topKFinal
type Passthrough struct {
	topKFinal int
}

// NewPassthrough creates the default re-ranker
func NewPassthrough(topKFinal int) *Passthrough {
	if topKFinal <= 0 {
		topKFinal = 2
	}
	return &Passthrough{topKFinal: topKFinal}
}

func (p *Passthrough) Rerank(ctx context.Context, claim string, snippets []model.EvidenceSnippet) []model.EvidenceSnippet {
	if len(snippets) > p.topKFinal {
		return snippets[:p.topKFinal]
	}
	return snippets
}
