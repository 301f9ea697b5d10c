package rerank

import (
	"context"
	"math"
	"testing"

	"github.com/veritas-checks/veritas/internal/model"
)

func snippets(n int) []model.EvidenceSnippet {
	out := make([]model.EvidenceSnippet, n)
	for i := range out {
		out[i] = model.EvidenceSnippet{
			Snippet:        "snippet",
			Source:         "https://example.com",
			RetrievalScore: 1.0 - float64(i)*0.1,
		}
	}
	return out
}

func TestPassthrough_Truncates(t *testing.T) {
	p := NewPassthrough(2)

	out := p.Rerank(context.Background(), "claim", snippets(5))
	if len(out) != 2 {
		t.Fatalf("Expected 2 snippets, got %d", len(out))
	}
	if out[0].RetrievalScore != 1.0 {
		t.Errorf("Order changed by passthrough: %+v", out)
	}
}

func TestPassthrough_ShortInputUnchanged(t *testing.T) {
	p := NewPassthrough(3)

	in := snippets(2)
	out := p.Rerank(context.Background(), "claim", in)
	if len(out) != 2 {
		t.Errorf("Expected input returned unchanged, got %d snippets", len(out))
	}

	if got := p.Rerank(context.Background(), "claim", nil); len(got) != 0 {
		t.Errorf("Nil input should stay empty, got %d", len(got))
	}
}

func TestPassthrough_DefaultTopK(t *testing.T) {
	p := NewPassthrough(0)
	out := p.Rerank(context.Background(), "claim", snippets(5))
	if len(out) != 2 {
		t.Errorf("Zero topKFinal should default to 2, got %d", len(out))
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosine = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate(snippets(5), 3); len(got) != 3 {
		t.Errorf("Expected 3, got %d", len(got))
	}
	if got := truncate(snippets(2), 3); len(got) != 2 {
		t.Errorf("Expected 2, got %d", len(got))
	}
}
