// Package stance classifies the relationship between a claim and an
// evidence snippet: supported, refuted, or unclear. The classifier is a
// pluggable capability; the default backend safely reports unclear.
package stance

import (
	"context"
	"fmt"

	"github.com/veritas-checks/veritas/internal/model"
)

// Classifier judges a (claim, snippet) pair
type Classifier interface {
	// Name returns the backend name
	Name() string

	// Classify returns the stance label and a confidence in [0,1]
	Classify(ctx context.Context, claim, snippet string) (model.StanceLabel, float64, error)
}

// Unimplemented is the safe default backend: it never asserts a stance.
// Aggregation keeps working without a real classifier wired in.
type Unimplemented struct{}

func (Unimplemented) Name() string { return "unimplemented" }

func (Unimplemented) Classify(ctx context.Context, claim, snippet string) (model.StanceLabel, float64, error) {
	return model.StanceUnclear, 0.0, nil
}

// NewClassifier builds the configured backend. An empty provider selects
// the safe default.
func NewClassifier(cfg model.StanceConfig) (Classifier, error) {
	switch cfg.Provider {
	case "":
		return Unimplemented{}, nil
	case "openai":
		c, err := NewOpenAIClassifier(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown stance provider: %s", cfg.Provider)
	}
}
