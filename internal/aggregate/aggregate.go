// Package aggregate combines per-claim outcomes into the article-level
// credibility verdict.
package aggregate

import (
	"context"

	"github.com/veritas-checks/veritas/internal/model"
	"github.com/veritas-checks/veritas/internal/stance"
)

// ScoreFunc maps the number of claims checked to an article score in [0,1].
// The default is a coarse processed-claims proxy, not an evidence-quality
// measure; callers may substitute their own.
type ScoreFunc func(claimsChecked int) float64

// DefaultScore is min(1, claimsChecked/10)
func DefaultScore(claimsChecked int) float64 {
	score := float64(claimsChecked) / 10.0
	if score > 1 {
		return 1
	}
	return score
}

// Aggregator builds ClaimResults and the article verdict
type Aggregator struct {
	classifier stance.Classifier
	scoreFn    ScoreFunc
	highMin    float64
	medMin     float64
}

// NewAggregator creates an aggregator with the configured thresholds.
// A nil classifier uses the safe default; a nil scoreFn uses DefaultScore.
func NewAggregator(classifier stance.Classifier, cfg model.AggregationConfig, scoreFn ScoreFunc) *Aggregator {
	if classifier == nil {
		classifier = stance.Unimplemented{}
	}
	if scoreFn == nil {
		scoreFn = DefaultScore
	}
	return &Aggregator{
		classifier: classifier,
		scoreFn:    scoreFn,
		highMin:    cfg.HighMin,
		medMin:     cfg.MedMin,
	}
}

// ResolveClaim builds the ClaimResult for one claim and its ranked
// evidence. Empty evidence forces (unclear, 0.0, sentinel) without
// invoking the classifier; classifier failures degrade the same way.
func (a *Aggregator) ResolveClaim(ctx context.Context, claim string, evidence []model.EvidenceSnippet) model.ClaimResult {
	if len(evidence) == 0 {
		return model.ClaimResult{
			Claim:      claim,
			Label:      model.StanceUnclear,
			Confidence: 0.0,
			Evidence:   model.SentinelEvidence(),
		}
	}

	top := evidence[0]
	label, confidence, err := a.classifier.Classify(ctx, claim, top.Snippet)
	if err != nil {
		label, confidence = model.StanceUnclear, 0.0
	}
	return model.ClaimResult{
		Claim:      claim,
		Label:      label,
		Confidence: clamp01(confidence),
		Evidence:   top,
	}
}

// Aggregate computes the article verdict from the resolved claims
func (a *Aggregator) Aggregate(results []model.ClaimResult) *model.AnalysisResult {
	score := clamp01(a.scoreFn(len(results)))
	return &model.AnalysisResult{
		ArticleLabel:  a.label(score),
		ArticleScore:  score,
		ClaimsChecked: len(results),
		Claims:        results,
	}
}

func (a *Aggregator) label(score float64) model.ArticleLabel {
	switch {
	case score >= a.highMin:
		return model.ArticleHigh
	case score >= a.medMin:
		return model.ArticleMedium
	default:
		return model.ArticleLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
