package model

// ArticleLabel is the credibility band shown for a whole article
type ArticleLabel string

const (
	ArticleHigh   ArticleLabel = "High"
	ArticleMedium ArticleLabel = "Medium"
	ArticleLow    ArticleLabel = "Low"
)

// AnalysisResult is the article-level verdict returned to the caller
type AnalysisResult struct {
	ArticleLabel  ArticleLabel  `json:"article_label"`  // High | Medium | Low
	ArticleScore  float64       `json:"article_score"`  // Credibility score in [0,1]
	ClaimsChecked int           `json:"claims_checked"` // Number of claims processed
	Claims        []ClaimResult `json:"claims"`         // Per-claim results, salience order
}
