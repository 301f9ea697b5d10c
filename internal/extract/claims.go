// Package extract turns raw article text into a ranked, deduplicated list
// of checkable claims.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/veritas-checks/veritas/internal/annotate"
	"github.com/veritas-checks/veritas/internal/model"
)

// factEntityLabels are the entity kinds that mark a sentence as carrying a
// checkable fact
var factEntityLabels = map[string]bool{
	"PERSON":  true,
	"ORG":     true,
	"GPE":     true,
	"LOC":     true,
	"DATE":    true,
	"TIME":    true,
	"MONEY":   true,
	"PERCENT": true,
}

// reportingVerbs signal attributed statements in the additive salience scheme
var reportingVerbs = map[string]bool{
	"said": true, "says": true, "reported": true, "reports": true,
	"announced": true, "announces": true, "stated": true, "states": true,
	"confirmed": true, "confirms": true, "published": true,
}

// boilerplateMarkers are line prefixes stripped before annotation
var boilerplateMarkers = []string{
	"ADVERTISEMENT",
	"Advertisement",
	"Supported by",
	"Sign up for",
	"Read more:",
}

var (
	digitRe   = regexp.MustCompile(`\d`)
	nonWordRe = regexp.MustCompile(`\W+`)
	spaceRe   = regexp.MustCompile(`[ \t]+`)
	blankRe   = regexp.MustCompile(`\n{3,}`)
)

// hardMaxClaims caps maxClaims regardless of configuration
const hardMaxClaims = 50

// Extractor extracts claims from article text
type Extractor struct {
	annotator annotate.Annotator
	cfg       model.ExtractionConfig
}

// NewExtractor creates a claim extractor using the given annotator
func NewExtractor(annotator annotate.Annotator, cfg model.ExtractionConfig) *Extractor {
	return &Extractor{annotator: annotator, cfg: cfg}
}

// Extract returns up to maxClaims claims ordered by descending salience,
// ties broken by original sentence order. maxClaims <= 0 falls back to the
// configured default. The only error condition is an unavailable annotator.
func (e *Extractor) Extract(text string, maxClaims int) ([]model.Claim, error) {
	limit := maxClaims
	if limit <= 0 {
		limit = e.cfg.MaxClaims
	}
	if limit > hardMaxClaims {
		limit = hardMaxClaims
	}
	if limit < 1 {
		limit = 1
	}

	doc, err := e.annotator.Annotate(normalize(text))
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	var candidates []model.Claim
	for idx, sent := range doc.Sentences {
		if !e.accept(sent) {
			continue
		}
		candidates = append(candidates, model.Claim{
			Text:     strings.TrimSpace(sent.Text),
			Salience: e.salience(sent, idx),
			Sentence: idx,
		})
	}
	if len(candidates) == 0 {
		return []model.Claim{}, nil
	}

	// Higher salience first; original sentence order breaks ties
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Salience != candidates[j].Salience {
			return candidates[i].Salience > candidates[j].Salience
		}
		return candidates[i].Sentence < candidates[j].Sentence
	})

	claims := dedupe(candidates)
	if len(claims) > limit {
		claims = claims[:limit]
	}
	return claims, nil
}

// accept applies the configured acceptance gate
func (e *Extractor) accept(sent annotate.Sentence) bool {
	text := strings.TrimSpace(sent.Text)
	if text == "" || strings.HasSuffix(text, "?") {
		return false
	}

	switch e.cfg.Gate {
	case model.GateGrammatical:
		if len(text) < 40 {
			return false
		}
		subject, verb := sent.HasSubjectAndVerb()
		return subject && verb
	default: // lexical
		tl := tokenLen(text)
		if tl < e.cfg.MinTokens || tl > e.cfg.MaxTokens {
			return false
		}
		if e.cfg.RequireEntityOrDigit && !hasFactEntity(sent) && !hasNumericFact(text) {
			return false
		}
		return true
	}
}

// salience scores how claim-like a sentence is; used only for ranking
func (e *Extractor) salience(sent annotate.Sentence, idx int) float64 {
	if e.cfg.Salience == model.SalienceAdditive {
		return additiveSalience(sent)
	}
	return weightedSalience(sent, idx)
}

// weightedSalience is the default weighted-sum formula clamped to [0,1]
func weightedSalience(sent annotate.Sentence, idx int) float64 {
	score := 0.0
	if tl := tokenLen(sent.Text); tl >= 8 && tl <= 40 {
		score += 0.4 // concise claim band
	}
	if hasFactEntity(sent) {
		score += 0.35
	}
	if hasNumericFact(sent.Text) {
		score += 0.15
	}
	if idx <= 5 {
		score += 0.1 // early sentences carry the lede
	}
	return clamp01(score)
}

// additiveSalience is the integer point scheme, normalized so ranking
// semantics match the weighted formula (higher = more claim-like)
func additiveSalience(sent annotate.Sentence) float64 {
	points := 0
	subject, verb := sent.HasSubjectAndVerb()
	if subject {
		points += 2
	}
	if verb {
		points += 2
	}
	if hasFactEntity(sent) {
		points += 2
	}
	if hasNumericFact(sent.Text) {
		points += 2
	}
	for _, tok := range sent.Tokens {
		if reportingVerbs[strings.ToLower(tok.Text)] {
			points++
			break
		}
	}
	return clamp01(float64(points) / 9.0)
}

// dedupe keeps the first occurrence of each normalized key in score order
func dedupe(candidates []model.Claim) []model.Claim {
	seen := make(map[string]bool)
	var unique []model.Claim
	for _, c := range candidates {
		key := dedupeKey(c.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}

// dedupeKey lowercases and collapses non-word runs to single spaces
func dedupeKey(text string) string {
	return strings.TrimSpace(nonWordRe.ReplaceAllString(strings.ToLower(text), " "))
}

// normalize collapses space/tab runs per line, caps blank-line runs, and
// drops known boilerplate lines
func normalize(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBoilerplate(trimmed) {
			continue
		}
		kept = append(kept, spaceRe.ReplaceAllString(trimmed, " "))
	}
	joined := strings.Join(kept, "\n")
	return strings.TrimSpace(blankRe.ReplaceAllString(joined, "\n\n"))
}

func isBoilerplate(line string) bool {
	for _, marker := range boilerplateMarkers {
		if line == marker || strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

func hasFactEntity(sent annotate.Sentence) bool {
	for _, ent := range sent.Entities {
		if factEntityLabels[ent.Label] {
			return true
		}
	}
	return false
}

func hasNumericFact(text string) bool {
	return digitRe.MatchString(text) || strings.Contains(text, "%")
}

// tokenLen counts whitespace-separated tokens, the same rough measure the
// min/max token gate is calibrated against
func tokenLen(text string) int {
	return len(strings.Fields(text))
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
