package retrieve

import (
	"math"
	"regexp"
	"strings"
)

// DefaultWindowChars is the width of the snippet window cut from page text
const DefaultWindowChars = 420

// maxSnippetChars caps the stored snippet after windowing
const maxSnippetChars = 430

// wordRe tokenizes into alphanumeric/percent tokens, the unit both the
// window scan and the overlap score operate on
var wordRe = regexp.MustCompile(`[A-Za-z0-9%]+`)

// BestSnippet returns the window of page text most relevant to the claim:
// a windowChars-wide span centered on the first case-insensitive occurrence
// of any claim token, or the head of the page when no token occurs.
func BestSnippet(claim, pageText string, windowChars int) string {
	if windowChars <= 0 {
		windowChars = DefaultWindowChars
	}
	low := strings.ToLower(pageText)
	for _, token := range wordRe.FindAllString(claim, -1) {
		pos := strings.Index(low, strings.ToLower(token))
		if pos < 0 {
			continue
		}
		start := pos - windowChars/2
		if start < 0 {
			start = 0
		}
		end := start + windowChars
		if end > len(pageText) {
			end = len(pageText)
		}
		return pageText[start:end]
	}
	if len(pageText) > windowChars {
		return pageText[:windowChars]
	}
	return pageText
}

// OverlapScore computes the lexical token-set overlap between claim and
// snippet: |A∩B| / sqrt(|A|*|B|), 0 when either set is empty. The score is
// 1 exactly when both non-empty sets are identical.
func OverlapScore(claim, snippet string) float64 {
	a := tokenSet(claim)
	b := tokenSet(snippet)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for token := range a {
		if b[token] {
			inter++
		}
	}
	return float64(inter) / math.Sqrt(float64(len(a))*float64(len(b)))
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range wordRe.FindAllString(text, -1) {
		set[strings.ToLower(token)] = true
	}
	return set
}

// truncateSnippet caps a windowed snippet at the stored length
func truncateSnippet(snippet string) string {
	if len(snippet) > maxSnippetChars {
		return snippet[:maxSnippetChars]
	}
	return snippet
}
