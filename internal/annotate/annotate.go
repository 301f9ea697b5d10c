// Package annotate provides the linguistic annotation capability used by
// claim extraction: sentence boundaries, part-of-speech tags, and named
// entity spans. The production implementation is backed by prose; tests
// substitute a fake.
package annotate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAnnotatorUnavailable is returned when the backing linguistic model
// cannot be constructed or invoked. It is fatal and non-retryable: the
// pipeline cannot extract claims without annotation.
var ErrAnnotatorUnavailable = errors.New("linguistic annotator unavailable")

// Token is a single token with its Penn Treebank part-of-speech tag
type Token struct {
	Text string
	Tag  string
}

// Entity is a named-entity span with its label (PERSON, GPE, DATE, ...)
type Entity struct {
	Text  string
	Label string
}

// Sentence is one annotated sentence
type Sentence struct {
	Text     string
	Tokens   []Token
	Entities []Entity
}

// Document is the annotation result for a whole text
type Document struct {
	Sentences []Sentence
}

// Annotator supplies linguistic annotation for a text
type Annotator interface {
	Annotate(text string) (*Document, error)
}

// IsVerbTag reports whether a Penn Treebank tag marks a verb
func IsVerbTag(tag string) bool {
	return strings.HasPrefix(tag, "VB")
}

// IsNominalTag reports whether a tag marks a noun or pronoun, the token
// kinds that can serve as a grammatical subject
func IsNominalTag(tag string) bool {
	return strings.HasPrefix(tag, "NN") || tag == "PRP" || tag == "WP"
}

// HasSubjectAndVerb reports whether the sentence contains a nominal token
// followed (not necessarily adjacently) by a verb, the approximation of a
// nominal-subject dependency used by the grammatical gate.
func (s Sentence) HasSubjectAndVerb() (subject, verb bool) {
	sawNominal := false
	for _, tok := range s.Tokens {
		if IsNominalTag(tok.Tag) {
			sawNominal = true
		}
		if IsVerbTag(tok.Tag) {
			verb = true
			if sawNominal {
				subject = true
			}
		}
	}
	return subject, verb
}

// HasVerb reports whether the sentence contains any verb token
func (s Sentence) HasVerb() bool {
	_, verb := s.HasSubjectAndVerb()
	return verb
}

// unavailable wraps a backend failure in the fatal sentinel
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrAnnotatorUnavailable, err)
}
