package annotate

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// dateWords supplements prose's entity extractor, which does not label
// dates, so the entity gate still sees DATE spans for common day and month
// mentions
var dateWords = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"today": true, "yesterday": true, "tomorrow": true,
}

// ProseAnnotator implements Annotator on top of the prose NLP library.
// Construct once at process start and share; the underlying models are
// loaded eagerly and reused across requests.
type ProseAnnotator struct{}

// NewProseAnnotator constructs the annotator and probes the backing model.
// Returns ErrAnnotatorUnavailable if the model cannot run.
func NewProseAnnotator() (*ProseAnnotator, error) {
	// Probe with a trivial document so a broken model surfaces at startup,
	// not on the first request.
	if _, err := prose.NewDocument("Veritas starts.", prose.WithExtraction(false)); err != nil {
		return nil, unavailable(err)
	}
	return &ProseAnnotator{}, nil
}

// Annotate segments text into sentences and annotates each with tokens and
// entity spans
func (a *ProseAnnotator) Annotate(text string) (*Document, error) {
	seg, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, unavailable(err)
	}

	doc := &Document{}
	for _, sent := range seg.Sentences() {
		annotated, err := a.annotateSentence(sent.Text)
		if err != nil {
			return nil, unavailable(err)
		}
		doc.Sentences = append(doc.Sentences, annotated)
	}
	return doc, nil
}

func (a *ProseAnnotator) annotateSentence(text string) (Sentence, error) {
	sub, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return Sentence{}, err
	}

	s := Sentence{Text: text}
	for _, tok := range sub.Tokens() {
		s.Tokens = append(s.Tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	for _, ent := range sub.Entities() {
		s.Entities = append(s.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}

	// Lexical date supplement: prose's extractor does not label dates
	for _, tok := range s.Tokens {
		if dateWords[strings.ToLower(tok.Text)] {
			s.Entities = append(s.Entities, Entity{Text: tok.Text, Label: "DATE"})
		}
	}
	return s, nil
}
