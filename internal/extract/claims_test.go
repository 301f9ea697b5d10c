package extract

import (
	"math"
	"strings"
	"testing"

	"github.com/veritas-checks/veritas/internal/annotate"
	"github.com/veritas-checks/veritas/internal/model"
)

// fakeAnnotator returns pre-built sentences regardless of input text
type fakeAnnotator struct {
	sentences []annotate.Sentence
	err       error
}

func (f *fakeAnnotator) Annotate(text string) (*annotate.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &annotate.Document{Sentences: f.sentences}, nil
}

// sentence builds a test sentence with naive whitespace tokens
func sentence(text string, entities ...annotate.Entity) annotate.Sentence {
	var tokens []annotate.Token
	for _, field := range strings.Fields(text) {
		tokens = append(tokens, annotate.Token{Text: field, Tag: "NN"})
	}
	return annotate.Sentence{Text: text, Tokens: tokens, Entities: entities}
}

func lexicalConfig() model.ExtractionConfig {
	return model.ExtractionConfig{
		MaxClaims:            12,
		MinTokens:            8,
		MaxTokens:            40,
		RequireEntityOrDigit: true,
		Gate:                 model.GateLexical,
		Salience:             model.SalienceWeighted,
	}
}

func TestExtract_AcceptsClaimRejectsQuestion(t *testing.T) {
	ann := &fakeAnnotator{sentences: []annotate.Sentence{
		sentence("Officials announced on Monday that the city will allocate $12 million to expand public transit in 2025.",
			annotate.Entity{Text: "Monday", Label: "DATE"},
			annotate.Entity{Text: "$12 million", Label: "MONEY"},
		),
		sentence("Some residents asked whether fares would be reduced?"),
	}}

	extractor := NewExtractor(ann, lexicalConfig())
	claims, err := extractor.Extract("irrelevant", 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("Expected exactly 1 claim, got %d", len(claims))
	}
	if !strings.Contains(claims[0].Text, "$12 million") {
		t.Errorf("Expected the transit claim, got %q", claims[0].Text)
	}
}

func TestExtract_EntityOrDigitGate(t *testing.T) {
	ann := &fakeAnnotator{sentences: []annotate.Sentence{
		sentence("the weather was generally pleasant and everyone seemed quite happy overall"),
		sentence("ridership increased by 8 percent across the metro area last year"),
	}}

	extractor := NewExtractor(ann, lexicalConfig())
	claims, err := extractor.Extract("irrelevant", 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim (digit-bearing sentence), got %d", len(claims))
	}
	if !strings.Contains(claims[0].Text, "8 percent") {
		t.Errorf("Wrong claim survived the gate: %q", claims[0].Text)
	}
}

func TestExtract_TokenBandGate(t *testing.T) {
	ann := &fakeAnnotator{sentences: []annotate.Sentence{
		sentence("Too short with 5 tokens."),
		sentence("This candidate sentence has exactly enough tokens and the digit 42 to pass."),
	}}

	extractor := NewExtractor(ann, lexicalConfig())
	claims, err := extractor.Extract("irrelevant", 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if !strings.Contains(claims[0].Text, "42") {
		t.Errorf("Expected the in-band sentence, got %q", claims[0].Text)
	}
}

func TestExtract_SortedBySalienceWithUniqueKeys(t *testing.T) {
	// Entity + digit + early position outranks digit-only, which outranks
	// a late digit-only sentence
	var sentences []annotate.Sentence
	sentences = append(sentences,
		sentence("The agency reported a 30 percent rise in costs for the year 2024 overall.",
			annotate.Entity{Text: "2024", Label: "DATE"}),
		sentence("numbers like 17 appear in this otherwise plain early sentence about things here"),
	)
	for i := 0; i < 6; i++ {
		sentences = append(sentences, sentence("filler sentence without any facts to check at all in this spot"))
	}
	sentences = append(sentences,
		sentence("a late sentence mentions the value 99 without any other notable content at all"),
	)

	ann := &fakeAnnotator{sentences: sentences}
	extractor := NewExtractor(ann, lexicalConfig())
	claims, err := extractor.Extract("irrelevant", 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) != 3 {
		t.Fatalf("Expected 3 claims, got %d", len(claims))
	}

	for i := 1; i < len(claims); i++ {
		if claims[i].Salience > claims[i-1].Salience {
			t.Errorf("Claims not sorted by salience: %f before %f",
				claims[i-1].Salience, claims[i].Salience)
		}
	}

	seen := make(map[string]bool)
	for _, claim := range claims {
		key := dedupeKey(claim.Text)
		if seen[key] {
			t.Errorf("Duplicate dedup key: %q", key)
		}
		seen[key] = true
	}
}

func TestExtract_Deduplication(t *testing.T) {
	ann := &fakeAnnotator{sentences: []annotate.Sentence{
		sentence("The system processed 120 requests during the first hour of operation today."),
		sentence("THE SYSTEM PROCESSED 120 REQUESTS DURING THE FIRST HOUR OF OPERATION TODAY."),
		sentence("The system, processed 120 requests during the first hour of operation today!"),
	}}

	extractor := NewExtractor(ann, lexicalConfig())
	claims, err := extractor.Extract("irrelevant", 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) != 1 {
		t.Errorf("Expected 1 unique claim after deduplication, got %d", len(claims))
	}
}

func TestExtract_MaxClaimsAndHardCap(t *testing.T) {
	var sentences []annotate.Sentence
	for i := 0; i < 80; i++ {
		sentences = append(sentences, sentence(
			"observation number "+strings.Repeat("x", i%7+1)+" recorded the measured value "+itoa(i)+" during testing today overall"))
	}
	ann := &fakeAnnotator{sentences: sentences}
	extractor := NewExtractor(ann, lexicalConfig())

	claims, err := extractor.Extract("irrelevant", 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) != 3 {
		t.Errorf("Expected 3 claims, got %d", len(claims))
	}

	claims, err = extractor.Extract("irrelevant", 500)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) > 50 {
		t.Errorf("Hard cap exceeded: %d claims", len(claims))
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func TestExtract_GrammaticalGate(t *testing.T) {
	subjectVerb := annotate.Sentence{
		Text: "The council approved the new housing development after a long public debate.",
		Tokens: []annotate.Token{
			{Text: "The", Tag: "DT"}, {Text: "council", Tag: "NN"},
			{Text: "approved", Tag: "VBD"}, {Text: "the", Tag: "DT"},
			{Text: "new", Tag: "JJ"}, {Text: "housing", Tag: "NN"},
			{Text: "development", Tag: "NN"},
		},
	}
	noVerb := annotate.Sentence{
		Text: "A long list of entirely verb-free noun phrases about various council topics.",
		Tokens: []annotate.Token{
			{Text: "A", Tag: "DT"}, {Text: "list", Tag: "NN"},
			{Text: "phrases", Tag: "NNS"}, {Text: "topics", Tag: "NNS"},
		},
	}
	tooShort := annotate.Sentence{
		Text: "It rained today.",
		Tokens: []annotate.Token{
			{Text: "It", Tag: "PRP"}, {Text: "rained", Tag: "VBD"}, {Text: "today", Tag: "NN"},
		},
	}

	cfg := lexicalConfig()
	cfg.Gate = model.GateGrammatical
	ann := &fakeAnnotator{sentences: []annotate.Sentence{subjectVerb, noVerb, tooShort}}
	extractor := NewExtractor(ann, cfg)

	claims, err := extractor.Extract("irrelevant", 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim from the grammatical gate, got %d", len(claims))
	}
	if !strings.Contains(claims[0].Text, "council approved") {
		t.Errorf("Wrong sentence passed the gate: %q", claims[0].Text)
	}
}

func TestExtract_AdditiveSalienceRanksReportingVerbs(t *testing.T) {
	reported := annotate.Sentence{
		Text: "Officials reported that 40 stations will open across the region next year.",
		Tokens: []annotate.Token{
			{Text: "Officials", Tag: "NNS"}, {Text: "reported", Tag: "VBD"},
			{Text: "that", Tag: "IN"}, {Text: "40", Tag: "CD"},
			{Text: "stations", Tag: "NNS"}, {Text: "will", Tag: "MD"},
			{Text: "open", Tag: "VB"},
		},
		Entities: []annotate.Entity{{Text: "next year", Label: "DATE"}},
	}
	plain := annotate.Sentence{
		Text: "Roughly 40 stations will open across the region at some point next year.",
		Tokens: []annotate.Token{
			{Text: "Roughly", Tag: "RB"}, {Text: "40", Tag: "CD"},
			{Text: "stations", Tag: "NNS"}, {Text: "will", Tag: "MD"},
			{Text: "open", Tag: "VB"},
		},
		Entities: []annotate.Entity{{Text: "next year", Label: "DATE"}},
	}

	cfg := lexicalConfig()
	cfg.Salience = model.SalienceAdditive
	ann := &fakeAnnotator{sentences: []annotate.Sentence{plain, reported}}
	extractor := NewExtractor(ann, cfg)

	claims, err := extractor.Extract("irrelevant", 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(claims))
	}
	if !strings.Contains(claims[0].Text, "Officials reported") {
		t.Errorf("Reporting-verb sentence should rank first, got %q", claims[0].Text)
	}
}

func TestExtract_AnnotatorUnavailable(t *testing.T) {
	ann := &fakeAnnotator{err: annotate.ErrAnnotatorUnavailable}
	extractor := NewExtractor(ann, lexicalConfig())

	_, err := extractor.Extract("some text", 5)
	if err == nil {
		t.Fatal("Expected error when annotator is unavailable")
	}
}

func TestNormalize_StripsBoilerplate(t *testing.T) {
	text := "First   line \t with   spaces\nADVERTISEMENT\nSupported by our sponsors\nSecond line\n\n\n\n\nThird line"
	got := normalize(text)

	if strings.Contains(got, "ADVERTISEMENT") || strings.Contains(got, "Supported by") {
		t.Errorf("Boilerplate not stripped: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("Space runs not collapsed: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("Blank-line runs not capped: %q", got)
	}
}

func TestWeightedSalience_ClampedAndBanded(t *testing.T) {
	full := sentence("The committee counted 500 votes across 12 districts during the recount process today.",
		annotate.Entity{Text: "today", Label: "DATE"})
	score := weightedSalience(full, 0)
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("Expected full score 1.0 (0.4+0.35+0.15+0.1), got %f", score)
	}

	bare := sentence("nothing checkable appears anywhere within this rather plain example sentence text")
	score = weightedSalience(bare, 10)
	if math.Abs(score-0.4) > 1e-9 {
		t.Errorf("Expected band-only score 0.4, got %f", score)
	}
}
