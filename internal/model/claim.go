package model

// Claim represents a factual assertion extracted from article text
type Claim struct {
	Text     string  `json:"text"`     // The claim sentence itself
	Salience float64 `json:"salience"` // Heuristic claim-likeness used for ranking, [0,1]
	Sentence int     `json:"sentence"` // Sentence index in the source article (0-based)
}

// GateStrategy selects the acceptance gate applied to candidate sentences
type GateStrategy string

const (
	// GateLexical accepts sentences by token count and entity/digit presence
	GateLexical GateStrategy = "lexical"
	// GateGrammatical accepts sentences that carry a subject and a verb
	GateGrammatical GateStrategy = "grammatical"
)

// SalienceScheme selects the salience scoring formula
type SalienceScheme string

const (
	// SalienceWeighted is the weighted-sum formula clamped to [0,1]
	SalienceWeighted SalienceScheme = "weighted"
	// SalienceAdditive is the integer point scheme normalized for ranking
	SalienceAdditive SalienceScheme = "additive"
)
