package model

// EvidenceSnippet is one retrieved piece of evidence for a claim
type EvidenceSnippet struct {
	Snippet        string  `json:"snippet"`         // Evidence text shown to the user
	Source         string  `json:"source"`          // URL of the evidence source
	RetrievalScore float64 `json:"retrieval_score"` // Normalized relevance in [0,1]
}

// StanceLabel is the relationship evidence bears to a claim
type StanceLabel string

const (
	StanceSupported StanceLabel = "supported"
	StanceRefuted   StanceLabel = "refuted"
	StanceUnclear   StanceLabel = "unclear"
)

// SentinelSource marks a claim result for which no evidence was found
const SentinelSource = "about:blank"

// SentinelEvidence returns the placeholder snippet attached when retrieval
// produced nothing for a claim
func SentinelEvidence() EvidenceSnippet {
	return EvidenceSnippet{
		Snippet:        "(no evidence found)",
		Source:         SentinelSource,
		RetrievalScore: 0.0,
	}
}

// ClaimResult is the per-claim verdict with its top evidence
type ClaimResult struct {
	Claim      string          `json:"claim"`
	Label      StanceLabel     `json:"label"`      // supported | refuted | unclear
	Confidence float64         `json:"confidence"` // Stance confidence in [0,1]
	Evidence   EvidenceSnippet `json:"evidence"`   // Always present; sentinel when none found
}
