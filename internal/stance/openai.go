package stance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/veritas-checks/veritas/internal/model"
)

const stancePrompt = `You judge whether a piece of evidence supports or refutes a claim.

Claim:
%s

Evidence:
%s

Reply with ONLY a JSON object, no prose:
{"label": "supported" | "refuted" | "unclear", "confidence": <0.0-1.0>}

Rules:
- "supported" only if the evidence states the claim or a direct consequence of it.
- "refuted" only if the evidence contradicts the claim.
- "unclear" whenever the evidence is off-topic, partial, or ambiguous.`

// OpenAIClassifier classifies stance with a chat completion
type OpenAIClassifier struct {
	client        *openai.Client
	model         string
	minConfidence float64
	timeout       time.Duration
}

// NewOpenAIClassifier creates the OpenAI-backed classifier
func NewOpenAIClassifier(cfg model.StanceConfig) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai stance classifier: missing API key")
	}
	mdl := cfg.Model
	if mdl == "" {
		mdl = "gpt-4o-mini"
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClassifier{
		client:        openai.NewClient(cfg.APIKey),
		model:         mdl,
		minConfidence: cfg.MinConfidence,
		timeout:       timeout,
	}, nil
}

func (c *OpenAIClassifier) Name() string { return "openai" }

// Classify asks the model for a stance verdict. Low-confidence verdicts are
// downgraded to unclear rather than trusted.
func (c *OpenAIClassifier) Classify(ctx context.Context, claim, snippet string) (model.StanceLabel, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   100,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(stancePrompt, claim, snippet),
			},
		},
	})
	if err != nil {
		return model.StanceUnclear, 0.0, fmt.Errorf("stance completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.StanceUnclear, 0.0, fmt.Errorf("stance completion: empty response")
	}

	label, confidence, err := parseVerdict(resp.Choices[0].Message.Content)
	if err != nil {
		return model.StanceUnclear, 0.0, err
	}
	if confidence < c.minConfidence {
		return model.StanceUnclear, confidence, nil
	}
	return label, confidence, nil
}

type verdict struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// parseVerdict extracts the JSON verdict from the model reply, tolerating
// surrounding prose or code fences
func parseVerdict(reply string) (model.StanceLabel, float64, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return model.StanceUnclear, 0.0, fmt.Errorf("stance reply has no JSON object")
	}

	var v verdict
	if err := json.Unmarshal([]byte(reply[start:end+1]), &v); err != nil {
		return model.StanceUnclear, 0.0, fmt.Errorf("decode verdict: %w", err)
	}

	confidence := v.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	switch model.StanceLabel(v.Label) {
	case model.StanceSupported:
		return model.StanceSupported, confidence, nil
	case model.StanceRefuted:
		return model.StanceRefuted, confidence, nil
	default:
		return model.StanceUnclear, confidence, nil
	}
}
