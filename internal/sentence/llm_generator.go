package sentence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/hanzi/internal/llm"
)

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type pairOutput struct {
	Native string `json:"native"`
	Gloss  string `json:"gloss"`
}

// Generate requests a sentence, retrying while validators reject it.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*Pair, error) {
	ctx = llm.WithPurpose(ctx, "sentence")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      SentenceSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	var (
		best    *Pair
		lastErr error
	)
	for attempt := 0; attempt <= g.config.Retries; attempt++ {
		p, verr, err := g.attempt(ctx, req, input)
		if err != nil {
			return nil, err
		}
		if verr == nil {
			return p, nil
		}
		lastErr = verr
		if verr.Validator == "charset" {
			if best == nil || len(p.Outside) < len(best.Outside) {
				best = p
			}
		}
		if !verr.Retryable {
			break
		}
	}

	if best != nil {
		return best, nil
	}
	return nil, lastErr
}

func (g *LLMGenerator) attempt(ctx context.Context, req llm.Request, input Input) (*Pair, *ValidationError, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw pairOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	p := &Pair{Native: raw.Native, Gloss: raw.Gloss}
	for _, v := range g.config.Validators {
		if verr := v.Validate(p, input); verr != nil {
			return p, verr, nil
		}
	}
	return p, nil, nil
}

// IsValidation reports whether err came from a validator.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
