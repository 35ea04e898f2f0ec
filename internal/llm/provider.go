package llm

import (
	"context"
	"encoding/json"
)

// Provider turns a prompt into structured JSON. Vendor adapters, the
// retry and logging decorators and MockProvider all implement it.
type Provider interface {
	// Generate runs one completion. When req.Schema is set the returned
	// Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema asks the vendor for JSON output through its native structured
	// output mode. Without it Content is whatever text the model produced.
	Schema *Schema

	MaxTokens int

	// Temperature is passed through when positive; zero leaves the vendor
	// default in place.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the OpenAI schema name
// and as the compile cache key, so it must be unique per definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is StopEnd or StopMaxTokens regardless of vendor.
	StopReason string
}

const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish is the common tail of every vendor adapter: it checks content
// against the request schema and assembles the Response. Output cut off
// by the token limit that fails validation is reported as KindTruncated.
func finish(req Request, content json.RawMessage, model, stop string, usage Usage) (*Response, error) {
	if err := validateResponse(req.Schema, content); err != nil {
		if stop == StopMaxTokens {
			return nil, &Error{Kind: KindTruncated, Content: content, Err: err}
		}
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
