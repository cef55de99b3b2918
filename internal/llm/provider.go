// Package llm wraps the hosted language-model APIs used to write
// personalised advice. Every provider returns JSON that has already been
// checked against the request's schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// When req.Schema is set the provider uses its native structured output
	// mechanism and Content is JSON that validates against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider name, e.g. "anthropic".
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Advice generation is single-turn, so
	// this usually holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil,
	// Content is the raw text response.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness in 0.0 - 1.0. Zero leaves the
	// provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema, kebab-case, e.g. "character-advice".
	// It doubles as the schema cache key.
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the validated JSON object when a Schema was set, or the
	// raw text response otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	StopReason StopReason
}

// StopReason is the provider's finish reason, normalized.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// complete turns a raw provider reply into a Response. A reply that hit
// MaxTokens while a schema was requested is KindTruncated; otherwise the
// content is checked against the schema.
func complete(provider string, req Request, content json.RawMessage, resp Response) (*Response, error) {
	resp.Content = content
	if resp.Usage.TotalTokens == 0 {
		resp.Usage.TotalTokens = resp.Usage.InputTokens + resp.Usage.OutputTokens
	}
	if req.Schema == nil {
		return &resp, nil
	}
	if resp.StopReason == StopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Provider: provider, Content: content}
	}
	if err := req.Schema.check(content); err != nil {
		return nil, &Error{Kind: KindInvalidOutput, Provider: provider, Content: content, Err: err}
	}
	return &resp, nil
}

// aliases maps short model names to the IDs each vendor expects. Names
// not listed are passed through unchanged.
var aliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"gemini-flash":  "gemini-2.0-flash",
	"gemini-pro":    "gemini-2.0-pro",
}

func modelID(name string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
