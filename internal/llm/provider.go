// Package llm abstracts the narrative and question generators over
// interchangeable model providers (Gemini, OpenAI, Anthropic). Gemini
// is the default; the application degrades gracefully when no provider
// is configured at all.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single entry point for model interaction.
type Provider interface {
	// Generate sends a prompt and returns the model output. When the
	// request carries a Schema the provider uses its native structured
	// output mechanism and the response Content is the validated JSON;
	// otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes what to send to the model. Generation here is
// always single-turn.
type Request struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when set, constrains the response to JSON conforming to
	// the definition.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero means the
	// provider default.
	Temperature float64
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case (used as the OpenAI
	// schema name and for compile caching).
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is raw text, or validated JSON when a Schema was set.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Text returns the response content as a plain string.
func (r *Response) Text() string {
	return string(r.Content)
}
