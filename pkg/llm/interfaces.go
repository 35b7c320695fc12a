// Package llm provides provider-agnostic LLM client functionality for the
// relationship refinement pass and the analyst layer.
package llm

import "context"

// Client defines the interface for LLM text generation.
// Use this interface for dependency injection to enable mocking in tests.
type Client interface {
	// GenerateResponse generates a chat completion for the given prompt.
	GenerateResponse(ctx context.Context, prompt, systemMessage string, temperature float64) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}
