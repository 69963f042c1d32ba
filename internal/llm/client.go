// Package llm sends rewrite prompts to a language model endpoint. The
// concrete client targets the OpenAI API or an Azure OpenAI deployment;
// calls go through an explicit retry policy at the call site.
package llm

import "context"

// Client is the interface for language model endpoints. Output is not
// idempotent: the same prompt may produce different completions.
type Client interface {
	// Rewrite sends a rendered prompt and returns the generated text.
	Rewrite(ctx context.Context, prompt string) (string, error)

	// Name returns a human-readable name for the endpoint.
	Name() string
}
