package llm

import (
	"context"
)

// LLMClient is the minimal surface the enrichment pipeline needs from a
// language model provider.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
