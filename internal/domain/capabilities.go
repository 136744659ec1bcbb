package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
// Implementations must be deterministic for the retriever ranking to be stable.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Completer is the text-completion capability consumed by the composer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HealthChecker verifies external provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CompletionUnavailableMessage is the fixed response returned when the
// completion capability is missing or erroring. The pipeline degrades to this
// string instead of failing the request.
const CompletionUnavailableMessage = "completion service unavailable"
