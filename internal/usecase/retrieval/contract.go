package retrieval

import (
	"context"

	"github.com/wayfare-ai/concierge/internal/domain"
	"github.com/wayfare-ai/concierge/internal/repository/corpus"
)

// Corpus is the append-only document store consumed by the retriever.
type Corpus interface {
	Append(entries []corpus.Entry)
	Snapshot() []corpus.Entry
}

// Embedder vectorizes text into a fixed-size numeric representation.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
