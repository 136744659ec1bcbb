// Package retrieval implements linear nearest-neighbor lookup over the
// in-memory corpus.
package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/wayfare-ai/concierge/internal/domain"
	"github.com/wayfare-ai/concierge/internal/repository/corpus"
)

// Service indexes documents and retrieves the top-K most similar ones for a
// query. The similarity strategy lives entirely in the injected Embedder:
// given a deterministic embedder, retrieval is deterministic.
type Service struct {
	corpus Corpus
	embed  Embedder
}

// New creates a retrieval service.
func New(c Corpus, embed Embedder) *Service {
	return &Service{corpus: c, embed: embed}
}

// Index vectorizes docs and appends them to the corpus in order. Cumulative
// across calls; the whole batch becomes visible atomically. No-op on empty
// input.
func (s *Service) Index(ctx context.Context, docs []string) error {
	if len(docs) == 0 {
		return nil
	}

	entries := make([]corpus.Entry, len(docs))
	for i, doc := range docs {
		res, err := s.embed.Embed(ctx, doc)
		if err != nil {
			return fmt.Errorf("vectorize document [%d]: %w", i, err)
		}
		entries[i] = corpus.Entry{Text: doc, Vector: res.Embedding}
	}

	s.corpus.Append(entries)
	return nil
}

// Retrieve returns at most topK documents ranked by cosine similarity to the
// query, ties broken by insertion order. Empty corpus or topK == 0 yields an
// empty result; topK < 0 is an invalid argument.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) ([]string, error) {
	if topK < 0 {
		return nil, fmt.Errorf("%w: top_k must be non-negative, got %d", domain.ErrInvalidArgument, topK)
	}

	snap := s.corpus.Snapshot()
	if len(snap) == 0 || topK == 0 {
		return nil, nil
	}

	res, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	order := make([]int, len(snap))
	scores := make([]float64, len(snap))
	for i := range snap {
		order[i] = i
		scores[i] = cosine(res.Embedding, snap[i].Vector)
	}
	// SliceStable keeps insertion order for equal scores.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}
	docs := make([]string, topK)
	for i := 0; i < topK; i++ {
		docs[i] = snap[order[i]].Text
	}
	return docs, nil
}

// cosine computes cosine similarity. Mismatched dimensions or zero-norm
// vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
