// Package mockai provides deterministic in-process AI providers for local
// runs and tests. No network, no API keys.
package mockai

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/wayfare-ai/concierge/internal/domain"
)

// DefaultDimensions is the vector size used when none is configured.
const DefaultDimensions = 64

// Embedder produces deterministic vectors by hashing tokens into a fixed
// number of buckets. The same text always maps to the same vector, which
// keeps retrieval ranking reproducible.
type Embedder struct {
	dimensions int
}

// NewEmbedder creates a mock embedder. dimensions <= 0 falls back to
// DefaultDimensions.
func NewEmbedder(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Embedder{dimensions: dimensions}
}

// Embed implements domain.Embedder.
func (e *Embedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec := make([]float32, e.dimensions)

	tokens := strings.Fields(strings.ToLower(text))
	for _, tok := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[int(h.Sum32())%e.dimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := 1 / math.Sqrt(norm)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) * inv)
		}
	}

	return domain.EmbeddingResult{Embedding: vec}, nil
}

// HealthCheck always passes.
func (e *Embedder) HealthCheck(_ context.Context) error { return nil }

// Completer echoes a canned assistant response built from the prompt tail.
// It stands in for a real model so the pipeline stays exercisable offline.
type Completer struct{}

// NewCompleter creates a mock completer.
func NewCompleter() *Completer { return &Completer{} }

// Complete implements domain.Completer.
func (c *Completer) Complete(_ context.Context, prompt string) (string, error) {
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	instruction := lines[len(lines)-1]
	return "[Mock AI] " + instruction, nil
}

// HealthCheck always passes.
func (c *Completer) HealthCheck(_ context.Context) error { return nil }
