package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/wayfare-ai/concierge/internal/domain"
	"github.com/wayfare-ai/concierge/internal/repository/corpus"
)

// --- Mocks ---

// mockEmbedder maps known texts to fixed vectors.
type mockEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return domain.EmbeddingResult{Embedding: v}, nil
	}
	return domain.EmbeddingResult{Embedding: []float32{1, 0}}, nil
}

func newService(embed Embedder) (*Service, *corpus.Store) {
	store := corpus.NewStore()
	return New(store, embed), store
}

// --- Tests ---

func TestIndex_CumulativeAndOrderPreserving(t *testing.T) {
	svc, store := newService(&mockEmbedder{})
	ctx := context.Background()

	if err := svc.Index(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if err := svc.Index(ctx, []string{"c"}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	snap := store.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(snap))
	}
	for i, want := range []string{"a", "b", "c"} {
		if snap[i].Text != want {
			t.Errorf("entry[%d] = %q, want %q", i, snap[i].Text, want)
		}
	}
}

func TestIndex_EmptyIsNoop(t *testing.T) {
	embed := &mockEmbedder{}
	svc, store := newService(embed)

	if err := svc.Index(context.Background(), nil); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty corpus, got %d", store.Len())
	}
	if embed.calls != 0 {
		t.Errorf("embedder should not be called for empty input, got %d calls", embed.calls)
	}
}

func TestIndex_EmbedError(t *testing.T) {
	svc, store := newService(&mockEmbedder{err: errors.New("provider down")})

	if err := svc.Index(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected error from embedder failure")
	}
	if store.Len() != 0 {
		t.Errorf("failed batch must not be appended, got %d entries", store.Len())
	}
}

func TestRetrieve_RanksBySimilarity(t *testing.T) {
	embed := &mockEmbedder{vectors: map[string][]float32{
		"q":    {1, 0},
		"near": {0.9, 0.1},
		"far":  {0, 1},
		"mid":  {0.5, 0.5},
	}}
	svc, _ := newService(embed)
	ctx := context.Background()

	if err := svc.Index(ctx, []string{"far", "near", "mid"}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	docs, err := svc.Retrieve(ctx, "q", 3)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	want := []string{"near", "mid", "far"}
	if len(docs) != len(want) {
		t.Fatalf("expected %d docs, got %d", len(want), len(docs))
	}
	for i := range want {
		if docs[i] != want[i] {
			t.Errorf("docs[%d] = %q, want %q", i, docs[i], want[i])
		}
	}
}

func TestRetrieve_NeverExceedsTopKOrCorpusSize(t *testing.T) {
	svc, _ := newService(&mockEmbedder{})
	ctx := context.Background()

	if err := svc.Index(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	docs, err := svc.Retrieve(ctx, "q", 1)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("expected 1 doc with top_k=1, got %d", len(docs))
	}

	docs, err = svc.Retrieve(ctx, "q", 10)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected all 2 docs with top_k=10, got %d", len(docs))
	}
}

func TestRetrieve_EmptyCorpus(t *testing.T) {
	embed := &mockEmbedder{}
	svc, _ := newService(embed)

	docs, err := svc.Retrieve(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty result on empty corpus, got %d", len(docs))
	}
	if embed.calls != 0 {
		t.Errorf("query should not be vectorized for an empty corpus")
	}
}

func TestRetrieve_NegativeTopK(t *testing.T) {
	svc, _ := newService(&mockEmbedder{})

	_, err := svc.Retrieve(context.Background(), "q", -1)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRetrieve_ZeroTopK(t *testing.T) {
	svc, _ := newService(&mockEmbedder{})
	ctx := context.Background()
	_ = svc.Index(ctx, []string{"a"})

	docs, err := svc.Retrieve(ctx, "q", 0)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty result with top_k=0, got %d", len(docs))
	}
}

func TestRetrieve_TiesBrokenByInsertionOrder(t *testing.T) {
	// All documents share the same vector: identical scores, so ranking must
	// follow insertion order.
	embed := &mockEmbedder{vectors: map[string][]float32{}}
	svc, _ := newService(embed)
	ctx := context.Background()

	if err := svc.Index(ctx, []string{"first", "second", "third"}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	docs, err := svc.Retrieve(ctx, "q", 3)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if docs[i] != want[i] {
			t.Errorf("docs[%d] = %q, want %q (ties must keep insertion order)", i, docs[i], want[i])
		}
	}
}

func TestRetrieve_DoesNotMutateCorpus(t *testing.T) {
	svc, store := newService(&mockEmbedder{})
	ctx := context.Background()

	_ = svc.Index(ctx, []string{"a", "b", "c"})
	before := store.Len()

	for i := 0; i < 10; i++ {
		if _, err := svc.Retrieve(ctx, "q", 2); err != nil {
			t.Fatalf("Retrieve: %v", err)
		}
	}

	if store.Len() != before {
		t.Errorf("corpus size changed from %d to %d after retrieval", before, store.Len())
	}
	snap := store.Snapshot()
	for i, want := range []string{"a", "b", "c"} {
		if snap[i].Text != want {
			t.Errorf("entry[%d] = %q, want %q", i, snap[i].Text, want)
		}
	}
}

func TestRetrieve_EmbedError(t *testing.T) {
	embed := &mockEmbedder{}
	svc, _ := newService(embed)
	ctx := context.Background()
	_ = svc.Index(ctx, []string{"a"})

	embed.err = errors.New("provider down")
	if _, err := svc.Retrieve(ctx, "q", 3); err == nil {
		t.Fatal("expected error from embedder failure")
	}
}
