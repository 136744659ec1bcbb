package veccache

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/wayfare-ai/concierge/internal/db"
	"github.com/wayfare-ai/concierge/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func TestEmbed_CacheMiss(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.1, 0.2, 0.3},
		PromptTokens: 10,
		TotalTokens:  10,
	}}
	ms := &mockKVStore{}
	var stored []byte
	ms.setFn = func(_ context.Context, _ string, value []byte) error {
		stored = value
		return nil
	}
	ce := New(inner, ms, nil, zap.NewNop())

	res, err := ce.Embed(context.Background(), "travel policy")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if res.TotalTokens != 10 {
		t.Errorf("expected inner token usage on miss, got %d", res.TotalTokens)
	}
	if inner.calls != 1 {
		t.Errorf("expected one inner call, got %d", inner.calls)
	}
	if len(stored) != 12 {
		t.Errorf("expected 12 cached bytes for 3 floats, got %d", len(stored))
	}
}

func TestEmbed_CacheHit(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1, 2}}}
	ms := &mockKVStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return vectorToCacheBytes([]float32{0.5, -0.25}), nil
		},
	}
	ce := New(inner, ms, nil, zap.NewNop())

	res, err := ce.Embed(context.Background(), "travel policy")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("inner embedder should not be called on hit, calls=%d", inner.calls)
	}
	if len(res.Embedding) != 2 || res.Embedding[0] != 0.5 || res.Embedding[1] != -0.25 {
		t.Errorf("unexpected cached vector: %v", res.Embedding)
	}
	if res.TotalTokens != 0 {
		t.Errorf("cache hit must report zero tokens, got %d", res.TotalTokens)
	}
}

func TestEmbed_CorruptCacheFallsThrough(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ms := &mockKVStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte{0x01, 0x02, 0x03}, nil
		},
	}
	ce := New(inner, ms, nil, zap.NewNop())

	res, err := ce.Embed(context.Background(), "x")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected fallthrough to inner embedder, calls=%d", inner.calls)
	}
	if len(res.Embedding) != 1 {
		t.Errorf("unexpected result: %v", res.Embedding)
	}
}

func TestEmbed_StoreErrorsAreNonFatal(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ms := &mockKVStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, errors.New("store down")
		},
		setFn: func(_ context.Context, _ string, _ []byte) error {
			return errors.New("store down")
		},
	}
	ce := New(inner, ms, nil, zap.NewNop())

	if _, err := ce.Embed(context.Background(), "x"); err != nil {
		t.Fatalf("store failures must not fail Embed: %v", err)
	}
}

func TestEmbed_InnerError(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("vectorizer down")}
	ce := New(inner, &mockKVStore{}, nil, zap.NewNop())

	if _, err := ce.Embed(context.Background(), "x"); err == nil {
		t.Fatal("expected error from inner embedder")
	}
}

func TestVectorCodec_RoundTrip(t *testing.T) {
	in := []float32{0, 1.5, -3.25, 42}
	out, err := bytesToVector(vectorToCacheBytes(in))
	if err != nil {
		t.Fatalf("bytesToVector: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("length mismatch: %d vs %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("index %d: %v != %v", i, in[i], out[i])
		}
	}
}
