package domain

import "errors"

var (
	// ErrInvalidArgument signals a request the caller can fix (empty query, negative top_k).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrConnectorFailure signals a domain connector (flights/hotels) failure.
	ErrConnectorFailure = errors.New("connector failure")
	// ErrCompletionUnavailable signals a missing or failing completion backend.
	// Recovered by the composer; never surfaced to transport.
	ErrCompletionUnavailable = errors.New("completion unavailable")
	// ErrStoreUnavailable signals a key-value store failure.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEmbeddingProvider signals an embedding backend failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
)
