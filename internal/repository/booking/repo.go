// Package booking persists booking records in the key-value store.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wayfare-ai/concierge/internal/db"
	"github.com/wayfare-ai/concierge/internal/domain"
)

const keyPrefix = "concierge:booking:"

// store is the consumer interface for booking persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo stores bookings as JSON blobs keyed by booking ID.
type Repo struct {
	store store
}

// New creates a booking repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save persists a booking.
func (r *Repo) Save(ctx context.Context, b domain.Booking) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal booking %s: %w", b.ID, err)
	}
	if err := r.store.Set(ctx, keyPrefix+b.ID, data); err != nil {
		return fmt.Errorf("%w: save booking %s: %w", domain.ErrStoreUnavailable, b.ID, err)
	}
	return nil
}

// Get loads a booking by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Booking, error) {
	data, err := r.store.Get(ctx, keyPrefix+id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Booking{}, fmt.Errorf("%w: booking %s", domain.ErrNotFound, id)
		}
		return domain.Booking{}, fmt.Errorf("%w: load booking %s: %w", domain.ErrStoreUnavailable, id, err)
	}

	var b domain.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return domain.Booking{}, fmt.Errorf("unmarshal booking %s: %w", id, err)
	}
	return b, nil
}
