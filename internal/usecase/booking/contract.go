package booking

import (
	"context"

	"github.com/wayfare-ai/concierge/internal/domain"
)

// Repository persists and loads bookings.
type Repository interface {
	Save(ctx context.Context, b domain.Booking) error
	Get(ctx context.Context, id string) (domain.Booking, error)
}
