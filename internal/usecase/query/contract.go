package query

import (
	"context"

	"github.com/wayfare-ai/concierge/internal/domain"
	"github.com/wayfare-ai/concierge/internal/usecase/compose"
)

// Retriever returns the top-K context documents for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]string, error)
}

// Composer produces the final natural-language answer. Never fails; degraded
// results are encoded in the returned string.
type Composer interface {
	Compose(ctx context.Context, in compose.Input) string
}

// FlightSearcher is the flight inventory connector.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, query string) ([]domain.Offer, error)
}

// HotelSearcher is the hotel inventory connector.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, query string) ([]domain.Offer, error)
}
