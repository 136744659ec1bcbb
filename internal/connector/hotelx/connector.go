// Package hotelx provides the hotel inventory connector. Simulated offers
// for now; a channel-manager integration would replace only this package.
package hotelx

import (
	"context"

	"go.uber.org/zap"

	"github.com/wayfare-ai/concierge/internal/domain"
)

// Connector searches hotel offers for a free-text query.
type Connector struct {
	logger *zap.Logger
}

// NewConnector creates a hotel connector.
func NewConnector(logger *zap.Logger) *Connector {
	return &Connector{logger: logger}
}

// SearchHotels returns hotel offers for the query.
func (c *Connector) SearchHotels(ctx context.Context, query string) ([]domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Debug("hotel search", zap.Int("query_len", len(query)))

	return []domain.Offer{
		{
			Provider: "HotelX",
			Price:    120.0,
			Currency: "EUR",
			Details:  map[string]string{"name": "Hotel X Plaza", "stars": "4", "address": "Center"},
		},
		{
			Provider: "Booking-Stub",
			Price:    95.0,
			Currency: "EUR",
			Details:  map[string]string{"name": "City Budget", "stars": "3", "address": "Near station"},
		},
	}, nil
}
