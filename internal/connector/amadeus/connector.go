// Package amadeus provides the flight inventory connector. The current
// implementation returns simulated offers shaped like real GDS responses;
// swapping in live Amadeus calls only touches this package.
package amadeus

import (
	"context"

	"go.uber.org/zap"

	"github.com/wayfare-ai/concierge/internal/domain"
)

// defaultRoute is used when the query carries no recognizable IATA pair.
const defaultRoute = "TIA-FCO"

// Connector searches flight offers for a free-text query.
type Connector struct {
	logger *zap.Logger
}

// NewConnector creates a flight connector.
func NewConnector(logger *zap.Logger) *Connector {
	return &Connector{logger: logger}
}

// SearchFlights returns flight offers for the query. The route of the first
// offer echoes the IATA codes parsed from the query text.
func (c *Connector) SearchFlights(ctx context.Context, query string) ([]domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	route := defaultRoute
	if codes := ExtractAirportCodes(query); len(codes) >= 2 {
		route = codes[0] + "-" + codes[1]
	}

	c.logger.Debug("flight search", zap.String("route", route))

	return []domain.Offer{
		{
			Provider: "Amadeus-EXAMPLE",
			Price:    420.0,
			Currency: "EUR",
			Details:  map[string]string{"route": route, "class": "Y", "fare": "Q"},
		},
		{
			Provider: "NDC-Partner",
			Price:    510.0,
			Currency: "EUR",
			Details:  map[string]string{"route": "TIA-FRA", "class": "B", "fare": "M"},
		},
	}, nil
}
