// Package query orchestrates the request pipeline: classify, retrieve
// context, fetch domain data, compose the answer.
package query

import (
	"context"
	"fmt"

	"github.com/wayfare-ai/concierge/internal/domain"
	"github.com/wayfare-ai/concierge/internal/domain/intent"
	"github.com/wayfare-ai/concierge/internal/usecase/compose"
)

const defaultContextTopK = 3

// expenseNote points expense queries at the dedicated report endpoint.
const expenseNote = "Use the /expense endpoint for full expense report upload."

// Service handles one query end to end. All collaborators are injected; the
// service holds no mutable state and is safe for concurrent use.
type Service struct {
	retriever Retriever
	composer  Composer
	flights   FlightSearcher
	hotels    HotelSearcher
	classify  func(string) intent.Intent
	topK      int
}

// New creates a query pipeline.
func New(retriever Retriever, composer Composer, flights FlightSearcher, hotels HotelSearcher) *Service {
	return &Service{
		retriever: retriever,
		composer:  composer,
		flights:   flights,
		hotels:    hotels,
		classify:  intent.Classify,
		topK:      defaultContextTopK,
	}
}

// WithTopK overrides the number of context documents retrieved per query.
func (s *Service) WithTopK(topK int) *Service {
	if topK > 0 {
		s.topK = topK
	}
	return s
}

// Handle runs the pipeline for one query. Connector failures fail the whole
// request (domain data is load-bearing for those intents); completion
// failures degrade inside the composer and never surface here.
func (s *Service) Handle(ctx context.Context, q domain.Query) (domain.Answer, error) {
	if q.Trimmed() == "" {
		return domain.Answer{}, fmt.Errorf("%w: empty query", domain.ErrInvalidArgument)
	}

	role := q.Role
	if role == "" {
		role = domain.DefaultRole
	}

	in := s.classify(q.Text)

	docs, err := s.retriever.Retrieve(ctx, q.Text, s.topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieve context: %w", err)
	}

	extra := make(map[string]any)
	var offers []domain.Offer

	switch in {
	case intent.SearchFlights:
		offers, err = s.flights.SearchFlights(ctx, q.Text)
		if err != nil {
			return domain.Answer{}, fmt.Errorf("%w: search flights: %w", domain.ErrConnectorFailure, err)
		}
		extra["flights"] = offers
	case intent.SearchHotels:
		offers, err = s.hotels.SearchHotels(ctx, q.Text)
		if err != nil {
			return domain.Answer{}, fmt.Errorf("%w: search hotels: %w", domain.ErrConnectorFailure, err)
		}
		extra["hotels"] = offers
	case intent.Expense:
		extra["note"] = expenseNote
	}

	response := s.composer.Compose(ctx, compose.Input{
		Intent:  in,
		Role:    role,
		Query:   q.Text,
		Context: docs,
		Offers:  offers,
	})

	return domain.Answer{Intent: in, Response: response, Extra: extra}, nil
}
