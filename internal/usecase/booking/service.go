// Package booking implements the simulated booking flow. Replacing the
// fabricated PNR with real GDS/NDC record creation is the intended extension
// point.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wayfare-ai/concierge/internal/domain"
)

// Request carries the data needed to create a booking.
type Request struct {
	Passengers []domain.Passenger
	Segments   []domain.Segment
}

// Service creates and retrieves bookings.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates a booking service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create validates the request, fabricates a PNR from the lead passenger's
// last name, and persists the booking.
func (s *Service) Create(ctx context.Context, req Request) (domain.Booking, error) {
	if len(req.Passengers) == 0 || len(req.Segments) == 0 {
		return domain.Booking{}, fmt.Errorf("%w: missing passengers or segments", domain.ErrInvalidArgument)
	}

	pnr := pnrFor(req.Passengers[0])
	b := domain.Booking{
		ID:         uuid.NewString(),
		PNR:        pnr,
		Reference:  "SIM" + pnr,
		Status:     domain.BookingStatusConfirmed,
		Passengers: req.Passengers,
		Segments:   req.Segments,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return domain.Booking{}, fmt.Errorf("save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("pnr", b.PNR),
		zap.Int("segments", len(b.Segments)),
	)
	return b, nil
}

// Get loads a booking by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// pnrFor builds a record locator from the lead passenger's last-name prefix,
// "PNRXXX" when the name is absent.
func pnrFor(p domain.Passenger) string {
	last := strings.ToUpper(strings.TrimSpace(p.LastName))
	if last == "" {
		return "PNRXXX"
	}
	if len(last) > 3 {
		last = last[:3]
	}
	return "PNR" + last
}
