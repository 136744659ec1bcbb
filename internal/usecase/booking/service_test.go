package booking

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/wayfare-ai/concierge/internal/domain"
)

type mockRepo struct {
	saved   []domain.Booking
	saveErr error
	got     domain.Booking
	getErr  error
}

func (m *mockRepo) Save(_ context.Context, b domain.Booking) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, b)
	return nil
}

func (m *mockRepo) Get(_ context.Context, _ string) (domain.Booking, error) {
	return m.got, m.getErr
}

func validRequest() Request {
	return Request{
		Passengers: []domain.Passenger{{FirstName: "Maria", LastName: "Rossi"}},
		Segments:   []domain.Segment{{Origin: "TIA", Destination: "FCO", Date: "2026-10-01"}},
	}
}

func TestCreate_HappyPath(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, zap.NewNop())

	b, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.PNR != "PNRROS" {
		t.Errorf("expected PNR PNRROS, got %q", b.PNR)
	}
	if b.Reference != "SIMPNRROS" {
		t.Errorf("expected reference SIMPNRROS, got %q", b.Reference)
	}
	if b.Status != domain.BookingStatusConfirmed {
		t.Errorf("expected status CONFIRMED, got %q", b.Status)
	}
	if b.ID == "" {
		t.Error("expected a generated booking ID")
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected booking to be persisted, saved=%d", len(repo.saved))
	}
}

func TestCreate_MissingPassengersOrSegments(t *testing.T) {
	svc := New(&mockRepo{}, zap.NewNop())
	ctx := context.Background()

	req := validRequest()
	req.Passengers = nil
	if _, err := svc.Create(ctx, req); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for missing passengers, got %v", err)
	}

	req = validRequest()
	req.Segments = nil
	if _, err := svc.Create(ctx, req); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for missing segments, got %v", err)
	}
}

func TestCreate_PNRFallbacks(t *testing.T) {
	cases := []struct {
		lastName string
		wantPNR  string
	}{
		{"Rossi", "PNRROS"},
		{"Li", "PNRLI"},
		{"", "PNRXXX"},
		{"  ", "PNRXXX"},
		{"de la Cruz", "PNRDE "},
	}
	for _, tc := range cases {
		repo := &mockRepo{}
		svc := New(repo, zap.NewNop())
		req := validRequest()
		req.Passengers[0].LastName = tc.lastName

		b, err := svc.Create(context.Background(), req)
		if err != nil {
			t.Fatalf("Create(%q): %v", tc.lastName, err)
		}
		if b.PNR != tc.wantPNR {
			t.Errorf("lastName %q: expected PNR %q, got %q", tc.lastName, tc.wantPNR, b.PNR)
		}
	}
}

func TestCreate_SaveFailure(t *testing.T) {
	svc := New(&mockRepo{saveErr: errors.New("store down")}, zap.NewNop())

	if _, err := svc.Create(context.Background(), validRequest()); err == nil {
		t.Fatal("expected error when persistence fails")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := New(&mockRepo{getErr: domain.ErrNotFound}, zap.NewNop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
