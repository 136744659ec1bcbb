// Package compose assembles the final prompt and asks the completion backend
// for a natural-language answer.
package compose

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wayfare-ai/concierge/internal/domain"
	"github.com/wayfare-ai/concierge/internal/domain/intent"
)

// Service builds one prompt per request and submits it to the completion
// backend. Failures degrade to a fixed sentinel string — composition never
// fails the request.
type Service struct {
	completer Completer
	logger    *zap.Logger
}

// New creates a composer. completer may be nil (capability absent).
func New(completer Completer, logger *zap.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// Input carries everything the composer embeds into the prompt.
type Input struct {
	Intent  intent.Intent
	Role    string
	Query   string
	Context []string
	Offers  []domain.Offer
}

// instructions are the per-intent prompt tails.
var instructions = map[intent.Intent]string{
	intent.SearchFlights: "Give a short summary.",
	intent.SearchHotels:  "Summarize nicely.",
	intent.Expense:       "Generate guidance for expense management or report submission.",
	intent.PlanItinerary: "Plan a trip outline with flights, hotels, and possible activities.",
	intent.Chat:          "Answer helpfully.",
}

// offerLabels name the domain-data section of the prompt.
var offerLabels = map[intent.Intent]string{
	intent.SearchFlights: "Flight options",
	intent.SearchHotels:  "Hotel options",
}

// Compose builds the prompt and returns the trimmed completion result. A nil
// or failing completer yields domain.CompletionUnavailableMessage.
func (s *Service) Compose(ctx context.Context, in Input) string {
	prompt := BuildPrompt(in)

	if s.completer == nil {
		return domain.CompletionUnavailableMessage
	}

	// Single attempt, no retries.
	out, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("completion failed, degrading to sentinel",
			zap.String("intent", in.Intent.String()),
			zap.Error(err),
		)
		return domain.CompletionUnavailableMessage
	}

	return strings.TrimSpace(out)
}

// BuildPrompt deterministically assembles the prompt text.
func BuildPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User role: %s\n", in.Role)
	fmt.Fprintf(&b, "Intent: %s\n", in.Intent)
	fmt.Fprintf(&b, "Query: %s\n", in.Query)

	b.WriteString("Context:\n")
	b.WriteString(strings.Join(in.Context, "\n"))
	b.WriteString("\n")

	if len(in.Offers) > 0 {
		label := offerLabels[in.Intent]
		if label == "" {
			label = "Options"
		}
		fmt.Fprintf(&b, "%s:\n", label)
		for _, o := range in.Offers {
			b.WriteString(o.Render())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(instructions[in.Intent])
	return b.String()
}
