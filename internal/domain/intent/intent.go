// Package intent classifies free-text travel queries into a closed label set.
package intent

import "strings"

// Intent is the closed-set classification of a user query. It determines
// which downstream handling path the pipeline takes.
type Intent string

const (
	// SearchFlights routes to the flight connector.
	SearchFlights Intent = "search_flights"
	// SearchHotels routes to the hotel connector.
	SearchHotels Intent = "search_hotels"
	// Expense routes to expense guidance.
	Expense Intent = "expense"
	// PlanItinerary routes to itinerary planning.
	PlanItinerary Intent = "plan_itinerary"
	// Chat is the fallback for everything else, including empty input.
	Chat Intent = "chat"
)

// String implements fmt.Stringer.
func (i Intent) String() string { return string(i) }

// rule binds an intent to its trigger keywords. Rules are evaluated in slice
// order; the first keyword hit wins, so earlier intents shadow later ones
// ("flight to a hotel" is a flight query).
type rule struct {
	intent   Intent
	keywords []string
}

var rules = []rule{
	{SearchFlights, []string{"flight", "fly", "ticket", "airline", "departure", "pnr"}},
	{SearchHotels, []string{"hotel", "room", "stay", "accommodation"}},
	{Expense, []string{"expense", "receipt", "report", "claim"}},
	{PlanItinerary, []string{"itinerary", "plan trip", "create trip"}},
}

// Classify maps raw query text to an Intent. Pure and total: every input,
// including the empty string, yields a valid Intent.
func Classify(text string) Intent {
	t := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.intent
			}
		}
	}
	return Chat
}
