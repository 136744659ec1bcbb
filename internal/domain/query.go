package domain

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wayfare-ai/concierge/internal/domain/intent"
)

// DefaultRole is assumed when a request omits the caller role.
const DefaultRole = "user"

// Query is a single user request. Immutable for the lifetime of the request.
type Query struct {
	Text string
	Role string
}

// NewQuery builds a Query, filling in the default role.
func NewQuery(text, role string) Query {
	if role == "" {
		role = DefaultRole
	}
	return Query{Text: text, Role: role}
}

// Trimmed returns the query text with surrounding whitespace removed.
func (q Query) Trimmed() string { return strings.TrimSpace(q.Text) }

// Offer is a single travel offer produced by a domain connector.
type Offer struct {
	Provider string            `json:"provider"`
	Price    float64           `json:"price"`
	Currency string            `json:"currency"`
	Details  map[string]string `json:"details,omitempty"`
}

// Render formats an offer as a single prompt line.
func (o Offer) Render() string {
	var b strings.Builder
	b.WriteString(o.Provider)
	b.WriteString(": ")
	b.WriteString(strconv.FormatFloat(o.Price, 'f', 2, 64))
	b.WriteString(" ")
	b.WriteString(o.Currency)
	if len(o.Details) > 0 {
		keys := make([]string, 0, len(o.Details))
		for k := range o.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(", ")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(o.Details[k])
		}
	}
	return b.String()
}

// Answer is the composed result of one handled query.
type Answer struct {
	Intent   intent.Intent  `json:"intent"`
	Response string         `json:"response"`
	Extra    map[string]any `json:"extra"`
}
