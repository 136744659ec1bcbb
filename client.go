// Package concierge provides a small HTTP client for the concierge API.
package concierge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is the concierge API client.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil || baseURL == "" {
		return nil, fmt.Errorf("concierge: invalid base URL %q", baseURL)
	}
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// APIError is a non-2xx response decoded from the API error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("concierge: api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// QueryRequest is one chat query.
type QueryRequest struct {
	Query string `json:"query"`
	Role  string `json:"role,omitempty"`
}

// Offer is a priced travel option.
type Offer struct {
	Provider string            `json:"provider"`
	Price    float64           `json:"price"`
	Currency string            `json:"currency"`
	Details  map[string]string `json:"details,omitempty"`
}

// Answer is the pipeline result for one query.
type Answer struct {
	Intent   string         `json:"intent"`
	Response string         `json:"response"`
	Extra    map[string]any `json:"extra"`
}

// Query sends a chat query through the pipeline.
func (c *Client) Query(ctx context.Context, req QueryRequest) (Answer, error) {
	var out Answer
	err := c.do(ctx, http.MethodPost, "/query", req, &out)
	return out, err
}

// Passenger is one traveler on a booking.
type Passenger struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Segment is one leg of a trip.
type Segment struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

// BookingRequest creates a booking.
type BookingRequest struct {
	Passengers []Passenger `json:"passengers"`
	Segments   []Segment   `json:"segments"`
}

// Booking is a stored reservation.
type Booking struct {
	ID         string      `json:"id"`
	PNR        string      `json:"pnr"`
	Reference  string      `json:"booking_ref"`
	Status     string      `json:"status"`
	Passengers []Passenger `json:"passengers"`
	Segments   []Segment   `json:"segments"`
	CreatedAt  time.Time   `json:"created_at"`
}

// CreateBooking creates a booking.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (Booking, error) {
	var out Booking
	err := c.do(ctx, http.MethodPost, "/booking", req, &out)
	return out, err
}

// GetBooking loads a booking by ID.
func (c *Client) GetBooking(ctx context.Context, id string) (Booking, error) {
	var out Booking
	err := c.do(ctx, http.MethodGet, "/booking/"+url.PathEscape(id), nil, &out)
	return out, err
}

// ExpenseItem is a single expense line.
type ExpenseItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ExpenseRequest submits an expense report.
type ExpenseRequest struct {
	EmployeeID string        `json:"employee_id"`
	Items      []ExpenseItem `json:"items"`
	Currency   string        `json:"currency,omitempty"`
}

// ExpenseReport is the rendered report. CSV and PDF are base64-encoded.
type ExpenseReport struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	CSV      string  `json:"csv"`
	PDF      string  `json:"pdf"`
}

// SubmitExpense renders an expense report.
func (c *Client) SubmitExpense(ctx context.Context, req ExpenseRequest) (ExpenseReport, error) {
	var out ExpenseReport
	err := c.do(ctx, http.MethodPost, "/expense", req, &out)
	return out, err
}

// Health is the aggregated health report.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// GetHealth reads the health endpoint.
func (c *Client) GetHealth(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("concierge: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("concierge: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("concierge: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("concierge: decode response: %w", err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		apiErr.Code = "unknown"
		apiErr.Message = resp.Status
		return apiErr
	}
	apiErr.Code = body.Code
	apiErr.Message = body.Message
	return apiErr
}

// IsNotFound reports whether err is a 404 API error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
