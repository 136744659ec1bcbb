// Package expense builds expense reports: it sums submitted items and
// renders CSV and PDF documents for download.
package expense

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/wayfare-ai/concierge/internal/domain"
)

// DefaultCurrency is assumed when a request omits the currency.
const DefaultCurrency = "EUR"

// Item is a single expense line.
type Item struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Request carries one expense report submission.
type Request struct {
	EmployeeID string `json:"employee_id"`
	Items      []Item `json:"items"`
	Currency   string `json:"currency"`
}

// Report is the rendered result. CSV and PDF are base64-encoded documents.
type Report struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	CSV      string  `json:"csv"`
	PDF      string  `json:"pdf"`
}

// Service renders expense reports.
type Service struct {
	logger *zap.Logger
}

// New creates an expense service.
func New(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// GenerateReport sums the items and renders both document formats. An empty
// item list yields a zero-total report, not an error.
func (s *Service) GenerateReport(req Request) (Report, error) {
	if req.EmployeeID == "" {
		return Report{}, fmt.Errorf("%w: employee_id is required", domain.ErrInvalidArgument)
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	var total float64
	for _, it := range req.Items {
		total += it.Amount
	}

	csvDoc, err := renderCSV(req.Items)
	if err != nil {
		return Report{}, fmt.Errorf("render csv: %w", err)
	}

	pdfDoc, err := renderPDF(req.EmployeeID, req.Items, total, currency)
	if err != nil {
		return Report{}, fmt.Errorf("render pdf: %w", err)
	}

	s.logger.Info("expense report generated",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("items", len(req.Items)),
		zap.Float64("total", total),
	)

	return Report{
		Total:    total,
		Currency: currency,
		CSV:      base64.StdEncoding.EncodeToString(csvDoc),
		PDF:      base64.StdEncoding.EncodeToString(pdfDoc),
	}, nil
}

func renderCSV(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"description", "amount"}); err != nil {
		return nil, err
	}
	for _, it := range items {
		row := []string{it.Description, strconv.FormatFloat(it.Amount, 'f', 2, 64)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(employeeID string, items []Item, total float64, currency string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	pdf.Cell(0, 10, "Expense report - "+employeeID)
	pdf.Ln(10)

	for _, it := range items {
		line := fmt.Sprintf("%s  %s %s", it.Description, strconv.FormatFloat(it.Amount, 'f', 2, 64), currency)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %s %s", strconv.FormatFloat(total, 'f', 2, 64), currency))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
