package expense

// ReceiptScan is the parsed content of a receipt image.
type ReceiptScan struct {
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

// ParseReceipt extracts an expense line from a receipt image. Mocked OCR:
// returns a canned scan regardless of input until a real OCR backend lands.
func (s *Service) ParseReceipt(_ []byte) ReceiptScan {
	return ReceiptScan{
		Date:        "2025-01-01",
		Type:        "Taxi",
		Amount:      18.5,
		Currency:    DefaultCurrency,
		Description: "Airport taxi",
	}
}
