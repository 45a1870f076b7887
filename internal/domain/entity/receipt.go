package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the shop details printed at the top of a receipt
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Tagline   string `json:"tagline,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ReceiptLine is one order on a receipt
type ReceiptLine struct {
	Service         string          `json:"service"`
	Weight          decimal.Decimal `json:"weight"`
	Items           int             `json:"items"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	TransactionCode string          `json:"transaction_code,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// ReceiptCustomer is the customer block of a receipt
type ReceiptCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Receipt summarizes one customer's orders for a single date.
// It is composed at generation time and never stored.
type Receipt struct {
	Header     ReceiptHeader   `json:"header"`
	Number     string          `json:"receipt_number"`
	IssuedAt   time.Time       `json:"issued_at"`
	OrderDate  time.Time       `json:"order_date"`
	Customer   ReceiptCustomer `json:"customer"`
	Lines      []ReceiptLine   `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	GrandTotal decimal.Decimal `json:"total_amount"`
	Currency   string          `json:"currency"`
}

// ReceiptFile is the outcome of rendering a receipt to disk
type ReceiptFile struct {
	ReceiptNumber string          `json:"receiptNumber"`
	Filename      string          `json:"filename"`
	DownloadURL   string          `json:"downloadUrl"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	OrderCount    int             `json:"orderCount"`
}

// ReceiptHistoryEntry is a date for which a customer has orders
type ReceiptHistoryEntry struct {
	OrderDate   string          `json:"order_date"`
	OrderCount  int             `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
