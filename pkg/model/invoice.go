package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID       string          `json:"id"`
	Number   string          `json:"number"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"` // "unpaid", "paid" or "refunded"
	PaidAt   *time.Time      `json:"paid_at,omitempty"`
}

// PaymentRequest asks the workshop API to create a payment against an
// appointment's invoice. Gateway details live upstream.
type PaymentRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required"`
	Method        string `json:"method" validate:"required,oneof=card cash transfer"`
}

type PaymentResult struct {
	InvoiceID  string          `json:"invoice_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	ReceiptURL string          `json:"receipt_url,omitempty"`
}
