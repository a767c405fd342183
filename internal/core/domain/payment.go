package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the state of a recorded payment.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment is money received against an invoice. Payments are immutable once
// recorded; IsReconciled is the only planned mutation point.
type Payment struct {
	PaymentID    string          `json:"paymentID"`
	InvoiceID    string          `json:"invoiceID"`
	PaymentDate  time.Time       `json:"paymentDate"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"` // e.g. bank transfer, card, cash
	Status       PaymentStatus   `json:"status"`
	IsReconciled bool            `json:"isReconciled"`
	JournalID    string          `json:"journalID"` // journal entry posted for this payment
	AuditFields
}
