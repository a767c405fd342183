package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// InvoiceSource records which channel created the invoice.
type InvoiceSource string

const (
	SourceAccounting InvoiceSource = "accounting"
	SourcePOS        InvoiceSource = "pos"
)

// InvoiceItem is a single sale line on an invoice.
type InvoiceItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Invoice represents a receivable. AmountPaid never exceeds Amount; Status is
// always the pure function of (AmountPaid, Amount, DueDate) computed by
// DeriveInvoiceStatus. Invoices are never hard-deleted.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	Number        string          `json:"number"`
	Customer      string          `json:"customer"`
	CustomerGSTIN string          `json:"customerGstin,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Status        InvoiceStatus   `json:"status"`
	DueDate       time.Time       `json:"dueDate"`
	Source        InvoiceSource   `json:"source"`
	Items         []InvoiceItem   `json:"items,omitempty"`
	AuditFields
}

// DeriveInvoiceStatus computes the invoice status from its paid amount and due
// date. Paid wins over overdue; a partially paid invoice stays partial even
// past its due date, matching the reconciliation rules.
func DeriveInvoiceStatus(amount, amountPaid decimal.Decimal, dueDate time.Time, now time.Time) InvoiceStatus {
	if amountPaid.GreaterThanOrEqual(amount) {
		return InvoicePaid
	}
	if amountPaid.GreaterThan(decimal.Zero) {
		return InvoicePartial
	}
	if now.After(dueDate) {
		return InvoiceOverdue
	}
	return InvoicePending
}
