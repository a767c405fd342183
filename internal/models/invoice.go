package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenerp/erp_backend/internal/core/domain"
)

// Invoice represents an invoice row. Items serialize to a jsonb column.
type Invoice struct {
	InvoiceID     string               `db:"invoice_id"`
	Number        string               `db:"number"`
	Customer      string               `db:"customer"`
	CustomerGSTIN string               `db:"customer_gstin"`
	Amount        decimal.Decimal      `db:"amount"`
	AmountPaid    decimal.Decimal      `db:"amount_paid"`
	Status        string               `db:"status"`
	DueDate       time.Time            `db:"due_date"`
	Source        string               `db:"source"`
	Items         []domain.InvoiceItem `db:"items"`
	AuditFields
}

// Payment represents a payment row.
type Payment struct {
	PaymentID    string          `db:"payment_id"`
	InvoiceID    string          `db:"invoice_id"`
	PaymentDate  time.Time       `db:"payment_date"`
	Amount       decimal.Decimal `db:"amount"`
	Method       string          `db:"method"`
	Status       string          `db:"status"`
	IsReconciled bool            `db:"is_reconciled"`
	JournalID    string          `db:"journal_id"`
	AuditFields
}
