package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory represents an expense category row.
type ExpenseCategory struct {
	CategoryID string          `db:"category_id"`
	Name       string          `db:"name"`
	Type       string          `db:"type"`
	GSTRate    decimal.Decimal `db:"gst_rate"`
	AuditFields
}

// Expense represents an expense row.
type Expense struct {
	ExpenseID       string          `db:"expense_id"`
	Description     string          `db:"description"`
	Amount          decimal.Decimal `db:"amount"`
	GSTAmount       decimal.Decimal `db:"gst_amount"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Category        string          `db:"category"`
	VendorID        string          `db:"vendor_id"`
	Status          string          `db:"status"`
	PaymentStatus   string          `db:"payment_status"`
	ApprovedBy      string          `db:"approved_by"`
	ApprovalDate    *time.Time      `db:"approval_date"`
	RejectionReason string          `db:"rejection_reason"`
	AuditFields
}
