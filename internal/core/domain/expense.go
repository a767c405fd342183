package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the approval state of an expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// ExpensePaymentStatus tracks settlement independently of approval.
type ExpensePaymentStatus string

const (
	ExpenseUnpaid     ExpensePaymentStatus = "unpaid"
	ExpensePaid       ExpensePaymentStatus = "paid"
	ExpenseReimbursed ExpensePaymentStatus = "reimbursed"
)

// ExpenseCategory carries the GST rate used to derive tax on expenses.
type ExpenseCategory struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Type       string          `json:"type"` // operating, hr, admin, marketing
	GSTRate    decimal.Decimal `json:"gstRate"`
	AuditFields
}

// Expense is a vendor or internal expense. Invariant: TotalAmount equals
// Amount + GSTAmount whenever GSTAmount was derived from the category rate.
type Expense struct {
	ExpenseID       string               `json:"expenseID"`
	Description     string               `json:"description"`
	Amount          decimal.Decimal      `json:"amount"`
	GSTAmount       decimal.Decimal      `json:"gstAmount"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	Category        string               `json:"category"`
	VendorID        string               `json:"vendorID,omitempty"`
	Status          ExpenseStatus        `json:"status"`
	PaymentStatus   ExpensePaymentStatus `json:"paymentStatus"`
	ApprovedBy      string               `json:"approvedBy,omitempty"`
	ApprovalDate    *time.Time           `json:"approvalDate,omitempty"`
	RejectionReason string               `json:"rejectionReason,omitempty"`
	AuditFields
}
