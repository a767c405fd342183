package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// CreateExpenseRequest defines the payload for creating an expense. GSTAmount
// and TotalAmount are optional: when absent and the category has a known GST
// rate, both are derived server-side.
type CreateExpenseRequest struct {
	Description string           `json:"description" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required,dgt0"`
	Category    string           `json:"category" binding:"required"`
	VendorID    string           `json:"vendorID"`
	GSTAmount   *decimal.Decimal `json:"gstAmount,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
}

// UpdateExpenseRequest defines the mutable expense fields.
type UpdateExpenseRequest struct {
	Description   *string                      `json:"description,omitempty"`
	PaymentStatus *domain.ExpensePaymentStatus `json:"paymentStatus,omitempty"`
}

// ApproveExpenseRequest carries the approver identity.
type ApproveExpenseRequest struct {
	Approver string `json:"approver" binding:"required"`
}

// RejectExpenseRequest carries the rejection reason.
type RejectExpenseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListExpensesParams holds query parameters for listing expenses.
type ListExpensesParams struct {
	Status   string `form:"status"`
	VendorID string `form:"vendorID"`
	Search   string `form:"search"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID       string                      `json:"expenseID"`
	Description     string                      `json:"description"`
	Amount          decimal.Decimal             `json:"amount"`
	GSTAmount       decimal.Decimal             `json:"gstAmount"`
	TotalAmount     decimal.Decimal             `json:"totalAmount"`
	Category        string                      `json:"category"`
	VendorID        string                      `json:"vendorID,omitempty"`
	Status          domain.ExpenseStatus        `json:"status"`
	PaymentStatus   domain.ExpensePaymentStatus `json:"paymentStatus"`
	ApprovedBy      string                      `json:"approvedBy,omitempty"`
	ApprovalDate    *time.Time                  `json:"approvalDate,omitempty"`
	RejectionReason string                      `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time                   `json:"createdAt"`
}

// ExpenseCategoryResponse defines the data returned for an expense category.
type ExpenseCategoryResponse struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	GSTRate    decimal.Decimal `json:"gstRate"`
}

// ToExpenseResponse converts a domain.Expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		Description:     e.Description,
		Amount:          e.Amount,
		GSTAmount:       e.GSTAmount,
		TotalAmount:     e.TotalAmount,
		Category:        e.Category,
		VendorID:        e.VendorID,
		Status:          e.Status,
		PaymentStatus:   e.PaymentStatus,
		ApprovedBy:      e.ApprovedBy,
		ApprovalDate:    e.ApprovalDate,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// ToExpenseCategoryResponses converts a slice of categories.
func ToExpenseCategoryResponses(categories []domain.ExpenseCategory) []ExpenseCategoryResponse {
	responses := make([]ExpenseCategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ExpenseCategoryResponse{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Type:       c.Type,
			GSTRate:    c.GSTRate,
		}
	}
	return responses
}
