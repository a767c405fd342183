package services

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses.
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves a specific expense.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the filter.
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)

	// ListCategories retrieves the expense category registry.
	ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error)
}

// ExpenseWriterSvc defines write operations for expenses.
type ExpenseWriterSvc interface {
	// CreateExpense persists a new expense, deriving GST from the category
	// rate when the caller does not supply the tax amounts.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// UpdateExpense updates mutable expense fields.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// ApproveExpense moves a pending expense to approved. Approving an
	// already-approved expense is a no-op; a rejected one is a conflict.
	ApproveExpense(ctx context.Context, expenseID string, approver string, requestingUserID string) (*domain.Expense, error)

	// RejectExpense moves a pending expense to rejected with a reason.
	RejectExpense(ctx context.Context, expenseID string, reason string, requestingUserID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
