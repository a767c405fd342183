package repositories

import (
	"context"
	"time"

	"github.com/zenerp/erp_backend/internal/core/domain"
)

// ExpenseListFilter narrows expense listings.
type ExpenseListFilter struct {
	Status   domain.ExpenseStatus // empty means all
	VendorID string
	Search   string
}

// ExpenseRepositoryFacade defines persistence operations for expenses and
// their categories.
type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]domain.Expense, error)
	ListExpensesByDateRange(ctx context.Context, from, to time.Time) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	FindCategoryByName(ctx context.Context, name string) (*domain.ExpenseCategory, error)
	ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error)
}
