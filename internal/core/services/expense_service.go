package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zenerp/erp_backend/internal/apperrors"
	"github.com/zenerp/erp_backend/internal/core/domain"
	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/dto"
	"github.com/zenerp/erp_backend/internal/middleware"
	"github.com/zenerp/erp_backend/internal/utils/accounting"
)

// expenseService owns expense capture and the approval workflow. GST is
// derived from the category's rate unless the caller supplies explicit tax
// amounts.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense persists a new pending expense. The category must exist in
// the registry; its GST rate drives the derived tax when the request carries
// no explicit amounts.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	category, err := s.expenseRepo.FindCategoryByName(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve expense category %q: %w", req.Category, err)
	}

	amount := accounting.Round2(req.Amount)
	var gstAmount decimal.Decimal
	if req.GSTAmount != nil {
		gstAmount = accounting.Round2(*req.GSTAmount)
	} else {
		gstAmount = accounting.Round2(amount.Mul(category.GSTRate).Div(decimal.NewFromInt(100)))
	}
	var totalAmount decimal.Decimal
	if req.TotalAmount != nil {
		totalAmount = accounting.Round2(*req.TotalAmount)
	} else {
		totalAmount = amount.Add(gstAmount)
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:     uuid.NewString(),
		Description:   req.Description,
		Amount:        amount,
		GSTAmount:     gstAmount,
		TotalAmount:   totalAmount,
		Category:      category.Name,
		VendorID:      req.VendorID,
		Status:        domain.ExpensePending,
		PaymentStatus: domain.ExpenseUnpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	logger.Info("Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("category", category.Name),
		slog.String("total", totalAmount.String()),
	)
	return &expense, nil
}

// GetExpenseByID retrieves a specific expense.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	return expense, nil
}

// ListExpenses retrieves expenses matching the filter.
func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	filter := portsrepo.ExpenseListFilter{
		Status:   domain.ExpenseStatus(params.Status),
		VendorID: params.VendorID,
		Search:   params.Search,
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// ListCategories retrieves the expense category registry.
func (s *expenseService) ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	categories, err := s.expenseRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense categories: %w", err)
	}
	return categories, nil
}

// UpdateExpense updates mutable expense fields.
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Description != nil {
		expense.Description = *req.Description
		updated = true
	}
	if req.PaymentStatus != nil {
		switch *req.PaymentStatus {
		case domain.ExpenseUnpaid, domain.ExpensePaid, domain.ExpenseReimbursed:
			expense.PaymentStatus = *req.PaymentStatus
			updated = true
		default:
			return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, *req.PaymentStatus)
		}
	}
	if !updated {
		return expense, nil
	}

	expense.LastUpdatedAt = time.Now().UTC()
	expense.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		logger.Error("Failed to update expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// ApproveExpense moves a pending expense to approved, stamping the approver
// and approval time. Approving twice is a no-op that keeps the original
// stamp; approving a rejected expense is a conflict.
func (s *expenseService) ApproveExpense(ctx context.Context, expenseID string, approver string, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	switch expense.Status {
	case domain.ExpenseApproved:
		return expense, nil
	case domain.ExpenseRejected:
		return nil, fmt.Errorf("%w: cannot approve a rejected expense", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	expense.Status = domain.ExpenseApproved
	expense.ApprovedBy = approver
	expense.ApprovalDate = &now
	expense.RejectionReason = ""
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		logger.Error("Failed to approve expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to approve expense: %w", err)
	}

	logger.Info("Expense approved", slog.String("expense_id", expenseID), slog.String("approver", approver))
	return expense, nil
}

// RejectExpense moves a pending expense to rejected with a reason. Rejecting
// twice is a no-op; rejecting an approved expense is a conflict.
func (s *expenseService) RejectExpense(ctx context.Context, expenseID string, reason string, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	switch expense.Status {
	case domain.ExpenseRejected:
		return expense, nil
	case domain.ExpenseApproved:
		return nil, fmt.Errorf("%w: cannot reject an approved expense", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	expense.Status = domain.ExpenseRejected
	expense.RejectionReason = reason
	expense.ApprovedBy = ""
	expense.ApprovalDate = nil
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		logger.Error("Failed to reject expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to reject expense: %w", err)
	}

	logger.Info("Expense rejected", slog.String("expense_id", expenseID))
	return expense, nil
}
