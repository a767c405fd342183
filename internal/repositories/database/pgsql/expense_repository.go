package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zenerp/erp_backend/internal/apperrors"
	"github.com/zenerp/erp_backend/internal/core/domain"
	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
	"github.com/zenerp/erp_backend/internal/models"
	"github.com/zenerp/erp_backend/internal/utils/mapping"
)

const expenseColumns = `expense_id, description, amount, gst_amount, total_amount, category, vendor_id, status, payment_status, approved_by, approval_date, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Description,
		&m.Amount,
		&m.GSTAmount,
		&m.TotalAmount,
		&m.Category,
		&m.VendorID,
		&m.Status,
		&m.PaymentStatus,
		&m.ApprovedBy,
		&m.ApprovalDate,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExpense inserts a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.Description,
		m.Amount,
		m.GSTAmount,
		m.TotalAmount,
		m.Category,
		m.VendorID,
		m.Status,
		m.PaymentStatus,
		m.ApprovedBy,
		m.ApprovalDate,
		m.RejectionReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`

	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense by ID "+expenseID, err)
	}

	domainExpense := mapping.ToDomainExpense(m)
	return &domainExpense, nil
}

// ListExpenses retrieves expenses matching the filter, newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	clauses := []string{}
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		clauses = append(clauses, `status = $`+strconv.Itoa(len(args)))
	}
	if filter.VendorID != "" {
		args = append(args, filter.VendorID)
		clauses = append(clauses, `vendor_id = $`+strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, `description ILIKE $`+strconv.Itoa(len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", scanErr)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return mapping.ToDomainExpenseSlice(expenses), nil
}

// ListExpensesByDateRange retrieves expenses created in the half-open interval
// [from, to). Used by the tax returns.
func (r *PgxExpenseRepository) ListExpensesByDateRange(ctx context.Context, from, to time.Time) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses by date range", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", scanErr)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return mapping.ToDomainExpenseSlice(expenses), nil
}

// UpdateExpense updates an expense row.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		UPDATE expenses
		SET description = $2,
		    status = $3,
		    payment_status = $4,
		    approved_by = $5,
		    approval_date = $6,
		    rejection_reason = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE expense_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.Description,
		m.Status,
		m.PaymentStatus,
		m.ApprovedBy,
		m.ApprovalDate,
		m.RejectionReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+m.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCategoryByName retrieves an expense category by its name.
func (r *PgxExpenseRepository) FindCategoryByName(ctx context.Context, name string) (*domain.ExpenseCategory, error) {
	query := `SELECT category_id, name, type, gst_rate, created_at, created_by, last_updated_at, last_updated_by FROM expense_categories WHERE name = $1;`

	var m models.ExpenseCategory
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&m.CategoryID,
		&m.Name,
		&m.Type,
		&m.GSTRate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: expense category %q", apperrors.ErrNotFound, name)
		}
		return nil, apperrors.NewAppError(500, "failed to find expense category "+name, err)
	}

	domainCategory := mapping.ToDomainExpenseCategory(m)
	return &domainCategory, nil
}

// ListCategories retrieves all expense categories ordered by name.
func (r *PgxExpenseRepository) ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	query := `SELECT category_id, name, type, gst_rate, created_at, created_by, last_updated_at, last_updated_by FROM expense_categories ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expense categories", err)
	}
	defer rows.Close()

	categories := []models.ExpenseCategory{}
	for rows.Next() {
		var m models.ExpenseCategory
		if scanErr := rows.Scan(
			&m.CategoryID,
			&m.Name,
			&m.Type,
			&m.GSTRate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense category row", scanErr)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense category rows", err)
	}
	return mapping.ToDomainExpenseCategorySlice(categories), nil
}
