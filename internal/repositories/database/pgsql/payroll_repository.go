package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zenerp/erp_backend/internal/apperrors"
	"github.com/zenerp/erp_backend/internal/core/domain"
	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
	"github.com/zenerp/erp_backend/internal/models"
	"github.com/zenerp/erp_backend/internal/utils/mapping"
)

const payrollColumns = `payroll_id, employee_id, employee_name, month, year, basic_pay, allowances, deductions, loss_of_pay, net_pay, status, processed_date, created_at, created_by, last_updated_at, last_updated_by`

const insertPayrollQuery = `
	INSERT INTO payroll_records (` + payrollColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`

type PgxPayrollRepository struct {
	BaseRepository
}

// newPgxPayrollRepository creates a new repository for payroll data.
func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryFacade {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

func scanPayrollRecord(row pgx.Row) (models.PayrollRecord, error) {
	var m models.PayrollRecord
	err := row.Scan(
		&m.PayrollID,
		&m.EmployeeID,
		&m.EmployeeName,
		&m.Month,
		&m.Year,
		&m.BasicPay,
		&m.Allowances,
		&m.Deductions,
		&m.LossOfPay,
		&m.NetPay,
		&m.Status,
		&m.ProcessedDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePayrollRecords inserts a batch of payroll records in one DB transaction.
// Each employee can have at most one record per period; a collision rolls the
// whole batch back.
func (r *PgxPayrollRepository) SavePayrollRecords(ctx context.Context, records []domain.PayrollRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, record := range records {
		m := mapping.ToModelPayrollRecord(record)
		batch.Queue(insertPayrollQuery,
			m.PayrollID,
			m.EmployeeID,
			m.EmployeeName,
			m.Month,
			m.Year,
			m.BasicPay,
			m.Allowances,
			m.Deductions,
			m.LossOfPay,
			m.NetPay,
			m.Status,
			m.ProcessedDate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range records {
		if _, execErr := br.Exec(); execErr != nil {
			_ = br.Close()
			if isUniqueViolation(execErr) {
				return fmt.Errorf("%w: payroll for employee %s already exists for %d/%d",
					apperrors.ErrDuplicate, records[i].EmployeeID, records[i].Month, records[i].Year)
			}
			return apperrors.NewAppError(500, "failed to insert payroll record "+records[i].PayrollID, execErr)
		}
	}
	if closeErr := br.Close(); closeErr != nil {
		return apperrors.NewAppError(500, "failed to close payroll insert batch", closeErr)
	}

	return r.Commit(ctx, tx)
}

// FindPayrollByID retrieves a payroll record by its ID.
func (r *PgxPayrollRepository) FindPayrollByID(ctx context.Context, payrollID string) (*domain.PayrollRecord, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_records WHERE payroll_id = $1;`

	m, err := scanPayrollRecord(r.Pool.QueryRow(ctx, query, payrollID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payroll record by ID "+payrollID, err)
	}

	domainRecord := mapping.ToDomainPayrollRecord(m)
	return &domainRecord, nil
}

// FindPayrollByEmployeeAndPeriod retrieves the payroll record for one employee
// in one period, or ErrNotFound when the period has not been run for them.
func (r *PgxPayrollRepository) FindPayrollByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*domain.PayrollRecord, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_records WHERE employee_id = $1 AND month = $2 AND year = $3;`

	m, err := scanPayrollRecord(r.Pool.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payroll record for employee "+employeeID, err)
	}

	domainRecord := mapping.ToDomainPayrollRecord(m)
	return &domainRecord, nil
}

// ListPayroll retrieves all payroll records for a period, ordered by employee
// name.
func (r *PgxPayrollRepository) ListPayroll(ctx context.Context, month, year int) ([]domain.PayrollRecord, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_records WHERE month = $1 AND year = $2 ORDER BY employee_name;`

	rows, err := r.Pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payroll records", err)
	}
	defer rows.Close()

	records := []models.PayrollRecord{}
	for rows.Next() {
		m, scanErr := scanPayrollRecord(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll record row", scanErr)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payroll record rows", err)
	}
	return mapping.ToDomainPayrollRecordSlice(records), nil
}

// ListPayrollByEmployee retrieves all payroll records for one employee, newest
// period first.
func (r *PgxPayrollRepository) ListPayrollByEmployee(ctx context.Context, employeeID string) ([]domain.PayrollRecord, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_records WHERE employee_id = $1 ORDER BY year DESC, month DESC;`

	rows, err := r.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payroll records for employee "+employeeID, err)
	}
	defer rows.Close()

	records := []models.PayrollRecord{}
	for rows.Next() {
		m, scanErr := scanPayrollRecord(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll record row", scanErr)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payroll record rows", err)
	}
	return mapping.ToDomainPayrollRecordSlice(records), nil
}

// UpdatePayrollRecord updates a payroll record row.
func (r *PgxPayrollRepository) UpdatePayrollRecord(ctx context.Context, record domain.PayrollRecord) error {
	m := mapping.ToModelPayrollRecord(record)

	query := `
		UPDATE payroll_records
		SET status = $2,
		    processed_date = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE payroll_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PayrollID,
		m.Status,
		m.ProcessedDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payroll record "+m.PayrollID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
