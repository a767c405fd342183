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

const employeeColumns = `employee_id, first_name, last_name, email, department, designation, manager_id, monthly_ctc, status, join_date, onboarding, exit_details, created_at, created_by, last_updated_at, last_updated_by`

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for employee data.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Department,
		&m.Designation,
		&m.ManagerID,
		&m.MonthlyCTC,
		&m.Status,
		&m.JoinDate,
		&m.Onboarding,
		&m.Exit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEmployee inserts a new employee. Emails are unique.
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)

	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Department,
		m.Designation,
		m.ManagerID,
		m.MonthlyCTC,
		m.Status,
		m.JoinDate,
		m.Onboarding,
		m.Exit,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: employee with email %q already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save employee %s: %w", m.EmployeeID, err)
	}
	return nil
}

// FindEmployeeByID retrieves an employee by their ID.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`

	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employee by ID "+employeeID, err)
	}

	domainEmployee := mapping.ToDomainEmployee(m)
	return &domainEmployee, nil
}

// FindEmployeesByIDs retrieves multiple employees keyed by ID. Missing IDs are
// simply absent from the result map.
func (r *PgxEmployeeRepository) FindEmployeesByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error) {
	if len(employeeIDs) == 0 {
		return map[string]domain.Employee{}, nil
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees by IDs", err)
	}
	defer rows.Close()

	employees := make(map[string]domain.Employee, len(employeeIDs))
	for rows.Next() {
		m, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", scanErr)
		}
		employees[m.EmployeeID] = mapping.ToDomainEmployee(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}
	return employees, nil
}

// ListEmployees retrieves employees ordered by name. An empty status means all
// statuses.
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, status domain.EmployeeStatus) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY first_name, last_name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		m, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", scanErr)
		}
		employees = append(employees, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}
	return mapping.ToDomainEmployeeSlice(employees), nil
}

// UpdateEmployee updates an employee row including the onboarding checklist
// and exit details.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)

	query := `
		UPDATE employees
		SET first_name = $2,
		    last_name = $3,
		    email = $4,
		    department = $5,
		    designation = $6,
		    manager_id = $7,
		    monthly_ctc = $8,
		    status = $9,
		    onboarding = $10,
		    exit_details = $11,
		    last_updated_at = $12,
		    last_updated_by = $13
		WHERE employee_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Department,
		m.Designation,
		m.ManagerID,
		m.MonthlyCTC,
		m.Status,
		m.Onboarding,
		m.Exit,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: employee with email %q already exists", apperrors.ErrDuplicate, m.Email)
		}
		return apperrors.NewAppError(500, "failed to update employee "+m.EmployeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
