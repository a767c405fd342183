package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zenerp/erp_backend/internal/apperrors"
	"github.com/zenerp/erp_backend/internal/core/domain"
	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
	"github.com/zenerp/erp_backend/internal/models"
	"github.com/zenerp/erp_backend/internal/utils/mapping"
)

const attendanceColumns = `attendance_id, employee_id, date, check_in, check_out, hours, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxAttendanceRepository struct {
	BaseRepository
}

// newPgxAttendanceRepository creates a new repository for attendance data.
func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceRepositoryFacade {
	return &PgxAttendanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

func scanAttendanceRecord(row pgx.Row) (models.AttendanceRecord, error) {
	var m models.AttendanceRecord
	err := row.Scan(
		&m.AttendanceID,
		&m.EmployeeID,
		&m.Date,
		&m.CheckIn,
		&m.CheckOut,
		&m.Hours,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAttendance inserts a new attendance record. Each employee can have at
// most one record per date.
func (r *PgxAttendanceRepository) SaveAttendance(ctx context.Context, record domain.AttendanceRecord) error {
	m := mapping.ToModelAttendanceRecord(record)

	query := `
		INSERT INTO attendance_records (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AttendanceID,
		m.EmployeeID,
		m.Date,
		m.CheckIn,
		m.CheckOut,
		m.Hours,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: attendance for employee %s on %s already exists",
				apperrors.ErrDuplicate, m.EmployeeID, m.Date.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to save attendance record %s: %w", m.AttendanceID, err)
	}
	return nil
}

// FindAttendanceByID retrieves an attendance record by its ID.
func (r *PgxAttendanceRepository) FindAttendanceByID(ctx context.Context, attendanceID string) (*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE attendance_id = $1;`

	m, err := scanAttendanceRecord(r.Pool.QueryRow(ctx, query, attendanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find attendance record by ID "+attendanceID, err)
	}

	domainRecord := mapping.ToDomainAttendanceRecord(m)
	return &domainRecord, nil
}

// FindOpenRecord retrieves the employee's record for the given date that has a
// check-in but no check-out yet.
func (r *PgxAttendanceRepository) FindOpenRecord(ctx context.Context, employeeID string, date time.Time) (*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND date = $2 AND check_out IS NULL;`

	m, err := scanAttendanceRecord(r.Pool.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open attendance record for employee "+employeeID, err)
	}

	domainRecord := mapping.ToDomainAttendanceRecord(m)
	return &domainRecord, nil
}

// ListByEmployee retrieves an employee's attendance in the half-open interval
// [from, to), oldest first.
func (r *PgxAttendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND date >= $2 AND date < $3 ORDER BY date;`

	rows, err := r.Pool.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attendance records for employee "+employeeID, err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		m, scanErr := scanAttendanceRecord(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attendance record row", scanErr)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attendance record rows", err)
	}
	return mapping.ToDomainAttendanceRecordSlice(records), nil
}

// CountAbsences counts the employee's days marked Absent in the given month.
func (r *PgxAttendanceRepository) CountAbsences(ctx context.Context, employeeID string, month, year int) (int, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := `SELECT COUNT(*) FROM attendance_records WHERE employee_id = $1 AND status = 'Absent' AND date >= $2 AND date < $3;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, employeeID, from, to).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count absences for employee "+employeeID, err)
	}
	return count, nil
}

// UpdateAttendance updates an attendance record row.
func (r *PgxAttendanceRepository) UpdateAttendance(ctx context.Context, record domain.AttendanceRecord) error {
	m := mapping.ToModelAttendanceRecord(record)

	query := `
		UPDATE attendance_records
		SET check_in = $2,
		    check_out = $3,
		    hours = $4,
		    status = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE attendance_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AttendanceID,
		m.CheckIn,
		m.CheckOut,
		m.Hours,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update attendance record "+m.AttendanceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
