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

const taxRateColumns = `tax_rate_id, name, rate, type, is_active, created_at, created_by, last_updated_at, last_updated_by`

const tdsRecordColumns = `tds_record_id, section, deductee_name, deductee_pan, amount, tds_amount, rate, payment_date, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxTaxRepository struct {
	BaseRepository
}

// newPgxTaxRepository creates a new repository for the tax registry and TDS
// records.
func newPgxTaxRepository(pool *pgxpool.Pool) portsrepo.TaxRepositoryFacade {
	return &PgxTaxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxRepositoryFacade = (*PgxTaxRepository)(nil)

// SaveTaxRate inserts a new tax registry entry.
func (r *PgxTaxRepository) SaveTaxRate(ctx context.Context, rate domain.TaxRate) error {
	m := mapping.ToModelTaxRate(rate)

	query := `
		INSERT INTO tax_rates (` + taxRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TaxRateID,
		m.Name,
		m.Rate,
		m.Type,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tax rate %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save tax rate %s: %w", m.TaxRateID, err)
	}
	return nil
}

// FindTaxRateByID retrieves a tax registry entry by its ID.
func (r *PgxTaxRepository) FindTaxRateByID(ctx context.Context, taxRateID string) (*domain.TaxRate, error) {
	query := `SELECT ` + taxRateColumns + ` FROM tax_rates WHERE tax_rate_id = $1;`

	var m models.TaxRate
	err := r.Pool.QueryRow(ctx, query, taxRateID).Scan(
		&m.TaxRateID,
		&m.Name,
		&m.Rate,
		&m.Type,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tax rate by ID "+taxRateID, err)
	}

	domainRate := mapping.ToDomainTaxRate(m)
	return &domainRate, nil
}

// ListTaxRates retrieves the tax registry ordered by name.
func (r *PgxTaxRepository) ListTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	query := `SELECT ` + taxRateColumns + ` FROM tax_rates ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax rates", err)
	}
	defer rows.Close()

	rates := []models.TaxRate{}
	for rows.Next() {
		var m models.TaxRate
		if scanErr := rows.Scan(
			&m.TaxRateID,
			&m.Name,
			&m.Rate,
			&m.Type,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax rate row", scanErr)
		}
		rates = append(rates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax rate rows", err)
	}
	return mapping.ToDomainTaxRateSlice(rates), nil
}

// UpdateTaxRate updates a tax registry entry.
func (r *PgxTaxRepository) UpdateTaxRate(ctx context.Context, rate domain.TaxRate) error {
	m := mapping.ToModelTaxRate(rate)

	query := `
		UPDATE tax_rates
		SET name = $2,
		    rate = $3,
		    type = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE tax_rate_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TaxRateID,
		m.Name,
		m.Rate,
		m.Type,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update tax rate "+m.TaxRateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateTaxRate marks a tax registry entry inactive.
func (r *PgxTaxRepository) DeactivateTaxRate(ctx context.Context, taxRateID string, userID string, at time.Time) error {
	query := `
		UPDATE tax_rates
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE tax_rate_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, taxRateID, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate tax rate "+taxRateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTDSRecord inserts a new TDS record.
func (r *PgxTaxRepository) SaveTDSRecord(ctx context.Context, record domain.TDSRecord) error {
	m := mapping.ToModelTDSRecord(record)

	query := `
		INSERT INTO tds_records (` + tdsRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TDSRecordID,
		m.Section,
		m.DeducteeName,
		m.DeducteePAN,
		m.Amount,
		m.TDSAmount,
		m.Rate,
		m.PaymentDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save TDS record %s: %w", m.TDSRecordID, err)
	}
	return nil
}

// ListTDSRecords retrieves all TDS records, newest payment first.
func (r *PgxTaxRepository) ListTDSRecords(ctx context.Context) ([]domain.TDSRecord, error) {
	query := `SELECT ` + tdsRecordColumns + ` FROM tds_records ORDER BY payment_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query TDS records", err)
	}
	defer rows.Close()

	records := []models.TDSRecord{}
	for rows.Next() {
		var m models.TDSRecord
		if scanErr := rows.Scan(
			&m.TDSRecordID,
			&m.Section,
			&m.DeducteeName,
			&m.DeducteePAN,
			&m.Amount,
			&m.TDSAmount,
			&m.Rate,
			&m.PaymentDate,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan TDS record row", scanErr)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating TDS record rows", err)
	}
	return mapping.ToDomainTDSRecordSlice(records), nil
}
