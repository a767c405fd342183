package repositories

import (
	"context"
	"time"

	"github.com/zenerp/erp_backend/internal/core/domain"
)

// TaxRepositoryFacade defines persistence operations for the tax registry and
// TDS records.
type TaxRepositoryFacade interface {
	SaveTaxRate(ctx context.Context, rate domain.TaxRate) error
	FindTaxRateByID(ctx context.Context, taxRateID string) (*domain.TaxRate, error)
	ListTaxRates(ctx context.Context) ([]domain.TaxRate, error)
	UpdateTaxRate(ctx context.Context, rate domain.TaxRate) error
	DeactivateTaxRate(ctx context.Context, taxRateID string, userID string, at time.Time) error

	SaveTDSRecord(ctx context.Context, record domain.TDSRecord) error
	ListTDSRecords(ctx context.Context) ([]domain.TDSRecord, error)
}
