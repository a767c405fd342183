package services

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/dto"
)

// TaxReturnSvc defines the GST return computations.
type TaxReturnSvc interface {
	// GenerateGSTR1 builds the outward-supply return for a period, bucketing
	// invoices into B2B, B2CL and B2CS.
	GenerateGSTR1(ctx context.Context, month, year int) (*dto.GSTR1Response, error)

	// GenerateGSTR3B builds the summary return for a period, netting output
	// tax against input tax credit from approved expenses.
	GenerateGSTR3B(ctx context.Context, month, year int) (*dto.GSTR3BResponse, error)
}

// TDSSvc defines TDS deduction operations.
type TDSSvc interface {
	// RecordTDSPayment computes the deduction and persists the record.
	RecordTDSPayment(ctx context.Context, req dto.CreateTDSPaymentRequest, creatorUserID string) (*domain.TDSRecord, error)

	// ListTDSRecords retrieves all TDS records, newest first.
	ListTDSRecords(ctx context.Context) ([]domain.TDSRecord, error)
}

// TaxRateSvc defines the tax registry operations.
type TaxRateSvc interface {
	CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest, creatorUserID string) (*domain.TaxRate, error)
	UpdateTaxRate(ctx context.Context, taxRateID string, req dto.UpdateTaxRateRequest, requestingUserID string) (*domain.TaxRate, error)
	ListTaxRates(ctx context.Context) ([]domain.TaxRate, error)
	DeactivateTaxRate(ctx context.Context, taxRateID string, requestingUserID string) error
}

// TaxSvcFacade combines all taxation service interfaces.
type TaxSvcFacade interface {
	TaxReturnSvc
	TDSSvc
	TaxRateSvc
}
