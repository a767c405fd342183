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

// b2clThreshold is the invoice value above which an unregistered-customer
// sale reports as a large B2C supply.
var b2clThreshold = decimal.NewFromInt(250000)

// gstFactor converts a GST-inclusive amount to its taxable value at the
// standard 18% rate: taxable = gross / 1.18.
var gstFactor = decimal.NewFromFloat(1.18)

// taxService computes GST returns from invoice and expense data and manages
// TDS records plus the tax rate registry.
type taxService struct {
	taxRepo     portsrepo.TaxRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewTaxService creates a new tax service.
func NewTaxService(taxRepo portsrepo.TaxRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade) portssvc.TaxSvcFacade {
	return &taxService{
		taxRepo:     taxRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
	}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// periodBounds returns the half-open [from, to) interval for a month.
func periodBounds(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be 1-12, got %d", apperrors.ErrValidation, month)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}

// periodLabel renders a period like "March 2025".
func periodLabel(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

// GenerateGSTR1 builds the outward-supply return for a period. Invoice
// amounts are GST-inclusive; the taxable value backs the 18% rate out of the
// gross. Invoices bucket into B2B (customer has a GSTIN), B2CL (no GSTIN,
// gross above the large-supply threshold) and B2CS (the rest).
func (s *taxService) GenerateGSTR1(ctx context.Context, month, year int) (*dto.GSTR1Response, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to, err := periodBounds(month, year)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListInvoicesByDateRange(ctx, from, to)
	if err != nil {
		logger.Error("Failed to list invoices for GSTR-1", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve invoices for period: %w", err)
	}

	resp := &dto.GSTR1Response{Period: periodLabel(month, year)}
	totalTaxable := decimal.Zero
	totalTax := decimal.Zero

	for i := range invoices {
		inv := invoices[i]
		taxable := accounting.Round2(inv.Amount.Div(gstFactor))
		tax := inv.Amount.Sub(taxable)
		totalTaxable = totalTaxable.Add(taxable)
		totalTax = totalTax.Add(tax)

		invResp := dto.ToInvoiceResponse(&inv)
		switch {
		case inv.CustomerGSTIN != "":
			resp.Details.B2B = append(resp.Details.B2B, invResp)
		case inv.Amount.GreaterThan(b2clThreshold):
			resp.Details.B2CL = append(resp.Details.B2CL, invResp)
		default:
			resp.Details.B2CS = append(resp.Details.B2CS, invResp)
		}
	}

	resp.Summary = dto.GSTR1Summary{
		TotalTaxableValue: accounting.Round2(totalTaxable),
		TotalTaxLiability: accounting.Round2(totalTax),
		B2BCount:          len(resp.Details.B2B),
		B2CLCount:         len(resp.Details.B2CL),
		B2CSCount:         len(resp.Details.B2CS),
	}

	logger.Info("GSTR-1 generated",
		slog.String("period", resp.Period),
		slog.Int("invoices", len(invoices)),
	)
	return resp, nil
}

// GenerateGSTR3B builds the summary return for a period. Output tax splits
// half to IGST and a quarter each to CGST and SGST; input tax credit comes
// from the GST on approved expenses in the period and splits the same way.
// Tax payable is the output total net of ITC, floored at zero.
func (s *taxService) GenerateGSTR3B(ctx context.Context, month, year int) (*dto.GSTR3BResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to, err := periodBounds(month, year)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListInvoicesByDateRange(ctx, from, to)
	if err != nil {
		logger.Error("Failed to list invoices for GSTR-3B", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve invoices for period: %w", err)
	}

	expenses, err := s.expenseRepo.ListExpensesByDateRange(ctx, from, to)
	if err != nil {
		logger.Error("Failed to list expenses for GSTR-3B", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve expenses for period: %w", err)
	}

	totalTaxable := decimal.Zero
	outputTax := decimal.Zero
	for i := range invoices {
		taxable := accounting.Round2(invoices[i].Amount.Div(gstFactor))
		totalTaxable = totalTaxable.Add(taxable)
		outputTax = outputTax.Add(invoices[i].Amount.Sub(taxable))
	}

	itcTotal := decimal.Zero
	for i := range expenses {
		if expenses[i].Status == domain.ExpenseApproved {
			itcTotal = itcTotal.Add(expenses[i].GSTAmount)
		}
	}

	resp := &dto.GSTR3BResponse{Period: periodLabel(month, year)}
	resp.OutwardSupplies.TaxableValue = accounting.Round2(totalTaxable)
	resp.OutwardSupplies.GSTTaxSplit = splitGST(outputTax)
	resp.ITC = splitGST(itcTotal)

	payable := outputTax.Sub(itcTotal)
	if payable.LessThan(decimal.Zero) {
		payable = decimal.Zero
	}
	resp.Payment.TaxPayable = accounting.Round2(payable)

	logger.Info("GSTR-3B generated",
		slog.String("period", resp.Period),
		slog.String("tax_payable", resp.Payment.TaxPayable.String()),
	)
	return resp, nil
}

// splitGST distributes a tax total half to IGST and a quarter each to CGST
// and SGST. Cess stays zero.
func splitGST(total decimal.Decimal) dto.GSTTaxSplit {
	half := decimal.NewFromFloat(0.5)
	quarter := decimal.NewFromFloat(0.25)
	return dto.GSTTaxSplit{
		IGST: accounting.Round2(total.Mul(half)),
		CGST: accounting.Round2(total.Mul(quarter)),
		SGST: accounting.Round2(total.Mul(quarter)),
		Cess: decimal.Zero,
	}
}

// RecordTDSPayment computes the deduction from the base amount and rate and
// persists a pending TDS record.
func (s *taxService) RecordTDSPayment(ctx context.Context, req dto.CreateTDSPaymentRequest, creatorUserID string) (*domain.TDSRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.Rate.LessThan(decimal.Zero) || req.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: TDS rate must be between 0 and 100", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	record := domain.TDSRecord{
		TDSRecordID:  uuid.NewString(),
		Section:      req.Section,
		DeducteeName: req.DeducteeName,
		DeducteePAN:  req.DeducteePAN,
		Amount:       accounting.Round2(req.Amount),
		TDSAmount:    accounting.Round2(req.Amount.Mul(req.Rate).Div(decimal.NewFromInt(100))),
		Rate:         req.Rate,
		PaymentDate:  req.PaymentDate,
		Status:       domain.TDSPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.taxRepo.SaveTDSRecord(ctx, record); err != nil {
		logger.Error("Failed to save TDS record", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save TDS record: %w", err)
	}

	logger.Info("TDS payment recorded",
		slog.String("tds_record_id", record.TDSRecordID),
		slog.String("section", record.Section),
		slog.String("tds_amount", record.TDSAmount.String()),
	)
	return &record, nil
}

// ListTDSRecords retrieves all TDS records, newest first.
func (s *taxService) ListTDSRecords(ctx context.Context) ([]domain.TDSRecord, error) {
	records, err := s.taxRepo.ListTDSRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list TDS records: %w", err)
	}
	return records, nil
}

// CreateTaxRate adds an entry to the tax registry.
func (s *taxService) CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest, creatorUserID string) (*domain.TaxRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	rate := domain.TaxRate{
		TaxRateID: uuid.NewString(),
		Name:      req.Name,
		Rate:      req.Rate,
		Type:      req.Type,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.taxRepo.SaveTaxRate(ctx, rate); err != nil {
		logger.Error("Failed to save tax rate", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save tax rate: %w", err)
	}
	return &rate, nil
}

// UpdateTaxRate updates a registry entry.
func (s *taxService) UpdateTaxRate(ctx context.Context, taxRateID string, req dto.UpdateTaxRateRequest, requestingUserID string) (*domain.TaxRate, error) {
	rate, err := s.taxRepo.FindTaxRateByID(ctx, taxRateID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		rate.Name = *req.Name
		updated = true
	}
	if req.Rate != nil {
		rate.Rate = *req.Rate
		updated = true
	}
	if req.Type != nil {
		rate.Type = *req.Type
		updated = true
	}
	if !updated {
		return rate, nil
	}

	rate.LastUpdatedAt = time.Now().UTC()
	rate.LastUpdatedBy = requestingUserID

	if err := s.taxRepo.UpdateTaxRate(ctx, *rate); err != nil {
		return nil, fmt.Errorf("failed to update tax rate: %w", err)
	}
	return rate, nil
}

// ListTaxRates retrieves the registry.
func (s *taxService) ListTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	rates, err := s.taxRepo.ListTaxRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rates: %w", err)
	}
	return rates, nil
}

// DeactivateTaxRate marks a registry entry inactive.
func (s *taxService) DeactivateTaxRate(ctx context.Context, taxRateID string, requestingUserID string) error {
	if _, err := s.taxRepo.FindTaxRateByID(ctx, taxRateID); err != nil {
		return err
	}
	if err := s.taxRepo.DeactivateTaxRate(ctx, taxRateID, requestingUserID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate tax rate: %w", err)
	}
	return nil
}
