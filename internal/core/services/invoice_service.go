package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

var (
	ErrPaymentAmountInvalid = errors.New("payment amount must be positive")
	ErrSaleTotalMismatch    = errors.New("sale total does not match item lines")
)

// invoiceService owns receivables: invoice creation, payment reconciliation
// and POS sales. Every payment posts a ledger journal through the same
// double-entry machinery as manual journals, and the payment row, the invoice
// update and the journal commit in one database transaction.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade

	bankAccountName  string
	salesAccountName string
	receivablesName  string
}

// NewInvoiceService creates a new invoice service. The account names identify
// the ledger accounts used for payment and POS postings.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	bankAccountName, salesAccountName, receivablesName string,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:      invoiceRepo,
		paymentRepo:      paymentRepo,
		accountSvc:       accountSvc,
		bankAccountName:  bankAccountName,
		salesAccountName: salesAccountName,
		receivablesName:  receivablesName,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice persists a new receivable. Status starts pending (or overdue
// when the due date is already past).
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: invoice amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	number := req.Number
	if number == "" {
		number = generateDocumentNumber("INV")
	}

	items := make([]domain.InvoiceItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.InvoiceItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		Number:        number,
		Customer:      req.Customer,
		CustomerGSTIN: req.CustomerGSTIN,
		Amount:        accounting.Round2(req.Amount),
		AmountPaid:    decimal.Zero,
		Status:        domain.DeriveInvoiceStatus(req.Amount, decimal.Zero, req.DueDate, now),
		DueDate:       req.DueDate,
		Source:        domain.SourceAccounting,
		Items:         items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("number", number))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("number", number))
	return &invoice, nil
}

// GetInvoiceByID retrieves an invoice, re-deriving overdue status against the
// current clock.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	invoice.Status = domain.DeriveInvoiceStatus(invoice.Amount, invoice.AmountPaid, invoice.DueDate, time.Now().UTC())
	return invoice, nil
}

// ListInvoices retrieves a paginated list of invoices, newest first. Overdue
// status is derived at read time so a pending invoice past its due date shows
// overdue without a background sweep.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list invoices", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}

	now := time.Now().UTC()
	for i := range invoices {
		invoices[i].Status = domain.DeriveInvoiceStatus(invoices[i].Amount, invoices[i].AmountPaid, invoices[i].DueDate, now)
	}

	return &dto.ListInvoicesResponse{
		Invoices:  dto.ToInvoiceResponses(invoices),
		NextToken: nextToken,
	}, nil
}

// RecordPayment applies a payment to an invoice. The ledger effect is a debit
// to the bank account and a credit to receivables; the invoice's paid amount
// advances (clamped at the invoice total) and the derived status moves to
// partial or paid. All of it commits atomically.
func (s *invoiceService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, creatorUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w", ErrPaymentAmountInvalid)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.AmountPaid.GreaterThanOrEqual(invoice.Amount) {
		return nil, fmt.Errorf("%w: invoice %s is already fully paid", apperrors.ErrConflict, invoice.Number)
	}

	now := time.Now().UTC()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	amount := accounting.Round2(req.Amount)

	// Paid amount is clamped at the invoice total; the payment row keeps the
	// actual received amount.
	priorPaid := invoice.AmountPaid
	newPaid := invoice.AmountPaid.Add(amount)
	if newPaid.GreaterThan(invoice.Amount) {
		newPaid = invoice.Amount
	}
	invoice.AmountPaid = newPaid
	invoice.Status = domain.DeriveInvoiceStatus(invoice.Amount, newPaid, invoice.DueDate, now)
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = creatorUserID

	journal, transactions, balanceChanges, err := s.buildTwoLineJournal(
		ctx, paymentDate,
		invoice.Number,
		fmt.Sprintf("Payment received for invoice %s", invoice.Number),
		s.bankAccountName, s.receivablesName,
		amount, creatorUserID, now,
	)
	if err != nil {
		return nil, err
	}

	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		InvoiceID:    invoice.InvoiceID,
		PaymentDate:  paymentDate,
		Amount:       amount,
		Method:       req.Method,
		Status:       domain.PaymentCompleted,
		IsReconciled: true,
		JournalID:    journal.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.paymentRepo.SavePaymentWithReconciliation(ctx, payment, *invoice, priorPaid, journal, transactions, balanceChanges); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("invoice_id", invoice.InvoiceID))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("amount", amount.String()),
		slog.String("invoice_status", string(invoice.Status)),
	)
	return &payment, nil
}

// RecordPOSSale creates a paid invoice for a point-of-sale ticket and posts
// its cash/sales journal. POS tickets settle immediately, so the invoice is
// born paid and the payment is born reconciled.
func (s *invoiceService) RecordPOSSale(ctx context.Context, req dto.RecordPOSSaleRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	itemsTotal := decimal.Zero
	items := make([]domain.InvoiceItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.InvoiceItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		itemsTotal = itemsTotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	itemsTotal = accounting.Round2(itemsTotal)
	total := accounting.Round2(req.Total)
	if !total.Equal(itemsTotal) {
		return nil, fmt.Errorf("%w: total %s, items %s", ErrSaleTotalMismatch, total, itemsTotal)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: sale total must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	customer := req.CustomerName
	if customer == "" {
		customer = "Walk-in Customer"
	}

	invoice := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		Number:     generateDocumentNumber("POS"),
		Customer:   customer,
		Amount:     total,
		AmountPaid: total,
		Status:     domain.InvoicePaid,
		DueDate:    now,
		Source:     domain.SourcePOS,
		Items:      items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	journal, transactions, balanceChanges, err := s.buildTwoLineJournal(
		ctx, now,
		invoice.Number,
		fmt.Sprintf("POS sale %s", invoice.Number),
		s.bankAccountName, s.salesAccountName,
		total, creatorUserID, now,
	)
	if err != nil {
		return nil, err
	}

	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		InvoiceID:    invoice.InvoiceID,
		PaymentDate:  now,
		Amount:       total,
		Method:       "pos",
		Status:       domain.PaymentCompleted,
		IsReconciled: true,
		JournalID:    journal.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.paymentRepo.SavePaymentWithReconciliation(ctx, payment, invoice, decimal.Zero, journal, transactions, balanceChanges); err != nil {
		logger.Error("Failed to save POS sale", slog.String("error", err.Error()), slog.String("number", invoice.Number))
		return nil, fmt.Errorf("failed to record POS sale: %w", err)
	}

	logger.Info("POS sale recorded", slog.String("invoice_id", invoice.InvoiceID), slog.String("amount", total.String()))
	return &invoice, nil
}

// GetPaymentByID retrieves a specific payment.
func (s *invoiceService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListPayments retrieves a paginated list of payments, newest first.
func (s *invoiceService) ListPayments(ctx context.Context, limit int, nextToken *string) (*dto.ListPaymentsResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	payments, next, err := s.paymentRepo.ListPayments(ctx, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	return &dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: next,
	}, nil
}

// buildTwoLineJournal resolves the named accounts and builds a posted journal
// debiting one and crediting the other for amount. Persistence is left to the
// caller so the journal can join a larger transaction.
func (s *invoiceService) buildTwoLineJournal(
	ctx context.Context,
	date time.Time,
	reference, description string,
	debitAccountName, creditAccountName string,
	amount decimal.Decimal,
	userID string,
	now time.Time,
) (domain.Journal, []domain.Transaction, map[string]decimal.Decimal, error) {
	accountsMap, err := s.accountSvc.ResolveAccountsByNames(ctx, []string{debitAccountName, creditAccountName})
	if err != nil {
		return domain.Journal{}, nil, nil, err
	}
	debitAccount := accountsMap[debitAccountName]
	creditAccount := accountsMap[creditAccountName]

	journalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	transactions := []domain.Transaction{
		{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       debitAccount.AccountID,
			Amount:          amount,
			TransactionType: domain.Debit,
			Description:     description,
			AuditFields:     audit,
		},
		{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       creditAccount.AccountID,
			Amount:          amount,
			TransactionType: domain.Credit,
			Description:     description,
			AuditFields:     audit,
		},
	}

	balanceChanges := make(map[string]decimal.Decimal, 2)
	for _, txn := range transactions {
		accountType := debitAccount.AccountType
		if txn.AccountID == creditAccount.AccountID {
			accountType = creditAccount.AccountType
		}
		signed, err := accounting.CalculateSignedAmount(txn, accountType)
		if err != nil {
			return domain.Journal{}, nil, nil, err
		}
		balanceChanges[txn.AccountID] = balanceChanges[txn.AccountID].Add(signed)
	}

	journal := domain.Journal{
		JournalID:   journalID,
		JournalDate: date,
		Reference:   reference,
		Description: description,
		Status:      domain.Posted,
		AuditFields: audit,
	}
	return journal, transactions, balanceChanges, nil
}

// generateDocumentNumber builds a short unique human-facing number like
// INV-8F2C41D9.
func generateDocumentNumber(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, id[:8])
}
