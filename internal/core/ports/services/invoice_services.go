package services

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices, newest first.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoices and payments.
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new receivable in pending status.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// RecordPayment applies a payment to an invoice: it posts the
	// bank/receivables journal, advances the invoice's paid amount and
	// status, and marks the payment reconciled, all in one transaction.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, creatorUserID string) (*domain.Payment, error)

	// RecordPOSSale creates a paid invoice for a point-of-sale ticket and
	// posts the cash/sales journal for it.
	RecordPOSSale(ctx context.Context, req dto.RecordPOSSaleRequest, creatorUserID string) (*domain.Invoice, error)
}

// PaymentReaderSvc defines read operations for payments.
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of payments, newest first.
	ListPayments(ctx context.Context, limit int, nextToken *string) (*dto.ListPaymentsResponse, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	PaymentReaderSvc
}
