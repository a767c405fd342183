package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// InvoiceRepositoryFacade defines persistence operations for invoices.
type InvoiceRepositoryFacade interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, limit int, nextToken *string) ([]domain.Invoice, *string, error)
	ListInvoicesByDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)
}

// PaymentRepositoryFacade defines persistence operations for payments.
// SavePaymentWithReconciliation is the write path for recordPayment: the
// payment row, the invoice's paid amount/status, the journal with its lines
// and the account balance deltas all commit in a single database transaction,
// so a failed payment never partially applies. priorPaid is the paid amount
// the caller observed when it computed the reconciliation; the invoice row is
// re-read under a row lock and a mismatch is an ErrConflict, so two
// concurrent payments can never both apply against the same starting balance.
type PaymentRepositoryFacade interface {
	SavePaymentWithReconciliation(ctx context.Context, payment domain.Payment, invoice domain.Invoice, priorPaid decimal.Decimal, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, limit int, nextToken *string) ([]domain.Payment, *string, error)
}
