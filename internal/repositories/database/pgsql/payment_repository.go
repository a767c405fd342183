package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zenerp/erp_backend/internal/apperrors"
	"github.com/zenerp/erp_backend/internal/core/domain"
	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
	"github.com/zenerp/erp_backend/internal/models"
	"github.com/zenerp/erp_backend/internal/utils/mapping"
	"github.com/zenerp/erp_backend/internal/utils/pagination"
)

const paymentColumns = `payment_id, invoice_id, payment_date, amount, method, status, is_reconciled, journal_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// SavePaymentWithReconciliation persists a payment and everything it implies
// in one DB transaction: the invoice row, the payment row, the reconciliation
// journal with its lines, and the account balance deltas. A failure rolls
// everything back. The invoice row is locked and its paid amount compared
// with priorPaid before anything is written; a mismatch means another payment
// reconciled in between and surfaces as ErrConflict.
func (r *PgxPaymentRepository) SavePaymentWithReconciliation(ctx context.Context, payment domain.Payment, invoice domain.Invoice, priorPaid decimal.Decimal, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := reconcileInvoiceTx(ctx, tx, invoice, priorPaid); err != nil {
		return err
	}
	if err := insertPaymentTx(ctx, tx, payment); err != nil {
		return err
	}
	if err := insertJournalTx(ctx, tx, journal); err != nil {
		return err
	}
	if err := applyJournalLinesTx(ctx, tx, r.accountRepo, journal, transactions, balanceChanges); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// reconcileInvoiceTx writes the invoice side of a payment. An existing row is
// locked FOR UPDATE and updated only when its paid amount still matches what
// the caller based its computation on; a missing row is inserted, which is
// how a POS sale creates invoice and payment together.
func reconcileInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, priorPaid decimal.Decimal) error {
	var lockedPaid decimal.Decimal
	err := tx.QueryRow(ctx,
		`SELECT amount_paid FROM invoices WHERE invoice_id = $1 FOR UPDATE;`,
		invoice.InvoiceID,
	).Scan(&lockedPaid)
	if errors.Is(err, pgx.ErrNoRows) {
		return insertInvoiceTx(ctx, tx, invoice)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock invoice "+invoice.InvoiceID, err)
	}

	if !lockedPaid.Equal(priorPaid) {
		return fmt.Errorf("%w: invoice %s was reconciled concurrently", apperrors.ErrConflict, invoice.InvoiceID)
	}

	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET amount_paid = $2,
		    status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE invoice_id = $1;
	`
	_, err = tx.Exec(ctx, query, m.InvoiceID, m.AmountPaid, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	return nil
}

func insertInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.Number,
		m.Customer,
		m.CustomerGSTIN,
		m.Amount,
		m.AmountPaid,
		m.Status,
		m.DueDate,
		m.Source,
		m.Items,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice %s already exists", apperrors.ErrDuplicate, m.InvoiceID)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}
	return nil
}

func insertPaymentTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.InvoiceID,
		m.PaymentDate,
		m.Amount,
		m.Method,
		m.Status,
		m.IsReconciled,
		m.JournalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment %s already exists", apperrors.ErrDuplicate, m.PaymentID)
		}
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}
	return nil
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.InvoiceID,
		&m.PaymentDate,
		&m.Amount,
		&m.Method,
		&m.Status,
		&m.IsReconciled,
		&m.JournalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}

	domainPayment := mapping.ToDomainPayment(m)
	return &domainPayment, nil
}

// ListPayments retrieves a paginated list of payments using keyset pagination
// over (payment_date, created_at), newest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + paymentColumns + ` FROM payments`
	orderByClause := `ORDER BY payment_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		lastPaymentDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args := []interface{}{lastPaymentDate, lastCreatedAt}
		query := baseQuery + ` WHERE (payment_date, created_at) < ($1, $2) ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payment row", scanErr)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}

	var nextTokenVal *string
	results := payments
	if len(payments) > limit {
		last := payments[limit-1]
		token := pagination.EncodeToken(last.PaymentDate, last.CreatedAt)
		nextTokenVal = &token
		results = payments[:limit]
	}

	return mapping.ToDomainPaymentSlice(results), nextTokenVal, nil
}
