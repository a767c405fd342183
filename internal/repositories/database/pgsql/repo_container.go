package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories against the given pool. The
// account repository is built first because the journal and payment
// repositories post balance changes through it.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		JournalRepo:    newPgxJournalRepository(dbPool, accountRepo),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		PaymentRepo:    newPgxPaymentRepository(dbPool, accountRepo),
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		TaxRepo:        newPgxTaxRepository(dbPool),
		PayrollRepo:    newPgxPayrollRepository(dbPool),
		EmployeeRepo:   newPgxEmployeeRepository(dbPool),
		AttendanceRepo: newPgxAttendanceRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
