package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for ledger accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByNames(ctx context.Context, names []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccountDetails(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, accountID string, userID string, at time.Time) error
	HasPostings(ctx context.Context, accountID string) (bool, error)

	// FindAccountsByIDsForUpdate locks the given accounts (SELECT ... FOR
	// UPDATE) inside tx and returns them keyed by ID. Missing IDs are an
	// ErrNotFound.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies the net balance deltas inside tx.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, at time.Time) error
}
