package services

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/dto"
)

// AccountReaderSvc defines read operations for ledger accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves every account in the chart of accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ResolveAccountsByNames retrieves accounts by ledger name, keyed by name.
	// Unknown names produce an ErrNotFound before any caller mutation runs.
	ResolveAccountsByNames(ctx context.Context, names []string) (map[string]domain.Account, error)
}

// AccountWriterSvc defines write operations for ledger accounts.
type AccountWriterSvc interface {
	// CreateAccount persists a new account with an optional opening balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details. Balance is not
	// updatable here; only journal postings move balances.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account inactive. Accounts with postings are
	// never hard-deleted.
	DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
