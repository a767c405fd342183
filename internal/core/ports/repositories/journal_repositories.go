package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// JournalRepositoryFacade defines persistence operations for journals and
// their transaction lines. SaveJournal is atomic: the journal row, every line
// and every balance delta commit together or not at all.
type JournalRepositoryFacade interface {
	SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error)
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error)
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, userID string, at time.Time) error
}
