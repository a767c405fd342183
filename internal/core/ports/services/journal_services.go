package services

import (
	"context"
	"time"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal data.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its transaction lines.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data.
type JournalWriterSvc interface {
	// CreateJournal validates balance, resolves account names, computes
	// running balances and persists the journal atomically.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// ReverseJournal posts a mirror-image journal and links the pair.
	ReverseJournal(ctx context.Context, journalID string, requestingUserID string) (*domain.Journal, error)
}

// JournalPosterSvc is the internal posting surface other services use to
// route their ledger effects (payments, POS sales) through the same engine.
type JournalPosterSvc interface {
	// PostJournal posts pre-built debit/credit lines against named accounts.
	PostJournal(ctx context.Context, date time.Time, reference, description string, lines []dto.JournalLineRequest, creatorUserID string) (*domain.Journal, error)
}

// TransactionReaderSvc defines read operations for transaction lines.
type TransactionReaderSvc interface {
	// ListTransactionsByAccount retrieves postings for one account, newest
	// first, with running balances.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalPosterSvc
	TransactionReaderSvc
}
