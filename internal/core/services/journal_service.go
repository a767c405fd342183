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
	ErrJournalUnbalanced  = errors.New("journal entries do not balance")
	ErrJournalMinEntries  = errors.New("journal must have at least two transaction entries")
	ErrJournalMinAccounts = errors.New("journal must affect at least two different accounts")
	ErrLineAmountInvalid  = errors.New("journal line must have exactly one positive side")
	ErrDescriptionMissing = errors.New("journal description is required")
)

// journalService is the posting engine: every balance mutation in the system
// funnels through it, whether it originates from a manual journal, an invoice
// payment or a POS sale.
type journalService struct {
	accountSvc  portssvc.AccountSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal validates and posts a caller-supplied journal entry.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w", ErrDescriptionMissing)
	}
	return s.PostJournal(ctx, req.Date, req.Reference, req.Description, req.Entries, creatorUserID)
}

// PostJournal posts debit/credit lines against named ledger accounts. It
// resolves names, validates the double entry, computes per-account balance
// deltas and persists everything atomically. Unknown account names fail the
// whole entry before any mutation.
func (s *journalService) PostJournal(ctx context.Context, date time.Time, reference, description string, lines []dto.JournalLineRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(lines) < 2 {
		return nil, ErrJournalMinEntries
	}

	accountNames := make([]string, 0, len(lines))
	nameSet := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !nameSet[line.Account] {
			nameSet[line.Account] = true
			accountNames = append(accountNames, line.Account)
		}
	}
	if len(accountNames) < 2 {
		return nil, ErrJournalMinAccounts
	}

	// Resolve names first so a bad account rejects the posting up front.
	accountsMap, err := s.accountSvc.ResolveAccountsByNames(ctx, accountNames)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	transactions := make([]domain.Transaction, len(lines))
	for i, line := range lines {
		amount, txnType, err := lineAmountAndType(line)
		if err != nil {
			return nil, err
		}
		account := accountsMap[line.Account]
		transactions[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       account.AccountID,
			Amount:          amount,
			TransactionType: txnType,
			Description:     line.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
			// RunningBalance is computed by the repository under the row lock.
		}
	}

	if err := accounting.ValidateJournalBalance(transactions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJournalUnbalanced, err)
	}

	balanceChanges, err := s.balanceChangesFor(transactions, accountsByID(accountsMap))
	if err != nil {
		logger.Error("Failed to compute balance changes", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	journal := domain.Journal{
		JournalID:   journalID,
		JournalDate: date,
		Reference:   reference,
		Description: description,
		Status:      domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, transactions, balanceChanges); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal posted", slog.String("journal_id", journalID), slog.Int("lines", len(transactions)))
	journal.Transactions = transactions
	return &journal, nil
}

// GetJournalByID retrieves a journal with its transaction lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch journal transactions", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve transactions for journal %s: %w", journalID, apperrors.ErrInternal)
	}
	journal.Transactions = transactions

	return journal, nil
}

// ListJournals retrieves a paginated list of journals, newest first.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	responses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		responses[i] = dto.ToJournalResponse(&journals[i])
	}

	return &dto.ListJournalsResponse{Journals: responses, NextToken: nextToken}, nil
}

// ListTransactionsByAccount retrieves postings for one account with running
// balances, newest first.
func (s *journalService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	transactions, nextToken, err := s.journalRepo.ListTransactionsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions by account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// ReverseJournal posts a mirror-image journal for a posted entry and marks the
// original as reversed. Reversing a reversal or an already-reversed journal is
// a conflict.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string, requestingUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}
	if original.OriginalJournalID != nil {
		return nil, fmt.Errorf("%w: cannot reverse a journal that is itself a reversal", apperrors.ErrConflict)
	}

	originalTxns, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch transactions for reversal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve original transactions: %w", err)
	}

	now := time.Now().UTC()
	newJournalID := uuid.NewString()

	accountIDs := make([]string, 0, len(originalTxns))
	reversingTxns := make([]domain.Transaction, len(originalTxns))
	for i, orig := range originalTxns {
		accountIDs = append(accountIDs, orig.AccountID)
		flipped := domain.Credit
		if orig.TransactionType == domain.Credit {
			flipped = domain.Debit
		}
		reversingTxns[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       newJournalID,
			AccountID:       orig.AccountID,
			Amount:          orig.Amount,
			TransactionType: flipped,
			Description:     orig.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
	}

	accountTypes := make(map[string]domain.Account, len(accountIDs))
	for _, id := range uniqueStrings(accountIDs) {
		acc, err := s.accountSvc.GetAccountByID(ctx, id)
		if err != nil {
			logger.Error("Failed to fetch account for reversal", slog.String("error", err.Error()), slog.String("account_id", id))
			return nil, fmt.Errorf("failed to get account details for reversal: %w", err)
		}
		accountTypes[id] = *acc
	}

	balanceChanges, err := s.balanceChangesFor(reversingTxns, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate reversal balance changes: %w", err)
	}

	reversing := domain.Journal{
		JournalID:         newJournalID,
		JournalDate:       original.JournalDate,
		Reference:         original.Reference,
		Description:       reversalDescription(original.Description),
		Status:            domain.Posted,
		OriginalJournalID: &original.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, reversing, reversingTxns, balanceChanges); err != nil {
		logger.Error("Failed to save reversing journal", slog.String("error", err.Error()), slog.String("journal_id", newJournalID))
		return nil, fmt.Errorf("failed to save reversing journal: %w", err)
	}

	if err := s.journalRepo.UpdateJournalStatusAndLinks(ctx, original.JournalID, domain.Reversed, &newJournalID, requestingUserID, now); err != nil {
		logger.Error("Failed to mark original journal reversed", slog.String("error", err.Error()), slog.String("journal_id", original.JournalID))
		return nil, fmt.Errorf("failed to update original journal status: %w", err)
	}

	logger.Info("Journal reversed", slog.String("original_journal_id", original.JournalID), slog.String("reversing_journal_id", newJournalID))
	reversing.Transactions = reversingTxns
	return &reversing, nil
}

// balanceChangesFor nets the signed amounts of each transaction into a
// per-account delta map.
func (s *journalService) balanceChangesFor(transactions []domain.Transaction, accountsByID map[string]domain.Account) (map[string]decimal.Decimal, error) {
	balanceChanges := make(map[string]decimal.Decimal)
	for _, txn := range transactions {
		account, ok := accountsByID[txn.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s missing during balance calculation", txn.AccountID)
		}
		signedAmount, err := accounting.CalculateSignedAmount(txn, account.AccountType)
		if err != nil {
			return nil, err
		}
		balanceChanges[txn.AccountID] = balanceChanges[txn.AccountID].Add(signedAmount)
	}
	return balanceChanges, nil
}

// lineAmountAndType extracts the positive amount and the transaction type
// from a debit/credit line. Exactly one side must be positive.
func lineAmountAndType(line dto.JournalLineRequest) (decimal.Decimal, domain.TransactionType, error) {
	debitSet := line.Debit.GreaterThan(decimal.Zero)
	creditSet := line.Credit.GreaterThan(decimal.Zero)
	if debitSet == creditSet {
		return decimal.Zero, "", fmt.Errorf("%w: account %q", ErrLineAmountInvalid, line.Account)
	}
	if line.Debit.LessThan(decimal.Zero) || line.Credit.LessThan(decimal.Zero) {
		return decimal.Zero, "", fmt.Errorf("%w: account %q", ErrLineAmountInvalid, line.Account)
	}
	if debitSet {
		return line.Debit, domain.Debit, nil
	}
	return line.Credit, domain.Credit, nil
}

// accountsByID rekeys a name-keyed account map by account ID.
func accountsByID(byName map[string]domain.Account) map[string]domain.Account {
	byID := make(map[string]domain.Account, len(byName))
	for _, acc := range byName {
		byID[acc.AccountID] = acc
	}
	return byID
}

// reversalDescription labels a reversing entry after its original.
func reversalDescription(original string) string {
	if strings.HasPrefix(original, "Reversal of: ") {
		return original
	}
	return "Reversal of: " + original
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
