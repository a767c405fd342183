package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// CalculateSignedAmount applies the correct sign to a transaction amount based
// on account type and transaction type. Used by both services and repositories
// so the convention lives in exactly one place.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := txn.Amount
	isDebit := txn.TransactionType == domain.Debit

	switch accountType {
	case domain.AccountTypeAsset, domain.AccountTypeExpense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.AccountTypeLiability, domain.AccountTypeEquity, domain.AccountTypeIncome:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, txn.AccountID)
	}
	return signedAmount, nil
}

// ValidateJournalBalance checks that a journal's transaction lines form a
// valid double entry: at least two lines, every amount strictly positive, and
// the debit sum equal to the credit sum.
func ValidateJournalBalance(transactions []domain.Transaction) error {
	if len(transactions) < 2 {
		return fmt.Errorf("journal must have at least two transaction entries")
	}

	zero := decimal.NewFromInt(0)
	debitsSum := zero
	creditsSum := zero

	for _, txn := range transactions {
		if txn.Amount.LessThanOrEqual(zero) {
			return fmt.Errorf("transaction amount must be positive for account %s", txn.AccountID)
		}

		switch txn.TransactionType {
		case domain.Debit:
			debitsSum = debitsSum.Add(txn.Amount)
		case domain.Credit:
			creditsSum = creditsSum.Add(txn.Amount)
		default:
			return fmt.Errorf("unknown transaction type '%s' for account %s", txn.TransactionType, txn.AccountID)
		}
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("journal entries do not balance: debits sum is %s and credits sum is %s",
			debitsSum.String(), creditsSum.String())
	}

	return nil
}

// Round2 rounds a monetary amount to two decimal places. Applied at every
// derivation boundary (tax, payroll) so persisted figures never carry
// sub-paisa precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
