package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/utils/accounting"
)

func txn(txnType domain.TransactionType, amount int64) domain.Transaction {
	return domain.Transaction{
		AccountID:       "acc-1",
		Amount:          decimal.NewFromInt(amount),
		TransactionType: txnType,
	}
}

func TestCalculateSignedAmount(t *testing.T) {
	testCases := []struct {
		name        string
		accountType domain.AccountType
		txnType     domain.TransactionType
		expected    int64
	}{
		{"debit to asset is positive", domain.AccountTypeAsset, domain.Debit, 100},
		{"credit to asset is negative", domain.AccountTypeAsset, domain.Credit, -100},
		{"debit to expense is positive", domain.AccountTypeExpense, domain.Debit, 100},
		{"credit to expense is negative", domain.AccountTypeExpense, domain.Credit, -100},
		{"debit to liability is negative", domain.AccountTypeLiability, domain.Debit, -100},
		{"credit to liability is positive", domain.AccountTypeLiability, domain.Credit, 100},
		{"debit to income is negative", domain.AccountTypeIncome, domain.Debit, -100},
		{"credit to income is positive", domain.AccountTypeIncome, domain.Credit, 100},
		{"debit to equity is negative", domain.AccountTypeEquity, domain.Debit, -100},
		{"credit to equity is positive", domain.AccountTypeEquity, domain.Credit, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			signed, err := accounting.CalculateSignedAmount(txn(tc.txnType, 100), tc.accountType)
			assert.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tc.expected).Equal(signed), "expected %d, got %s", tc.expected, signed)
		})
	}
}

func TestCalculateSignedAmountUnknownType(t *testing.T) {
	_, err := accounting.CalculateSignedAmount(txn(domain.Debit, 100), domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestValidateJournalBalance(t *testing.T) {
	t.Run("balanced journal passes", func(t *testing.T) {
		err := accounting.ValidateJournalBalance([]domain.Transaction{
			txn(domain.Debit, 500),
			txn(domain.Credit, 500),
		})
		assert.NoError(t, err)
	})

	t.Run("balanced multi-line journal passes", func(t *testing.T) {
		err := accounting.ValidateJournalBalance([]domain.Transaction{
			txn(domain.Debit, 300),
			txn(domain.Debit, 200),
			txn(domain.Credit, 500),
		})
		assert.NoError(t, err)
	})

	t.Run("unbalanced journal rejected", func(t *testing.T) {
		err := accounting.ValidateJournalBalance([]domain.Transaction{
			txn(domain.Debit, 500),
			txn(domain.Credit, 400),
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "do not balance")
	})

	t.Run("single line rejected", func(t *testing.T) {
		err := accounting.ValidateJournalBalance([]domain.Transaction{txn(domain.Debit, 500)})
		assert.Error(t, err)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		err := accounting.ValidateJournalBalance([]domain.Transaction{
			txn(domain.Debit, 0),
			txn(domain.Credit, 0),
		})
		assert.Error(t, err)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		err := accounting.ValidateJournalBalance([]domain.Transaction{
			txn(domain.Debit, -100),
			txn(domain.Credit, -100),
		})
		assert.Error(t, err)
	})
}

func TestRound2(t *testing.T) {
	v, _ := decimal.NewFromString("123.4567")
	assert.Equal(t, "123.46", accounting.Round2(v).StringFixed(2))

	v, _ = decimal.NewFromString("0.005")
	assert.Equal(t, "0.01", accounting.Round2(v).StringFixed(2))
}
