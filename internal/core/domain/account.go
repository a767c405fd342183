package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of a ledger account.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Account represents a ledger account with a running balance.
// Balances are mutated exclusively by journal postings; the update path only
// touches name, description and the active flag.
type Account struct {
	AccountID   string          `json:"accountID"`
	Name        string          `json:"name"` // unique ledger name, e.g. "Bank", "Sales Revenue"
	AccountType AccountType     `json:"accountType"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
