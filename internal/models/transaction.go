package models

import (
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a line is a debit or a credit.
type TransactionType string

// Transaction represents a journal line row.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	JournalID       string          `db:"journal_id"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType TransactionType `db:"transaction_type"`
	Description     string          `db:"description"`
	RunningBalance  decimal.Decimal `db:"running_balance"`
	AuditFields
}
