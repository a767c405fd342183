package models

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// Journal represents a journal row. Reversal links are nullable.
type Journal struct {
	JournalID          string        `db:"journal_id"`
	JournalDate        time.Time     `db:"journal_date"`
	Reference          string        `db:"reference"`
	Description        string        `db:"description"`
	Status             JournalStatus `db:"status"`
	OriginalJournalID  *string       `db:"original_journal_id"`
	ReversingJournalID *string       `db:"reversing_journal_id"`
	AuditFields
}
