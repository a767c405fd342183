package domain

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple
// transaction lines. Journals are immutable once posted; corrections happen
// through reversal entries.
type Journal struct {
	JournalID          string        `json:"journalID"`
	JournalDate        time.Time     `json:"journalDate"`
	Reference          string        `json:"reference"` // external document reference, e.g. invoice number
	Description        string        `json:"description"`
	Status             JournalStatus `json:"status"`
	OriginalJournalID  *string       `json:"originalJournalID,omitempty"`  // set on reversal entries
	ReversingJournalID *string       `json:"reversingJournalID,omitempty"` // set on reversed originals
	Transactions       []Transaction `json:"transactions,omitempty"`
	AuditFields
}
