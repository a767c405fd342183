package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is an entry in the global tax registry.
type TaxRate struct {
	TaxRateID string          `json:"taxRateID"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	Type      string          `json:"type"` // GST, TDS, Cess
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// TDSStatus is the state of a TDS deposit.
type TDSStatus string

const (
	TDSPending   TDSStatus = "pending"
	TDSDeposited TDSStatus = "deposited"
)

// TDSRecord is tax deducted at source against a vendor payment.
type TDSRecord struct {
	TDSRecordID  string          `json:"tdsRecordID"`
	Section      string          `json:"section"` // e.g. 194C, 194J
	DeducteeName string          `json:"deducteeName"`
	DeducteePAN  string          `json:"deducteePan"`
	Amount       decimal.Decimal `json:"amount"`    // base payment amount
	TDSAmount    decimal.Decimal `json:"tdsAmount"` // deducted tax
	Rate         decimal.Decimal `json:"rate"`
	PaymentDate  time.Time       `json:"paymentDate"`
	Status       TDSStatus       `json:"status"`
	AuditFields
}
