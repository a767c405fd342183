package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate represents a tax registry row.
type TaxRate struct {
	TaxRateID string          `db:"tax_rate_id"`
	Name      string          `db:"name"`
	Rate      decimal.Decimal `db:"rate"`
	Type      string          `db:"type"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}

// TDSRecord represents a TDS deduction row.
type TDSRecord struct {
	TDSRecordID  string          `db:"tds_record_id"`
	Section      string          `db:"section"`
	DeducteeName string          `db:"deductee_name"`
	DeducteePAN  string          `db:"deductee_pan"`
	Amount       decimal.Decimal `db:"amount"`
	TDSAmount    decimal.Decimal `db:"tds_amount"`
	Rate         decimal.Decimal `db:"rate"`
	PaymentDate  time.Time       `db:"payment_date"`
	Status       string          `db:"status"`
	AuditFields
}
