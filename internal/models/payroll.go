package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRecord represents one employee's pay for one period.
type PayrollRecord struct {
	PayrollID     string          `db:"payroll_id"`
	EmployeeID    string          `db:"employee_id"`
	EmployeeName  string          `db:"employee_name"`
	Month         int             `db:"month"`
	Year          int             `db:"year"`
	BasicPay      decimal.Decimal `db:"basic_pay"`
	Allowances    decimal.Decimal `db:"allowances"`
	Deductions    decimal.Decimal `db:"deductions"`
	LossOfPay     decimal.Decimal `db:"loss_of_pay"`
	NetPay        decimal.Decimal `db:"net_pay"`
	Status        string          `db:"status"`
	ProcessedDate *time.Time      `db:"processed_date"`
	AuditFields
}
