package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus is the state of a payroll record. The transition is one-way:
// Pending -> Paid.
type PayrollStatus string

const (
	PayrollPending PayrollStatus = "Pending"
	PayrollPaid    PayrollStatus = "Paid"
)

// PayrollRecord is one employee's pay for one period.
// Invariant: NetPay = BasicPay + Allowances - Deductions - LossOfPay, floored
// at zero.
type PayrollRecord struct {
	PayrollID     string          `json:"payrollID"`
	EmployeeID    string          `json:"employeeID"`
	EmployeeName  string          `json:"employeeName"` // denormalized at generation time
	Month         int             `json:"month"`        // 1-12
	Year          int             `json:"year"`
	BasicPay      decimal.Decimal `json:"basicPay"`
	Allowances    decimal.Decimal `json:"allowances"`
	Deductions    decimal.Decimal `json:"deductions"`
	LossOfPay     decimal.Decimal `json:"lossOfPay"`
	NetPay        decimal.Decimal `json:"netPay"`
	Status        PayrollStatus   `json:"status"`
	ProcessedDate *time.Time      `json:"processedDate,omitempty"`
	AuditFields
}
