package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// GeneratePayrollRequest selects the payroll run period. Months are 1-12.
// When EmployeeIDs is present the run covers only those employees; otherwise
// every payroll-eligible employee is included.
type GeneratePayrollRequest struct {
	Month       int      `json:"month" binding:"required,min=1,max=12"`
	Year        int      `json:"year" binding:"required,min=2000"`
	EmployeeIDs []string `json:"employeeIDs,omitempty"`
}

// ProcessPayrollRequest marks a pending record as paid.
type ProcessPayrollRequest struct {
	ProcessedDate *time.Time `json:"processedDate,omitempty"`
}

// ListPayrollParams holds query parameters for listing payroll records.
type ListPayrollParams struct {
	Month      int    `form:"month"`
	Year       int    `form:"year"`
	EmployeeID string `form:"employeeID"`
	Status     string `form:"status"`
}

// PayrollRecordResponse defines the data returned for a payroll record.
type PayrollRecordResponse struct {
	PayrollID     string               `json:"payrollID"`
	EmployeeID    string               `json:"employeeID"`
	EmployeeName  string               `json:"employeeName"`
	Month         int                  `json:"month"`
	Year          int                  `json:"year"`
	BasicPay      decimal.Decimal      `json:"basicPay"`
	Allowances    decimal.Decimal      `json:"allowances"`
	Deductions    decimal.Decimal      `json:"deductions"`
	LossOfPay     decimal.Decimal      `json:"lossOfPay"`
	NetPay        decimal.Decimal      `json:"netPay"`
	Status        domain.PayrollStatus `json:"status"`
	ProcessedDate *time.Time           `json:"processedDate,omitempty"`
}

// GeneratePayrollResponse reports the outcome of a payroll run.
type GeneratePayrollResponse struct {
	Generated int                     `json:"generated"`
	Skipped   int                     `json:"skipped"`
	Records   []PayrollRecordResponse `json:"records"`
}

// ToPayrollRecordResponse converts a domain.PayrollRecord to its response DTO.
func ToPayrollRecordResponse(r *domain.PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		PayrollID:     r.PayrollID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		Month:         r.Month,
		Year:          r.Year,
		BasicPay:      r.BasicPay,
		Allowances:    r.Allowances,
		Deductions:    r.Deductions,
		LossOfPay:     r.LossOfPay,
		NetPay:        r.NetPay,
		Status:        r.Status,
		ProcessedDate: r.ProcessedDate,
	}
}

// ToPayrollRecordResponses converts a slice of payroll records.
func ToPayrollRecordResponses(records []domain.PayrollRecord) []PayrollRecordResponse {
	responses := make([]PayrollRecordResponse, len(records))
	for i := range records {
		responses[i] = ToPayrollRecordResponse(&records[i])
	}
	return responses
}
