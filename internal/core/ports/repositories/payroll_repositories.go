package repositories

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
)

// PayrollRepositoryFacade defines persistence operations for payroll records.
type PayrollRepositoryFacade interface {
	SavePayrollRecords(ctx context.Context, records []domain.PayrollRecord) error
	FindPayrollByID(ctx context.Context, payrollID string) (*domain.PayrollRecord, error)
	FindPayrollByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*domain.PayrollRecord, error)
	ListPayroll(ctx context.Context, month, year int) ([]domain.PayrollRecord, error)
	ListPayrollByEmployee(ctx context.Context, employeeID string) ([]domain.PayrollRecord, error)
	UpdatePayrollRecord(ctx context.Context, record domain.PayrollRecord) error
}
