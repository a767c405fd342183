package services

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/dto"
)

// PayrollSvcFacade defines payroll generation and processing.
type PayrollSvcFacade interface {
	// GeneratePayroll creates pending records for the period: for the
	// explicitly requested employees, or for every payroll-eligible employee
	// when none are named. Employees that already have a record for the
	// period are skipped, so reruns are safe.
	GeneratePayroll(ctx context.Context, req dto.GeneratePayrollRequest, requestingUserID string) (*dto.GeneratePayrollResponse, error)

	// ProcessPayroll marks a pending record paid. Processing a paid record
	// again is a no-op that preserves the original processed date.
	ProcessPayroll(ctx context.Context, payrollID string, requestingUserID string) (*domain.PayrollRecord, error)

	// ListPayroll retrieves payroll records, optionally filtered by period.
	ListPayroll(ctx context.Context, params dto.ListPayrollParams) ([]domain.PayrollRecord, error)

	// GetPayrollByID retrieves a specific payroll record.
	GetPayrollByID(ctx context.Context, payrollID string) (*domain.PayrollRecord, error)
}
