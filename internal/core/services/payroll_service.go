package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zenerp/erp_backend/internal/apperrors"
	"github.com/zenerp/erp_backend/internal/core/domain"
	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/dto"
	"github.com/zenerp/erp_backend/internal/middleware"
	"github.com/zenerp/erp_backend/internal/utils/accounting"
)

// Pay structure ratios. Basic is half of monthly CTC, allowances thirty
// percent; the statutory deduction is PF on basic plus flat professional tax.
var (
	basicRatio       = decimal.NewFromFloat(0.50)
	allowanceRatio   = decimal.NewFromFloat(0.30)
	pfRate           = decimal.NewFromFloat(0.12)
	professionalTax  = decimal.NewFromInt(200)
	daysPerPayPeriod = decimal.NewFromInt(30)
)

// payrollService generates and processes monthly payroll. Generation is
// deterministic from the employee's CTC and the month's absence count, and
// rerunning a period never duplicates records.
type payrollService struct {
	payrollRepo    portsrepo.PayrollRepositoryFacade
	employeeRepo   portsrepo.EmployeeRepositoryFacade
	attendanceRepo portsrepo.AttendanceRepositoryFacade
}

// NewPayrollService creates a new payroll service.
func NewPayrollService(payrollRepo portsrepo.PayrollRepositoryFacade, employeeRepo portsrepo.EmployeeRepositoryFacade, attendanceRepo portsrepo.AttendanceRepositoryFacade) portssvc.PayrollSvcFacade {
	return &payrollService{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// payrollEligible reports whether an employee draws salary for a period.
// Onboarding hires and exited employees are excluded.
func payrollEligible(status domain.EmployeeStatus) bool {
	switch status {
	case domain.StatusProbation, domain.StatusActive, domain.StatusNoticePeriod:
		return true
	}
	return false
}

// GeneratePayroll creates pending records for the period. An explicit
// EmployeeIDs list restricts the run to those employees; otherwise every
// eligible employee is covered. Employees that already have a record for the
// period are counted as skipped, never regenerated, so a rerun after a
// partial failure only fills the gaps.
func (s *payrollService) GeneratePayroll(ctx context.Context, req dto.GeneratePayrollRequest, requestingUserID string) (*dto.GeneratePayrollResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	month, year := req.Month, req.Year
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be 1-12, got %d", apperrors.ErrValidation, month)
	}

	employees, err := s.resolveRunEmployees(ctx, req.EmployeeIDs)
	if err != nil {
		logger.Error("Failed to resolve employees for payroll", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	var newRecords []domain.PayrollRecord
	skipped := 0

	for i := range employees {
		emp := employees[i]
		if !payrollEligible(emp.Status) {
			continue
		}

		existing, err := s.payrollRepo.FindPayrollByEmployeeAndPeriod(ctx, emp.EmployeeID, month, year)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to check existing payroll", slog.String("error", err.Error()), slog.String("employee_id", emp.EmployeeID))
			return nil, fmt.Errorf("failed to check existing payroll: %w", err)
		}
		if existing != nil {
			skipped++
			continue
		}

		absences, err := s.attendanceRepo.CountAbsences(ctx, emp.EmployeeID, month, year)
		if err != nil {
			logger.Error("Failed to count absences", slog.String("error", err.Error()), slog.String("employee_id", emp.EmployeeID))
			return nil, fmt.Errorf("failed to count absences: %w", err)
		}

		record := buildPayrollRecord(emp, month, year, absences, requestingUserID, now)
		newRecords = append(newRecords, record)
	}

	if len(newRecords) > 0 {
		if err := s.payrollRepo.SavePayrollRecords(ctx, newRecords); err != nil {
			logger.Error("Failed to save payroll records", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save payroll records: %w", err)
		}
	}

	logger.Info("Payroll generated",
		slog.Int("month", month),
		slog.Int("year", year),
		slog.Int("generated", len(newRecords)),
		slog.Int("skipped", skipped),
	)
	return &dto.GeneratePayrollResponse{
		Generated: len(newRecords),
		Skipped:   skipped,
		Records:   dto.ToPayrollRecordResponses(newRecords),
	}, nil
}

// resolveRunEmployees loads the employees a payroll run covers. Explicitly
// named employees must all exist; an unknown ID fails the run before any
// record is written.
func (s *payrollService) resolveRunEmployees(ctx context.Context, employeeIDs []string) ([]domain.Employee, error) {
	if len(employeeIDs) == 0 {
		employees, err := s.employeeRepo.ListEmployees(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		return employees, nil
	}

	byID, err := s.employeeRepo.FindEmployeesByIDs(ctx, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find employees: %w", err)
	}
	employees := make([]domain.Employee, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		emp, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, id)
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

// buildPayrollRecord derives one employee's pay for the period. Loss of pay
// is one thirtieth of CTC per absent day; net pay floors at zero.
func buildPayrollRecord(emp domain.Employee, month, year, absences int, userID string, now time.Time) domain.PayrollRecord {
	basic := accounting.Round2(emp.MonthlyCTC.Mul(basicRatio))
	allowances := accounting.Round2(emp.MonthlyCTC.Mul(allowanceRatio))
	deductions := accounting.Round2(basic.Mul(pfRate)).Add(professionalTax)
	lossOfPay := accounting.Round2(emp.MonthlyCTC.Div(daysPerPayPeriod).Mul(decimal.NewFromInt(int64(absences))))

	netPay := basic.Add(allowances).Sub(deductions).Sub(lossOfPay)
	if netPay.LessThan(decimal.Zero) {
		netPay = decimal.Zero
	}

	return domain.PayrollRecord{
		PayrollID:    uuid.NewString(),
		EmployeeID:   emp.EmployeeID,
		EmployeeName: fmt.Sprintf("%s %s", emp.FirstName, emp.LastName),
		Month:        month,
		Year:         year,
		BasicPay:     basic,
		Allowances:   allowances,
		Deductions:   deductions,
		LossOfPay:    lossOfPay,
		NetPay:       accounting.Round2(netPay),
		Status:       domain.PayrollPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// ProcessPayroll marks a pending record paid. A second call returns the
// record unchanged, keeping the original processed date.
func (s *payrollService) ProcessPayroll(ctx context.Context, payrollID string, requestingUserID string) (*domain.PayrollRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.payrollRepo.FindPayrollByID(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	if record.Status == domain.PayrollPaid {
		return record, nil
	}

	now := time.Now().UTC()
	record.Status = domain.PayrollPaid
	record.ProcessedDate = &now
	record.LastUpdatedAt = now
	record.LastUpdatedBy = requestingUserID

	if err := s.payrollRepo.UpdatePayrollRecord(ctx, *record); err != nil {
		logger.Error("Failed to process payroll", slog.String("error", err.Error()), slog.String("payroll_id", payrollID))
		return nil, fmt.Errorf("failed to process payroll: %w", err)
	}

	logger.Info("Payroll processed", slog.String("payroll_id", payrollID), slog.String("net_pay", record.NetPay.String()))
	return record, nil
}

// ListPayroll retrieves payroll records, filtered by period or employee.
func (s *payrollService) ListPayroll(ctx context.Context, params dto.ListPayrollParams) ([]domain.PayrollRecord, error) {
	if params.EmployeeID != "" {
		records, err := s.payrollRepo.ListPayrollByEmployee(ctx, params.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to list payroll: %w", err)
		}
		return filterPayrollByStatus(records, params.Status), nil
	}

	records, err := s.payrollRepo.ListPayroll(ctx, params.Month, params.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll: %w", err)
	}
	return filterPayrollByStatus(records, params.Status), nil
}

func filterPayrollByStatus(records []domain.PayrollRecord, status string) []domain.PayrollRecord {
	if status == "" {
		return records
	}
	filtered := records[:0:0]
	for _, r := range records {
		if string(r.Status) == status {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GetPayrollByID retrieves a specific payroll record.
func (s *payrollService) GetPayrollByID(ctx context.Context, payrollID string) (*domain.PayrollRecord, error) {
	record, err := s.payrollRepo.FindPayrollByID(ctx, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll record %s: %w", payrollID, err)
	}
	return record, nil
}
