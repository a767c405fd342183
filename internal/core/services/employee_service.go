package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zenerp/erp_backend/internal/apperrors"
	"github.com/zenerp/erp_backend/internal/core/domain"
	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/dto"
	"github.com/zenerp/erp_backend/internal/middleware"
)

// employeeService owns the employee lifecycle: hiring, the onboarding
// checklist, status transitions and offboarding. Terminal statuses are
// reachable only through OffboardEmployee.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// CreateEmployee hires an employee. New hires start in Onboarding with the
// seeded checklist; a manager reference is validated to exist.
func (s *employeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ManagerID != "" {
		if _, err := s.employeeRepo.FindEmployeeByID(ctx, req.ManagerID); err != nil {
			return nil, fmt.Errorf("failed to resolve manager %s: %w", req.ManagerID, err)
		}
	}

	now := time.Now().UTC()
	joinDate := now
	if req.JoinDate != nil {
		joinDate = *req.JoinDate
	}

	employee := domain.Employee{
		EmployeeID:  uuid.NewString(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Department:  req.Department,
		Designation: req.Designation,
		ManagerID:   req.ManagerID,
		MonthlyCTC:  req.MonthlyCTC,
		Status:      domain.StatusOnboarding,
		JoinDate:    joinDate,
		Onboarding:  domain.NewOnboardingChecklist(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		logger.Error("Failed to save employee", slog.String("error", err.Error()), slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID), slog.String("status", string(employee.Status)))
	return &employee, nil
}

// GetEmployeeByID retrieves a specific employee.
func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// ListEmployees retrieves employees matching the filter.
func (s *employeeService) ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.Employee, error) {
	employees, err := s.employeeRepo.ListEmployees(ctx, domain.EmployeeStatus(params.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	if params.Department == "" && params.Search == "" {
		return employees, nil
	}

	search := strings.ToLower(params.Search)
	filtered := employees[:0:0]
	for _, e := range employees {
		if params.Department != "" && e.Department != params.Department {
			continue
		}
		if search != "" {
			name := strings.ToLower(e.FirstName + " " + e.LastName)
			if !strings.Contains(name, search) && !strings.Contains(strings.ToLower(e.Email), search) {
				continue
			}
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

// UpdateEmployee updates mutable fields. Setting an employee as their own
// manager clears the reference instead of persisting the cycle.
func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, requestingUserID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
		updated = true
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
		updated = true
	}
	if req.Email != nil {
		employee.Email = *req.Email
		updated = true
	}
	if req.Designation != nil {
		employee.Designation = *req.Designation
		updated = true
	}
	if req.Department != nil {
		employee.Department = *req.Department
		updated = true
	}
	if req.ManagerID != nil {
		managerID := *req.ManagerID
		if managerID == employeeID {
			managerID = ""
		} else if managerID != "" {
			if _, err := s.employeeRepo.FindEmployeeByID(ctx, managerID); err != nil {
				return nil, fmt.Errorf("failed to resolve manager %s: %w", managerID, err)
			}
		}
		employee.ManagerID = managerID
		updated = true
	}
	if req.MonthlyCTC != nil {
		employee.MonthlyCTC = *req.MonthlyCTC
		updated = true
	}
	if !updated {
		return employee, nil
	}

	employee.LastUpdatedAt = time.Now().UTC()
	employee.LastUpdatedBy = requestingUserID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		logger.Error("Failed to update employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// TransitionEmployee moves an employee along an allowed lifecycle edge.
// Transitions into terminal statuses are rejected here; offboarding is the
// only path into Resigned or Terminated.
func (s *employeeService) TransitionEmployee(ctx context.Context, employeeID string, to domain.EmployeeStatus, requestingUserID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if to.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is reached through offboarding, not a direct transition", apperrors.ErrBusinessRule, to)
	}
	if !domain.CanTransition(employee.Status, to) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", apperrors.ErrBusinessRule, employee.Status, to)
	}

	employee.Status = to
	employee.LastUpdatedAt = time.Now().UTC()
	employee.LastUpdatedBy = requestingUserID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		logger.Error("Failed to transition employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to transition employee: %w", err)
	}

	logger.Info("Employee transitioned", slog.String("employee_id", employeeID), slog.String("status", string(to)))
	return employee, nil
}

// CompleteOnboardingTask marks a checklist task done or reverts it. When the
// last task completes the checklist records its completion time; reverting
// any task clears it again.
func (s *employeeService) CompleteOnboardingTask(ctx context.Context, employeeID string, taskID string, done bool, requestingUserID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.Status != domain.StatusOnboarding {
		return nil, fmt.Errorf("%w: employee is not onboarding", apperrors.ErrBusinessRule)
	}

	found := false
	for i := range employee.Onboarding.Tasks {
		if employee.Onboarding.Tasks[i].TaskID == taskID {
			employee.Onboarding.Tasks[i].Done = done
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: onboarding task %q", apperrors.ErrNotFound, taskID)
	}

	now := time.Now().UTC()
	if employee.Onboarding.AllTasksDone() {
		if employee.Onboarding.CompletedAt == nil {
			employee.Onboarding.CompletedAt = &now
		}
	} else {
		employee.Onboarding.CompletedAt = nil
	}

	employee.LastUpdatedAt = now
	employee.LastUpdatedBy = requestingUserID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		logger.Error("Failed to update onboarding task", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update onboarding task: %w", err)
	}

	logger.Info("Onboarding task updated",
		slog.String("employee_id", employeeID),
		slog.String("task_id", taskID),
		slog.Bool("done", done),
		slog.Bool("checklist_complete", employee.Onboarding.AllTasksDone()),
	)
	return employee, nil
}

// CompleteOnboarding is the override path out of onboarding: every checklist
// task is force-marked done, the completion time is stamped and the employee
// goes straight to Active, open tasks or not.
func (s *employeeService) CompleteOnboarding(ctx context.Context, employeeID string, requestingUserID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.Status != domain.StatusOnboarding {
		return nil, fmt.Errorf("%w: employee is not onboarding", apperrors.ErrBusinessRule)
	}

	now := time.Now().UTC()
	for i := range employee.Onboarding.Tasks {
		employee.Onboarding.Tasks[i].Done = true
	}
	employee.Onboarding.CompletedAt = &now
	employee.Status = domain.StatusActive
	employee.LastUpdatedAt = now
	employee.LastUpdatedBy = requestingUserID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		logger.Error("Failed to complete onboarding", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	logger.Info("Onboarding completed", slog.String("employee_id", employeeID))
	return employee, nil
}

// OffboardEmployee records an exit and moves the employee into a terminal
// status. Termination is allowed from any non-terminal status; resignation
// only once the employee has cleared onboarding. Offboarding an already
// exited employee is a conflict.
func (s *employeeService) OffboardEmployee(ctx context.Context, employeeID string, req dto.OffboardEmployeeRequest, requestingUserID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if employee.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: employee already exited with status %s", apperrors.ErrConflict, employee.Status)
	}
	if !req.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: offboarding status must be %s or %s", apperrors.ErrValidation, domain.StatusResigned, domain.StatusTerminated)
	}
	if req.Status == domain.StatusResigned && employee.Status == domain.StatusOnboarding {
		return nil, fmt.Errorf("%w: an onboarding hire cannot resign; terminate instead", apperrors.ErrBusinessRule)
	}

	now := time.Now().UTC()
	employee.Status = req.Status
	employee.Exit = &domain.ExitDetails{
		Status:         req.Status,
		Reason:         req.Reason,
		LastWorkingDay: req.LastWorkingDay,
		ProcessedAt:    now,
		Notes:          req.Notes,
	}
	employee.LastUpdatedAt = now
	employee.LastUpdatedBy = requestingUserID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		logger.Error("Failed to offboard employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to offboard employee: %w", err)
	}

	logger.Info("Employee offboarded",
		slog.String("employee_id", employeeID),
		slog.String("status", string(req.Status)),
	)
	return employee, nil
}
