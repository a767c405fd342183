package services

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/dto"
)

// EmployeeReaderSvc defines read operations for employees.
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves a specific employee.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves employees matching the filter.
	ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for employees.
type EmployeeWriterSvc interface {
	// CreateEmployee hires an employee: status Onboarding, checklist seeded.
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error)

	// UpdateEmployee updates mutable employee fields. A manager reference to
	// the employee themselves is cleared.
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, requestingUserID string) (*domain.Employee, error)

	// TransitionEmployee moves an employee along an allowed lifecycle edge.
	TransitionEmployee(ctx context.Context, employeeID string, to domain.EmployeeStatus, requestingUserID string) (*domain.Employee, error)

	// CompleteOnboardingTask marks (or reverts) a checklist task.
	CompleteOnboardingTask(ctx context.Context, employeeID string, taskID string, done bool, requestingUserID string) (*domain.Employee, error)

	// CompleteOnboarding force-completes the whole checklist and activates the
	// employee, even when tasks are still open.
	CompleteOnboarding(ctx context.Context, employeeID string, requestingUserID string) (*domain.Employee, error)

	// OffboardEmployee records an exit, the only path into a terminal status.
	OffboardEmployee(ctx context.Context, employeeID string, req dto.OffboardEmployeeRequest, requestingUserID string) (*domain.Employee, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces.
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}
