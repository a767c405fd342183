package repositories

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
)

// EmployeeRepositoryFacade defines persistence operations for employees.
type EmployeeRepositoryFacade interface {
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	FindEmployeesByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error)
	ListEmployees(ctx context.Context, status domain.EmployeeStatus) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
}
