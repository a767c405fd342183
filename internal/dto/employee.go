package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// CreateEmployeeRequest defines the payload for hiring an employee. New hires
// always start in Onboarding with a seeded checklist.
type CreateEmployeeRequest struct {
	FirstName   string          `json:"firstName" binding:"required"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email" binding:"required,email"`
	Designation string          `json:"designation"`
	Department  string          `json:"department"`
	ManagerID   string          `json:"managerID"`
	MonthlyCTC  decimal.Decimal `json:"monthlyCTC" binding:"required,dgt0"`
	JoinDate    *time.Time      `json:"joinDate,omitempty"`
}

// UpdateEmployeeRequest defines the mutable employee fields. Status is absent
// on purpose: status moves only through the transition endpoints.
type UpdateEmployeeRequest struct {
	FirstName   *string          `json:"firstName,omitempty"`
	LastName    *string          `json:"lastName,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Designation *string          `json:"designation,omitempty"`
	Department  *string          `json:"department,omitempty"`
	ManagerID   *string          `json:"managerID,omitempty"`
	MonthlyCTC  *decimal.Decimal `json:"monthlyCTC,omitempty"`
}

// TransitionEmployeeRequest moves an employee to a new lifecycle status.
type TransitionEmployeeRequest struct {
	Status domain.EmployeeStatus `json:"status" binding:"required"`
}

// CompleteOnboardingTaskRequest marks a checklist task done or reverts it.
// The task is addressed by path; an empty body defaults to done.
type CompleteOnboardingTaskRequest struct {
	Done *bool `json:"done,omitempty"`
}

// OffboardEmployeeRequest records an exit. Status must be Resigned or
// Terminated.
type OffboardEmployeeRequest struct {
	Status         domain.EmployeeStatus `json:"status" binding:"required,oneof=Resigned Terminated"`
	Reason         string                `json:"reason"`
	LastWorkingDay time.Time             `json:"lastWorkingDay" binding:"required"`
	Notes          string                `json:"notes"`
}

// ListEmployeesParams holds query parameters for listing employees.
type ListEmployeesParams struct {
	Status     string `form:"status"`
	Department string `form:"department"`
	Search     string `form:"search"`
}

// OnboardingTaskResponse is one checklist item.
type OnboardingTaskResponse struct {
	TaskID string `json:"taskID"`
	Title  string `json:"title"`
	Done   bool   `json:"done"`
}

// OnboardingResponse is the onboarding checklist state.
type OnboardingResponse struct {
	Tasks       []OnboardingTaskResponse `json:"tasks"`
	Complete    bool                     `json:"complete"`
	CompletedAt *time.Time               `json:"completedAt,omitempty"`
}

// ExitDetailsResponse describes an employee's exit.
type ExitDetailsResponse struct {
	Status         domain.EmployeeStatus `json:"status"`
	Reason         string                `json:"reason,omitempty"`
	LastWorkingDay time.Time             `json:"lastWorkingDay"`
	ProcessedAt    time.Time             `json:"processedAt"`
	Notes          string                `json:"notes,omitempty"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID  string                `json:"employeeID"`
	FirstName   string                `json:"firstName"`
	LastName    string                `json:"lastName,omitempty"`
	Email       string                `json:"email"`
	Designation string                `json:"designation,omitempty"`
	Department  string                `json:"department,omitempty"`
	ManagerID   string                `json:"managerID,omitempty"`
	MonthlyCTC  decimal.Decimal       `json:"monthlyCTC"`
	Status      domain.EmployeeStatus `json:"status"`
	JoinDate    time.Time             `json:"joinDate"`
	Onboarding  *OnboardingResponse   `json:"onboarding,omitempty"`
	Exit        *ExitDetailsResponse  `json:"exit,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// ToEmployeeResponse converts a domain.Employee to its response DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		EmployeeID:  e.EmployeeID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		Designation: e.Designation,
		Department:  e.Department,
		ManagerID:   e.ManagerID,
		MonthlyCTC:  e.MonthlyCTC,
		Status:      e.Status,
		JoinDate:    e.JoinDate,
		CreatedAt:   e.CreatedAt,
	}
	if len(e.Onboarding.Tasks) > 0 {
		ob := &OnboardingResponse{
			Complete:    e.Onboarding.AllTasksDone(),
			CompletedAt: e.Onboarding.CompletedAt,
		}
		ob.Tasks = make([]OnboardingTaskResponse, len(e.Onboarding.Tasks))
		for i, t := range e.Onboarding.Tasks {
			ob.Tasks[i] = OnboardingTaskResponse{TaskID: t.TaskID, Title: t.Title, Done: t.Done}
		}
		resp.Onboarding = ob
	}
	if e.Exit != nil {
		resp.Exit = &ExitDetailsResponse{
			Status:         e.Exit.Status,
			Reason:         e.Exit.Reason,
			LastWorkingDay: e.Exit.LastWorkingDay,
			ProcessedAt:    e.Exit.ProcessedAt,
			Notes:          e.Exit.Notes,
		}
	}
	return resp
}

// ToEmployeeResponses converts a slice of employees.
func ToEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = ToEmployeeResponse(&employees[i])
	}
	return responses
}
