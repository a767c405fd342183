package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeStatus is a state in the employee lifecycle.
type EmployeeStatus string

const (
	StatusOnboarding   EmployeeStatus = "Onboarding"
	StatusProbation    EmployeeStatus = "Probation"
	StatusActive       EmployeeStatus = "Active"
	StatusNoticePeriod EmployeeStatus = "Notice Period"
	StatusResigned     EmployeeStatus = "Resigned"
	StatusTerminated   EmployeeStatus = "Terminated"
)

// allowedTransitions is the lifecycle edge table. Terminal states have no
// outgoing edges; they are reachable only through the offboarding path.
var allowedTransitions = map[EmployeeStatus][]EmployeeStatus{
	StatusOnboarding:   {StatusProbation, StatusActive},
	StatusProbation:    {StatusActive, StatusNoticePeriod},
	StatusActive:       {StatusNoticePeriod},
	StatusNoticePeriod: {},
	StatusResigned:     {},
	StatusTerminated:   {},
}

// IsTerminal reports whether a status admits no further transitions.
func (s EmployeeStatus) IsTerminal() bool {
	return s == StatusResigned || s == StatusTerminated
}

// CanTransition reports whether the direct status edge from -> to is allowed.
// Terminal statuses are never reachable via a direct edge; offboarding owns
// that path.
func CanTransition(from, to EmployeeStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OnboardingTask is one item on the new-hire checklist.
type OnboardingTask struct {
	TaskID string `json:"taskID"`
	Title  string `json:"title"`
	Done   bool   `json:"done"`
}

// Onboarding is the checklist state for a new hire. CompletedAt is set only
// while every task is done; reverting a task clears it.
type Onboarding struct {
	Tasks       []OnboardingTask `json:"tasks"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}

// AllTasksDone reports whether every checklist item is complete.
func (o Onboarding) AllTasksDone() bool {
	for _, t := range o.Tasks {
		if !t.Done {
			return false
		}
	}
	return len(o.Tasks) > 0
}

// NewOnboardingChecklist seeds the fixed five-item checklist for a new hire.
// Offer acceptance precedes record creation, so it starts done.
func NewOnboardingChecklist() Onboarding {
	return Onboarding{
		Tasks: []OnboardingTask{
			{TaskID: "offer-accepted", Title: "Offer letter accepted", Done: true},
			{TaskID: "document-verification", Title: "Documents verified", Done: false},
			{TaskID: "system-account-setup", Title: "System accounts created", Done: false},
			{TaskID: "policy-acknowledgement", Title: "Company policies acknowledged", Done: false},
			{TaskID: "workstation-allocation", Title: "Workstation allocated", Done: false},
		},
	}
}

// ExitDetails captures the offboarding record for a resigned or terminated
// employee. Present iff the employee is in a terminal status.
type ExitDetails struct {
	Status         EmployeeStatus `json:"status"` // Resigned or Terminated
	Reason         string         `json:"reason"`
	LastWorkingDay time.Time      `json:"lastWorkingDay"`
	ProcessedAt    time.Time      `json:"processedAt"`
	Notes          string         `json:"notes,omitempty"`
}

// Employee is a member of staff tracked by the HRMS module.
// ManagerID never equals EmployeeID; a self reference is cleared on write.
type Employee struct {
	EmployeeID  string          `json:"employeeID"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	Department  string          `json:"department"`
	Designation string          `json:"designation"`
	ManagerID   string          `json:"managerID,omitempty"`
	MonthlyCTC  decimal.Decimal `json:"monthlyCTC"`
	Status      EmployeeStatus  `json:"status"`
	JoinDate    time.Time       `json:"joinDate"`
	Onboarding  Onboarding      `json:"onboarding"`
	Exit        *ExitDetails    `json:"exit,omitempty"`
	AuditFields
}
