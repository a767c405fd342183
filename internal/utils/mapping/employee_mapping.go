package mapping

import (
	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	var managerID *string
	if d.ManagerID != "" {
		managerID = &d.ManagerID
	}
	return models.Employee{
		EmployeeID:  d.EmployeeID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		Department:  d.Department,
		Designation: d.Designation,
		ManagerID:   managerID,
		MonthlyCTC:  d.MonthlyCTC,
		Status:      string(d.Status),
		JoinDate:    d.JoinDate,
		Onboarding:  d.Onboarding,
		Exit:        d.Exit,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	managerID := ""
	if m.ManagerID != nil {
		managerID = *m.ManagerID
	}
	return domain.Employee{
		EmployeeID:  m.EmployeeID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Department:  m.Department,
		Designation: m.Designation,
		ManagerID:   managerID,
		MonthlyCTC:  m.MonthlyCTC,
		Status:      domain.EmployeeStatus(m.Status),
		JoinDate:    m.JoinDate,
		Onboarding:  m.Onboarding,
		Exit:        m.Exit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEmployeeSlice converts a slice of model Employees to domain
// Employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	ds := make([]domain.Employee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEmployee(m)
	}
	return ds
}
