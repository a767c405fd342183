package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zenerp/erp_backend/internal/core/domain"
)

// Employee represents an employee row. The onboarding checklist and exit
// details serialize to jsonb columns.
type Employee struct {
	EmployeeID  string              `db:"employee_id"`
	FirstName   string              `db:"first_name"`
	LastName    string              `db:"last_name"`
	Email       string              `db:"email"`
	Department  string              `db:"department"`
	Designation string              `db:"designation"`
	ManagerID   *string             `db:"manager_id"`
	MonthlyCTC  decimal.Decimal     `db:"monthly_ctc"`
	Status      string              `db:"status"`
	JoinDate    time.Time           `db:"join_date"`
	Onboarding  domain.Onboarding   `db:"onboarding"`
	Exit        *domain.ExitDetails `db:"exit_details"`
	AuditFields
}
