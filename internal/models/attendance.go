package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRecord represents one employee's attendance for one date.
type AttendanceRecord struct {
	AttendanceID string          `db:"attendance_id"`
	EmployeeID   string          `db:"employee_id"`
	Date         time.Time       `db:"date"`
	CheckIn      *time.Time      `db:"check_in"`
	CheckOut     *time.Time      `db:"check_out"`
	Hours        decimal.Decimal `db:"hours"`
	Status       string          `db:"status"`
	AuditFields
}
