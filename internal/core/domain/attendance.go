package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceStatus classifies a day's attendance.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceHalfDay AttendanceStatus = "Half Day"
	AttendanceOnLeave AttendanceStatus = "On Leave"
)

// AttendanceRecord is one employee's attendance for one date. CheckOut is nil
// while the record is open; Hours is derived on clock-out with the standard
// break deduction.
type AttendanceRecord struct {
	AttendanceID string           `json:"attendanceID"`
	EmployeeID   string           `json:"employeeID"`
	Date         time.Time        `json:"date"` // date only, UTC midnight
	CheckIn      time.Time        `json:"checkIn"`
	CheckOut     *time.Time       `json:"checkOut,omitempty"`
	Hours        decimal.Decimal  `json:"hours"`
	Status       AttendanceStatus `json:"status"`
	AuditFields
}
