package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// ClockInRequest opens an attendance record for the current day.
type ClockInRequest struct {
	EmployeeID string `json:"employeeID" binding:"required"`
}

// ClockOutRequest closes the open attendance record.
type ClockOutRequest struct {
	EmployeeID string `json:"employeeID" binding:"required"`
}

// MarkAttendanceRequest records attendance administratively for a day.
type MarkAttendanceRequest struct {
	EmployeeID string                  `json:"employeeID" binding:"required"`
	Date       time.Time               `json:"date" binding:"required"`
	Status     domain.AttendanceStatus `json:"status" binding:"required"`
}

// ListAttendanceParams holds query parameters for listing attendance records.
type ListAttendanceParams struct {
	EmployeeID string     `form:"employeeID"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

// AttendanceRecordResponse defines the data returned for an attendance record.
type AttendanceRecordResponse struct {
	AttendanceID string                  `json:"attendanceID"`
	EmployeeID   string                  `json:"employeeID"`
	Date         time.Time               `json:"date"`
	CheckIn      time.Time               `json:"checkIn"`
	CheckOut     *time.Time              `json:"checkOut,omitempty"`
	Hours        decimal.Decimal         `json:"hours"`
	Status       domain.AttendanceStatus `json:"status"`
}

// ToAttendanceRecordResponse converts a domain.AttendanceRecord to its DTO.
func ToAttendanceRecordResponse(r *domain.AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceID: r.AttendanceID,
		EmployeeID:   r.EmployeeID,
		Date:         r.Date,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		Hours:        r.Hours,
		Status:       r.Status,
	}
}

// ToAttendanceRecordResponses converts a slice of attendance records.
func ToAttendanceRecordResponses(records []domain.AttendanceRecord) []AttendanceRecordResponse {
	responses := make([]AttendanceRecordResponse, len(records))
	for i := range records {
		responses[i] = ToAttendanceRecordResponse(&records[i])
	}
	return responses
}
