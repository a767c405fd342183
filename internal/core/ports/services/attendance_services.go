package services

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/dto"
)

// AttendanceSvcFacade defines attendance tracking operations.
type AttendanceSvcFacade interface {
	// ClockIn opens today's attendance record for an employee. A second
	// clock-in on the same day is a conflict.
	ClockIn(ctx context.Context, employeeID string, requestingUserID string) (*domain.AttendanceRecord, error)

	// ClockOut closes the open record and derives worked hours.
	ClockOut(ctx context.Context, employeeID string, requestingUserID string) (*domain.AttendanceRecord, error)

	// MarkAttendance records a day's status administratively (absence, leave).
	MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest, requestingUserID string) (*domain.AttendanceRecord, error)

	// ListAttendance retrieves records for an employee in a date range.
	ListAttendance(ctx context.Context, params dto.ListAttendanceParams) ([]domain.AttendanceRecord, error)
}
