package repositories

import (
	"context"
	"time"

	"github.com/zenerp/erp_backend/internal/core/domain"
)

// AttendanceRepositoryFacade defines persistence operations for attendance
// records.
type AttendanceRepositoryFacade interface {
	SaveAttendance(ctx context.Context, record domain.AttendanceRecord) error
	FindAttendanceByID(ctx context.Context, attendanceID string) (*domain.AttendanceRecord, error)
	FindOpenRecord(ctx context.Context, employeeID string, date time.Time) (*domain.AttendanceRecord, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.AttendanceRecord, error)
	CountAbsences(ctx context.Context, employeeID string, month, year int) (int, error)
	UpdateAttendance(ctx context.Context, record domain.AttendanceRecord) error
}
