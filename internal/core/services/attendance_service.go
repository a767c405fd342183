package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zenerp/erp_backend/internal/apperrors"
	"github.com/zenerp/erp_backend/internal/core/domain"
	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/dto"
	"github.com/zenerp/erp_backend/internal/middleware"
	"github.com/zenerp/erp_backend/internal/utils/accounting"
)

// Worked-hours derivation constants. Shifts longer than the break threshold
// have the standard lunch break deducted; a day under the half-day cutoff
// records as Half Day.
const (
	breakThreshold = 4 * time.Hour
	lunchBreak     = 30 * time.Minute
	halfDayCutoff  = 4.0 // hours
)

// attendanceService tracks daily clock-in/clock-out and administrative
// attendance marking.
type attendanceService struct {
	attendanceRepo portsrepo.AttendanceRepositoryFacade
	employeeRepo   portsrepo.EmployeeRepositoryFacade
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(attendanceRepo portsrepo.AttendanceRepositoryFacade, employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.AttendanceSvcFacade {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

// dateOnly truncates a timestamp to UTC midnight.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClockIn opens today's attendance record. One record per employee per day;
// a second clock-in surfaces as a conflict.
func (s *attendanceService) ClockIn(ctx context.Context, employeeID string, requestingUserID string) (*domain.AttendanceRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: employee %s has exited", apperrors.ErrBusinessRule, employeeID)
	}

	now := time.Now().UTC()
	record := domain.AttendanceRecord{
		AttendanceID: uuid.NewString(),
		EmployeeID:   employeeID,
		Date:         dateOnly(now),
		CheckIn:      now,
		Status:       domain.AttendancePresent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.attendanceRepo.SaveAttendance(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: attendance already recorded for today", apperrors.ErrConflict)
		}
		logger.Error("Failed to save attendance", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to clock in: %w", err)
	}

	logger.Info("Employee clocked in", slog.String("employee_id", employeeID), slog.String("attendance_id", record.AttendanceID))
	return &record, nil
}

// ClockOut closes today's open record and derives worked hours. Shifts over
// four hours lose the thirty-minute lunch break; under four derived hours the
// day records as Half Day.
func (s *attendanceService) ClockOut(ctx context.Context, employeeID string, requestingUserID string) (*domain.AttendanceRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	record, err := s.attendanceRepo.FindOpenRecord(ctx, employeeID, dateOnly(now))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no open attendance record for today", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find open attendance record: %w", err)
	}

	worked := now.Sub(record.CheckIn)
	if worked > breakThreshold {
		worked -= lunchBreak
	}
	if worked < 0 {
		worked = 0
	}
	hours := accounting.Round2(decimal.NewFromFloat(worked.Hours()))

	record.CheckOut = &now
	record.Hours = hours
	if hours.LessThan(decimal.NewFromFloat(halfDayCutoff)) {
		record.Status = domain.AttendanceHalfDay
	} else {
		record.Status = domain.AttendancePresent
	}
	record.LastUpdatedAt = now
	record.LastUpdatedBy = requestingUserID

	if err := s.attendanceRepo.UpdateAttendance(ctx, *record); err != nil {
		logger.Error("Failed to update attendance", slog.String("error", err.Error()), slog.String("attendance_id", record.AttendanceID))
		return nil, fmt.Errorf("failed to clock out: %w", err)
	}

	logger.Info("Employee clocked out",
		slog.String("employee_id", employeeID),
		slog.String("hours", hours.String()),
		slog.String("status", string(record.Status)),
	)
	return record, nil
}

// MarkAttendance records a day's status administratively, for absences and
// leave that have no clock events.
func (s *attendanceService) MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest, requestingUserID string) (*domain.AttendanceRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.employeeRepo.FindEmployeeByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	switch req.Status {
	case domain.AttendancePresent, domain.AttendanceAbsent, domain.AttendanceHalfDay, domain.AttendanceOnLeave:
	default:
		return nil, fmt.Errorf("%w: unknown attendance status %q", apperrors.ErrValidation, req.Status)
	}

	now := time.Now().UTC()
	record := domain.AttendanceRecord{
		AttendanceID: uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		Date:         dateOnly(req.Date),
		Status:       req.Status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.attendanceRepo.SaveAttendance(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: attendance already recorded for %s", apperrors.ErrConflict, record.Date.Format("2006-01-02"))
		}
		logger.Error("Failed to mark attendance", slog.String("error", err.Error()), slog.String("employee_id", req.EmployeeID))
		return nil, fmt.Errorf("failed to mark attendance: %w", err)
	}

	logger.Info("Attendance marked",
		slog.String("employee_id", req.EmployeeID),
		slog.String("date", record.Date.Format("2006-01-02")),
		slog.String("status", string(req.Status)),
	)
	return &record, nil
}

// ListAttendance retrieves records for an employee in a date range.
func (s *attendanceService) ListAttendance(ctx context.Context, params dto.ListAttendanceParams) ([]domain.AttendanceRecord, error) {
	if params.EmployeeID == "" {
		return nil, fmt.Errorf("%w: employeeID is required", apperrors.ErrValidation)
	}

	from := time.Time{}
	if params.From != nil {
		from = dateOnly(*params.From)
	}
	to := dateOnly(time.Now().UTC()).AddDate(0, 0, 1)
	if params.To != nil {
		to = dateOnly(*params.To).AddDate(0, 0, 1)
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, params.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
