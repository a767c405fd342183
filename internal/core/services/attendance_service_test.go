package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zenerp/erp_backend/internal/apperrors"
	"github.com/zenerp/erp_backend/internal/core/domain"
	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/core/services"
	"github.com/zenerp/erp_backend/internal/dto"
)

type AttendanceServiceTestSuite struct {
	suite.Suite
	mockAttendanceRepo *MockAttendanceRepository
	mockEmployeeRepo   *MockEmployeeRepository
	service            portssvc.AttendanceSvcFacade
	employee           *domain.Employee
	userID             string
}

func (suite *AttendanceServiceTestSuite) SetupTest() {
	suite.mockAttendanceRepo = new(MockAttendanceRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.service = services.NewAttendanceService(suite.mockAttendanceRepo, suite.mockEmployeeRepo)

	suite.userID = uuid.NewString()
	suite.employee = &domain.Employee{
		EmployeeID: uuid.NewString(),
		FirstName:  "Ravi",
		LastName:   "Kumar",
		Status:     domain.StatusActive,
	}
}

func (suite *AttendanceServiceTestSuite) TestClockIn_OpensRecord() {
	ctx := context.Background()

	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, suite.employee.EmployeeID).Return(suite.employee, nil).Once()
	suite.mockAttendanceRepo.On("SaveAttendance", ctx, mock.AnythingOfType("domain.AttendanceRecord")).Return(nil).Once()

	record, err := suite.service.ClockIn(ctx, suite.employee.EmployeeID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AttendancePresent, record.Status)
	suite.Nil(record.CheckOut)
	suite.Equal(record.Date, record.Date.Truncate(24*time.Hour))
}

func (suite *AttendanceServiceTestSuite) TestClockIn_TwiceConflicts() {
	ctx := context.Background()

	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, suite.employee.EmployeeID).Return(suite.employee, nil).Once()
	suite.mockAttendanceRepo.On("SaveAttendance", ctx, mock.AnythingOfType("domain.AttendanceRecord")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.ClockIn(ctx, suite.employee.EmployeeID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AttendanceServiceTestSuite) TestClockIn_ExitedEmployeeRejected() {
	ctx := context.Background()
	suite.employee.Status = domain.StatusResigned

	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, suite.employee.EmployeeID).Return(suite.employee, nil).Once()

	_, err := suite.service.ClockIn(ctx, suite.employee.EmployeeID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockAttendanceRepo.AssertNotCalled(suite.T(), "SaveAttendance", mock.Anything, mock.Anything)
}

// A nine-hour shift loses the thirty-minute lunch break: 8.5 hours, Present.
func (suite *AttendanceServiceTestSuite) TestClockOut_DeductsLunchBreak() {
	ctx := context.Background()
	now := time.Now().UTC()
	open := &domain.AttendanceRecord{
		AttendanceID: uuid.NewString(),
		EmployeeID:   suite.employee.EmployeeID,
		CheckIn:      now.Add(-9 * time.Hour),
		Status:       domain.AttendancePresent,
	}

	suite.mockAttendanceRepo.On("FindOpenRecord", ctx, suite.employee.EmployeeID, mock.AnythingOfType("time.Time")).
		Return(open, nil).Once()
	suite.mockAttendanceRepo.On("UpdateAttendance", ctx, mock.AnythingOfType("domain.AttendanceRecord")).Return(nil).Once()

	record, err := suite.service.ClockOut(ctx, suite.employee.EmployeeID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(record.CheckOut)
	suite.True(record.Hours.Equal(decimal.NewFromFloat(8.5)), "got %s hours", record.Hours)
	suite.Equal(domain.AttendancePresent, record.Status)
}

// A three-hour shift keeps its full duration (no break over four hours) but
// records as Half Day.
func (suite *AttendanceServiceTestSuite) TestClockOut_ShortShiftIsHalfDay() {
	ctx := context.Background()
	now := time.Now().UTC()
	open := &domain.AttendanceRecord{
		AttendanceID: uuid.NewString(),
		EmployeeID:   suite.employee.EmployeeID,
		CheckIn:      now.Add(-3 * time.Hour),
		Status:       domain.AttendancePresent,
	}

	suite.mockAttendanceRepo.On("FindOpenRecord", ctx, suite.employee.EmployeeID, mock.AnythingOfType("time.Time")).
		Return(open, nil).Once()
	suite.mockAttendanceRepo.On("UpdateAttendance", ctx, mock.AnythingOfType("domain.AttendanceRecord")).Return(nil).Once()

	record, err := suite.service.ClockOut(ctx, suite.employee.EmployeeID, suite.userID)

	suite.Require().NoError(err)
	suite.True(record.Hours.Equal(decimal.NewFromFloat(3)), "got %s hours", record.Hours)
	suite.Equal(domain.AttendanceHalfDay, record.Status)
}

func (suite *AttendanceServiceTestSuite) TestClockOut_NoOpenRecord() {
	ctx := context.Background()

	suite.mockAttendanceRepo.On("FindOpenRecord", ctx, suite.employee.EmployeeID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ClockOut(ctx, suite.employee.EmployeeID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AttendanceServiceTestSuite) TestMarkAttendance_RecordsAbsence() {
	ctx := context.Background()
	date := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, suite.employee.EmployeeID).Return(suite.employee, nil).Once()
	suite.mockAttendanceRepo.On("SaveAttendance", ctx, mock.AnythingOfType("domain.AttendanceRecord")).Return(nil).Once()

	record, err := suite.service.MarkAttendance(ctx, dto.MarkAttendanceRequest{
		EmployeeID: suite.employee.EmployeeID,
		Date:       date,
		Status:     domain.AttendanceAbsent,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AttendanceAbsent, record.Status)
	suite.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), record.Date)
}

func (suite *AttendanceServiceTestSuite) TestMarkAttendance_UnknownStatus() {
	ctx := context.Background()

	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, suite.employee.EmployeeID).Return(suite.employee, nil).Once()

	_, err := suite.service.MarkAttendance(ctx, dto.MarkAttendanceRequest{
		EmployeeID: suite.employee.EmployeeID,
		Date:       time.Now().UTC(),
		Status:     domain.AttendanceStatus("Vacationing"),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AttendanceServiceTestSuite) TestListAttendance_RequiresEmployeeID() {
	ctx := context.Background()

	_, err := suite.service.ListAttendance(ctx, dto.ListAttendanceParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AttendanceServiceTestSuite) TestListAttendance_HalfOpenRange() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAttendanceRepo.On("ListByEmployee", ctx, suite.employee.EmployeeID,
		from, to.AddDate(0, 0, 1),
	).Return([]domain.AttendanceRecord{}, nil).Once()

	_, err := suite.service.ListAttendance(ctx, dto.ListAttendanceParams{
		EmployeeID: suite.employee.EmployeeID,
		From:       &from,
		To:         &to,
	})

	suite.Require().NoError(err)
	suite.mockAttendanceRepo.AssertExpectations(suite.T())
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}
