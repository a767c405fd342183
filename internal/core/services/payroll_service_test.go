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

type PayrollServiceTestSuite struct {
	suite.Suite
	mockPayrollRepo    *MockPayrollRepository
	mockEmployeeRepo   *MockEmployeeRepository
	mockAttendanceRepo *MockAttendanceRepository
	service            portssvc.PayrollSvcFacade
	userID             string
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockPayrollRepo = new(MockPayrollRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.mockAttendanceRepo = new(MockAttendanceRepository)
	suite.service = services.NewPayrollService(suite.mockPayrollRepo, suite.mockEmployeeRepo, suite.mockAttendanceRepo)
	suite.userID = uuid.NewString()
}

func activeEmployee(ctc int64) domain.Employee {
	return domain.Employee{
		EmployeeID: uuid.NewString(),
		FirstName:  "Asha",
		LastName:   "Rao",
		Status:     domain.StatusActive,
		MonthlyCTC: decimal.NewFromInt(ctc),
	}
}

// With a 60000 CTC and two absent days: basic 30000, allowances 18000,
// deductions 30000*0.12+200 = 3800, loss of pay 60000/30*2 = 4000,
// net 30000+18000-3800-4000 = 40200.
func (suite *PayrollServiceTestSuite) TestGeneratePayroll_DeterministicBreakdown() {
	ctx := context.Background()
	emp := activeEmployee(60000)

	suite.mockEmployeeRepo.On("ListEmployees", ctx, domain.EmployeeStatus("")).
		Return([]domain.Employee{emp}, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollByEmployeeAndPeriod", ctx, emp.EmployeeID, 3, 2025).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAttendanceRepo.On("CountAbsences", ctx, emp.EmployeeID, 3, 2025).Return(2, nil).Once()
	suite.mockPayrollRepo.On("SavePayrollRecords", ctx, mock.AnythingOfType("[]domain.PayrollRecord")).Return(nil).Once()

	resp, err := suite.service.GeneratePayroll(ctx, dto.GeneratePayrollRequest{Month: 3, Year: 2025}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Generated)
	suite.Equal(0, resp.Skipped)
	suite.Require().Len(resp.Records, 1)

	record := resp.Records[0]
	suite.True(record.BasicPay.Equal(decimal.NewFromInt(30000)))
	suite.True(record.Allowances.Equal(decimal.NewFromInt(18000)))
	suite.True(record.Deductions.Equal(decimal.NewFromInt(3800)))
	suite.True(record.LossOfPay.Equal(decimal.NewFromInt(4000)))
	suite.True(record.NetPay.Equal(decimal.NewFromInt(40200)))
	suite.Equal(domain.PayrollPending, record.Status)
	suite.Equal("Asha Rao", record.EmployeeName)
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_RerunSkipsExisting() {
	ctx := context.Background()
	emp := activeEmployee(60000)
	existing := &domain.PayrollRecord{
		PayrollID:  uuid.NewString(),
		EmployeeID: emp.EmployeeID,
		Month:      3,
		Year:       2025,
	}

	suite.mockEmployeeRepo.On("ListEmployees", ctx, domain.EmployeeStatus("")).
		Return([]domain.Employee{emp}, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollByEmployeeAndPeriod", ctx, emp.EmployeeID, 3, 2025).
		Return(existing, nil).Once()

	resp, err := suite.service.GeneratePayroll(ctx, dto.GeneratePayrollRequest{Month: 3, Year: 2025}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Generated)
	suite.Equal(1, resp.Skipped)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "SavePayrollRecords", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_ExcludesIneligible() {
	ctx := context.Background()
	onboarding := domain.Employee{EmployeeID: uuid.NewString(), Status: domain.StatusOnboarding, MonthlyCTC: decimal.NewFromInt(50000)}
	resigned := domain.Employee{EmployeeID: uuid.NewString(), Status: domain.StatusResigned, MonthlyCTC: decimal.NewFromInt(50000)}

	suite.mockEmployeeRepo.On("ListEmployees", ctx, domain.EmployeeStatus("")).
		Return([]domain.Employee{onboarding, resigned}, nil).Once()

	resp, err := suite.service.GeneratePayroll(ctx, dto.GeneratePayrollRequest{Month: 3, Year: 2025}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Generated)
	suite.Equal(0, resp.Skipped)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "FindPayrollByEmployeeAndPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_ScopedToRequestedEmployees() {
	ctx := context.Background()
	wanted := activeEmployee(60000)

	suite.mockEmployeeRepo.On("FindEmployeesByIDs", ctx, []string{wanted.EmployeeID}).
		Return(map[string]domain.Employee{wanted.EmployeeID: wanted}, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollByEmployeeAndPeriod", ctx, wanted.EmployeeID, 3, 2025).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAttendanceRepo.On("CountAbsences", ctx, wanted.EmployeeID, 3, 2025).Return(0, nil).Once()
	suite.mockPayrollRepo.On("SavePayrollRecords", ctx, mock.AnythingOfType("[]domain.PayrollRecord")).Return(nil).Once()

	resp, err := suite.service.GeneratePayroll(ctx, dto.GeneratePayrollRequest{
		Month:       3,
		Year:        2025,
		EmployeeIDs: []string{wanted.EmployeeID},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Generated)
	suite.Require().Len(resp.Records, 1)
	suite.Equal(wanted.EmployeeID, resp.Records[0].EmployeeID)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "ListEmployees", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_UnknownRequestedEmployee() {
	ctx := context.Background()
	unknownID := uuid.NewString()

	suite.mockEmployeeRepo.On("FindEmployeesByIDs", ctx, []string{unknownID}).
		Return(map[string]domain.Employee{}, nil).Once()

	_, err := suite.service.GeneratePayroll(ctx, dto.GeneratePayrollRequest{
		Month:       3,
		Year:        2025,
		EmployeeIDs: []string{unknownID},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "SavePayrollRecords", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_InvalidMonth() {
	ctx := context.Background()

	_, err := suite.service.GeneratePayroll(ctx, dto.GeneratePayrollRequest{Month: 13, Year: 2025}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayrollServiceTestSuite) TestGeneratePayroll_NetPayFlooredAtZero() {
	ctx := context.Background()
	emp := activeEmployee(30000)

	suite.mockEmployeeRepo.On("ListEmployees", ctx, domain.EmployeeStatus("")).
		Return([]domain.Employee{emp}, nil).Once()
	suite.mockPayrollRepo.On("FindPayrollByEmployeeAndPeriod", ctx, emp.EmployeeID, 3, 2025).
		Return(nil, apperrors.ErrNotFound).Once()
	// A month of absences wipes out the pay entirely.
	suite.mockAttendanceRepo.On("CountAbsences", ctx, emp.EmployeeID, 3, 2025).Return(30, nil).Once()
	suite.mockPayrollRepo.On("SavePayrollRecords", ctx, mock.AnythingOfType("[]domain.PayrollRecord")).Return(nil).Once()

	resp, err := suite.service.GeneratePayroll(ctx, dto.GeneratePayrollRequest{Month: 3, Year: 2025}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Records, 1)
	suite.True(resp.Records[0].NetPay.IsZero())
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_MarksPaid() {
	ctx := context.Background()
	payrollID := uuid.NewString()
	record := &domain.PayrollRecord{
		PayrollID: payrollID,
		Status:    domain.PayrollPending,
		NetPay:    decimal.NewFromInt(40200),
	}

	suite.mockPayrollRepo.On("FindPayrollByID", ctx, payrollID).Return(record, nil).Once()
	suite.mockPayrollRepo.On("UpdatePayrollRecord", ctx, mock.AnythingOfType("domain.PayrollRecord")).Return(nil).Once()

	processed, err := suite.service.ProcessPayroll(ctx, payrollID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayrollPaid, processed.Status)
	suite.Require().NotNil(processed.ProcessedDate)
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_TwiceKeepsOriginalDate() {
	ctx := context.Background()
	payrollID := uuid.NewString()
	firstProcessed := time.Now().UTC().Add(-48 * time.Hour)
	record := &domain.PayrollRecord{
		PayrollID:     payrollID,
		Status:        domain.PayrollPaid,
		ProcessedDate: &firstProcessed,
	}

	suite.mockPayrollRepo.On("FindPayrollByID", ctx, payrollID).Return(record, nil).Once()

	processed, err := suite.service.ProcessPayroll(ctx, payrollID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(&firstProcessed, processed.ProcessedDate)
	suite.mockPayrollRepo.AssertNotCalled(suite.T(), "UpdatePayrollRecord", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestListPayroll_FiltersByStatus() {
	ctx := context.Background()
	records := []domain.PayrollRecord{
		{PayrollID: uuid.NewString(), Status: domain.PayrollPending},
		{PayrollID: uuid.NewString(), Status: domain.PayrollPaid},
	}

	suite.mockPayrollRepo.On("ListPayroll", ctx, 3, 2025).Return(records, nil).Once()

	result, err := suite.service.ListPayroll(ctx, dto.ListPayrollParams{Month: 3, Year: 2025, Status: "Paid"})

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(domain.PayrollPaid, result[0].Status)
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
