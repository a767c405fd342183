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

type TaxServiceTestSuite struct {
	suite.Suite
	mockTaxRepo     *MockTaxRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockExpenseRepo *MockExpenseRepository
	service         portssvc.TaxSvcFacade
	userID          string
}

func (suite *TaxServiceTestSuite) SetupTest() {
	suite.mockTaxRepo = new(MockTaxRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.service = services.NewTaxService(suite.mockTaxRepo, suite.mockInvoiceRepo, suite.mockExpenseRepo)
	suite.userID = uuid.NewString()
}

func invoiceWithAmount(gstin string, amount int64) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     uuid.NewString(),
		Number:        "INV-TEST",
		Customer:      "Acme Traders",
		CustomerGSTIN: gstin,
		Amount:        decimal.NewFromInt(amount),
		Status:        domain.InvoicePaid,
	}
}

func (suite *TaxServiceTestSuite) TestGenerateGSTR1_BucketsAndTotals() {
	ctx := context.Background()
	// GST-inclusive grosses: 118000 backs out to 100000 taxable, 354000 to
	// 300000, 11800 to 10000.
	invoices := []domain.Invoice{
		invoiceWithAmount("29ABCDE1234F1Z5", 118000), // registered -> B2B
		invoiceWithAmount("", 354000),                // unregistered, above threshold -> B2CL
		invoiceWithAmount("", 11800),                 // unregistered, small -> B2CS
	}

	suite.mockInvoiceRepo.On("ListInvoicesByDateRange", ctx,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	).Return(invoices, nil).Once()

	resp, err := suite.service.GenerateGSTR1(ctx, 3, 2025)

	suite.Require().NoError(err)
	suite.Equal("March 2025", resp.Period)
	suite.Equal(1, resp.Summary.B2BCount)
	suite.Equal(1, resp.Summary.B2CLCount)
	suite.Equal(1, resp.Summary.B2CSCount)
	suite.True(resp.Summary.TotalTaxableValue.Equal(decimal.NewFromInt(410000)), "got %s", resp.Summary.TotalTaxableValue)
	suite.True(resp.Summary.TotalTaxLiability.Equal(decimal.NewFromInt(73800)), "got %s", resp.Summary.TotalTaxLiability)
	suite.Require().Len(resp.Details.B2B, 1)
	suite.Equal("29ABCDE1234F1Z5", resp.Details.B2B[0].CustomerGSTIN)
}

func (suite *TaxServiceTestSuite) TestGenerateGSTR1_InvalidMonth() {
	ctx := context.Background()

	_, err := suite.service.GenerateGSTR1(ctx, 0, 2025)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ListInvoicesByDateRange", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TaxServiceTestSuite) TestGenerateGSTR3B_ITCFromApprovedExpensesOnly() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	// One 118000 gross invoice: 100000 taxable, 18000 output tax.
	suite.mockInvoiceRepo.On("ListInvoicesByDateRange", ctx, from, to).
		Return([]domain.Invoice{invoiceWithAmount("", 118000)}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByDateRange", ctx, from, to).
		Return([]domain.Expense{
			{ExpenseID: uuid.NewString(), Status: domain.ExpenseApproved, GSTAmount: decimal.NewFromInt(1800)},
			{ExpenseID: uuid.NewString(), Status: domain.ExpensePending, GSTAmount: decimal.NewFromInt(500)},
		}, nil).Once()

	resp, err := suite.service.GenerateGSTR3B(ctx, 3, 2025)

	suite.Require().NoError(err)
	suite.True(resp.OutwardSupplies.TaxableValue.Equal(decimal.NewFromInt(100000)))
	suite.True(resp.OutwardSupplies.IGST.Equal(decimal.NewFromInt(9000)))
	suite.True(resp.OutwardSupplies.CGST.Equal(decimal.NewFromInt(4500)))
	suite.True(resp.OutwardSupplies.SGST.Equal(decimal.NewFromInt(4500)))
	suite.True(resp.ITC.IGST.Equal(decimal.NewFromInt(900)))
	suite.True(resp.ITC.CGST.Equal(decimal.NewFromInt(450)))
	suite.True(resp.ITC.SGST.Equal(decimal.NewFromInt(450)))
	suite.True(resp.Payment.TaxPayable.Equal(decimal.NewFromInt(16200)), "got %s", resp.Payment.TaxPayable)
}

func (suite *TaxServiceTestSuite) TestGenerateGSTR3B_PayableFlooredAtZero() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.mockInvoiceRepo.On("ListInvoicesByDateRange", ctx, from, to).
		Return([]domain.Invoice{invoiceWithAmount("", 11800)}, nil).Once()
	// ITC larger than the 1800 output tax.
	suite.mockExpenseRepo.On("ListExpensesByDateRange", ctx, from, to).
		Return([]domain.Expense{
			{ExpenseID: uuid.NewString(), Status: domain.ExpenseApproved, GSTAmount: decimal.NewFromInt(5000)},
		}, nil).Once()

	resp, err := suite.service.GenerateGSTR3B(ctx, 3, 2025)

	suite.Require().NoError(err)
	suite.True(resp.Payment.TaxPayable.IsZero())
}

func (suite *TaxServiceTestSuite) TestRecordTDSPayment_ComputesDeduction() {
	ctx := context.Background()

	suite.mockTaxRepo.On("SaveTDSRecord", ctx, mock.AnythingOfType("domain.TDSRecord")).Return(nil).Once()

	record, err := suite.service.RecordTDSPayment(ctx, dto.CreateTDSPaymentRequest{
		Section:      "194J",
		DeducteeName: "Sharma Consulting",
		DeducteePAN:  "ABCDE1234F",
		Amount:       decimal.NewFromInt(100000),
		Rate:         decimal.NewFromInt(10),
		PaymentDate:  time.Now().UTC(),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(record.TDSAmount.Equal(decimal.NewFromInt(10000)))
	suite.Equal(domain.TDSPending, record.Status)
}

func (suite *TaxServiceTestSuite) TestRecordTDSPayment_InvalidRate() {
	ctx := context.Background()

	_, err := suite.service.RecordTDSPayment(ctx, dto.CreateTDSPaymentRequest{
		Section:      "194J",
		DeducteeName: "Sharma Consulting",
		Amount:       decimal.NewFromInt(100000),
		Rate:         decimal.NewFromInt(150),
		PaymentDate:  time.Now().UTC(),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTaxRepo.AssertNotCalled(suite.T(), "SaveTDSRecord", mock.Anything, mock.Anything)
}

func (suite *TaxServiceTestSuite) TestRecordTDSPayment_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.RecordTDSPayment(ctx, dto.CreateTDSPaymentRequest{
		Section:      "194C",
		DeducteeName: "Sharma Consulting",
		Amount:       decimal.Zero,
		Rate:         decimal.NewFromInt(2),
		PaymentDate:  time.Now().UTC(),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TaxServiceTestSuite) TestUpdateTaxRate_PartialUpdate() {
	ctx := context.Background()
	taxRateID := uuid.NewString()
	existing := &domain.TaxRate{
		TaxRateID: taxRateID,
		Name:      "GST 18%",
		Rate:      decimal.NewFromInt(18),
		Type:      "GST",
		IsActive:  true,
	}

	suite.mockTaxRepo.On("FindTaxRateByID", ctx, taxRateID).Return(existing, nil).Once()
	suite.mockTaxRepo.On("UpdateTaxRate", ctx, mock.AnythingOfType("domain.TaxRate")).Return(nil).Once()

	newRate := decimal.NewFromInt(12)
	updated, err := suite.service.UpdateTaxRate(ctx, taxRateID, dto.UpdateTaxRateRequest{Rate: &newRate}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Rate.Equal(newRate))
	suite.Equal("GST 18%", updated.Name)
}

func TestTaxServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaxServiceTestSuite))
}
