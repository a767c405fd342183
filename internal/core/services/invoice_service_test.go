package services_test

import (
	"context"
	"fmt"
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

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockPaymentRepo *MockPaymentRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.InvoiceSvcFacade
	bankAccount     domain.Account
	salesAccount    domain.Account
	receivables     domain.Account
	userID          string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockPaymentRepo,
		suite.mockAccountSvc,
		"Bank", "Sales Revenue", "Accounts Receivable",
	)

	suite.userID = uuid.NewString()
	suite.bankAccount = domain.Account{AccountID: uuid.NewString(), Name: "Bank", AccountType: domain.AccountTypeAsset, IsActive: true}
	suite.salesAccount = domain.Account{AccountID: uuid.NewString(), Name: "Sales Revenue", AccountType: domain.AccountTypeIncome, IsActive: true}
	suite.receivables = domain.Account{AccountID: uuid.NewString(), Name: "Accounts Receivable", AccountType: domain.AccountTypeAsset, IsActive: true}
}

func (suite *InvoiceServiceTestSuite) expectPaymentAccounts() {
	suite.mockAccountSvc.On("ResolveAccountsByNames", mock.Anything, []string{"Bank", "Accounts Receivable"}).
		Return(map[string]domain.Account{
			"Bank":                suite.bankAccount,
			"Accounts Receivable": suite.receivables,
		}, nil).Once()
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_StartsPending() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		Customer: "Acme Traders",
		Amount:   decimal.NewFromInt(1000),
		DueDate:  time.Now().UTC().AddDate(0, 0, 30),
	}

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePending, invoice.Status)
	suite.True(invoice.AmountPaid.IsZero())
	suite.NotEmpty(invoice.Number)
	suite.Equal(domain.SourceAccounting, invoice.Source)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_PastDueStartsOverdue() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		Customer: "Late Co",
		Amount:   decimal.NewFromInt(500),
		DueDate:  time.Now().UTC().AddDate(0, 0, -1),
	}

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceOverdue, invoice.Status)
}

// A 1000 invoice paid 600 then 400 walks pending -> partial -> paid.
func (suite *InvoiceServiceTestSuite) TestRecordPayment_PartialThenFull() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		Number:     "INV-TEST0001",
		Customer:   "Acme Traders",
		Amount:     decimal.NewFromInt(1000),
		AmountPaid: decimal.Zero,
		Status:     domain.InvoicePending,
		DueDate:    time.Now().UTC().AddDate(0, 0, 30),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.expectPaymentAccounts()
	suite.mockPaymentRepo.On("SavePaymentWithReconciliation", ctx,
		mock.AnythingOfType("domain.Payment"),
		mock.AnythingOfType("domain.Invoice"),
		mock.AnythingOfType("decimal.Decimal"),
		mock.AnythingOfType("domain.Journal"),
		mock.AnythingOfType("[]domain.Transaction"),
		mock.AnythingOfType("map[string]decimal.Decimal"),
	).Return(nil).Twice()

	payment, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(600),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(payment.IsReconciled)
	suite.NotEmpty(payment.JournalID)

	firstCall := suite.mockPaymentRepo.Calls[0]
	savedInvoice := firstCall.Arguments.Get(2).(domain.Invoice)
	suite.True(savedInvoice.AmountPaid.Equal(decimal.NewFromInt(600)))
	suite.Equal(domain.InvoicePartial, savedInvoice.Status)
	suite.True(firstCall.Arguments.Get(3).(decimal.Decimal).IsZero())

	// Second payment settles the remainder.
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(&savedInvoice, nil).Once()
	suite.expectPaymentAccounts()

	_, err = suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(400),
	}, suite.userID)

	suite.Require().NoError(err)
	secondCall := suite.mockPaymentRepo.Calls[1]
	settledInvoice := secondCall.Arguments.Get(2).(domain.Invoice)
	suite.True(settledInvoice.AmountPaid.Equal(decimal.NewFromInt(1000)))
	suite.Equal(domain.InvoicePaid, settledInvoice.Status)
	suite.True(secondCall.Arguments.Get(3).(decimal.Decimal).Equal(decimal.NewFromInt(600)))

	// Ledger effect: bank up, receivables down.
	balanceChanges := secondCall.Arguments.Get(6).(map[string]decimal.Decimal)
	suite.True(balanceChanges[suite.bankAccount.AccountID].Equal(decimal.NewFromInt(400)))
	suite.True(balanceChanges[suite.receivables.AccountID].Equal(decimal.NewFromInt(-400)))
}

// Overpayment is accepted; the invoice clamps at its total while the payment
// row keeps the actual amount.
func (suite *InvoiceServiceTestSuite) TestRecordPayment_OverpaymentClampsInvoice() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		Number:     "INV-TEST0002",
		Amount:     decimal.NewFromInt(1000),
		AmountPaid: decimal.NewFromInt(900),
		Status:     domain.InvoicePartial,
		DueDate:    time.Now().UTC().AddDate(0, 0, 30),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.expectPaymentAccounts()
	suite.mockPaymentRepo.On("SavePaymentWithReconciliation", ctx,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(500),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(payment.Amount.Equal(decimal.NewFromInt(500)))

	savedInvoice := suite.mockPaymentRepo.Calls[0].Arguments.Get(2).(domain.Invoice)
	suite.True(savedInvoice.AmountPaid.Equal(decimal.NewFromInt(1000)))
	suite.Equal(domain.InvoicePaid, savedInvoice.Status)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_PaidInvoiceConflict() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		Number:     "INV-TEST0003",
		Amount:     decimal.NewFromInt(1000),
		AmountPaid: decimal.NewFromInt(1000),
		Status:     domain.InvoicePaid,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(100),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentWithReconciliation",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Two payments racing on the same invoice: the repository detects that the
// locked row no longer matches the paid amount this computation started from
// and the whole reconciliation surfaces as a conflict.
func (suite *InvoiceServiceTestSuite) TestRecordPayment_ConcurrentReconciliationConflict() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		Number:     "INV-TEST0004",
		Amount:     decimal.NewFromInt(1000),
		AmountPaid: decimal.Zero,
		Status:     domain.InvoicePending,
		DueDate:    time.Now().UTC().AddDate(0, 0, 30),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.expectPaymentAccounts()
	suite.mockPaymentRepo.On("SavePaymentWithReconciliation", ctx,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	).Return(fmt.Errorf("%w: invoice %s was reconciled concurrently", apperrors.ErrConflict, invoiceID)).Once()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(600),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: uuid.NewString(),
		Amount:    decimal.Zero,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaymentAmountInvalid)
}

func (suite *InvoiceServiceTestSuite) TestRecordPOSSale_CreatesPaidInvoiceAndJournal() {
	ctx := context.Background()
	req := dto.RecordPOSSaleRequest{
		Total: decimal.NewFromInt(750),
		Items: []dto.InvoiceItemRequest{
			{Name: "Widget", Quantity: 3, UnitPrice: decimal.NewFromInt(250)},
		},
	}

	suite.mockAccountSvc.On("ResolveAccountsByNames", mock.Anything, []string{"Bank", "Sales Revenue"}).
		Return(map[string]domain.Account{
			"Bank":          suite.bankAccount,
			"Sales Revenue": suite.salesAccount,
		}, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentWithReconciliation", ctx,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	).Return(nil).Once()

	invoice, err := suite.service.RecordPOSSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, invoice.Status)
	suite.Equal(domain.SourcePOS, invoice.Source)
	suite.Equal("Walk-in Customer", invoice.Customer)
	suite.True(invoice.AmountPaid.Equal(decimal.NewFromInt(750)))

	balanceChanges := suite.mockPaymentRepo.Calls[0].Arguments.Get(6).(map[string]decimal.Decimal)
	suite.True(balanceChanges[suite.bankAccount.AccountID].Equal(decimal.NewFromInt(750)))
	suite.True(balanceChanges[suite.salesAccount.AccountID].Equal(decimal.NewFromInt(750)))
}

func (suite *InvoiceServiceTestSuite) TestRecordPOSSale_TotalMismatch() {
	ctx := context.Background()
	req := dto.RecordPOSSaleRequest{
		Total: decimal.NewFromInt(800),
		Items: []dto.InvoiceItemRequest{
			{Name: "Widget", Quantity: 3, UnitPrice: decimal.NewFromInt(250)},
		},
	}

	_, err := suite.service.RecordPOSSale(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSaleTotalMismatch)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_DerivesOverdueAtReadTime() {
	ctx := context.Background()
	stale := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		Amount:     decimal.NewFromInt(100),
		AmountPaid: decimal.Zero,
		Status:     domain.InvoicePending,
		DueDate:    time.Now().UTC().AddDate(0, 0, -5),
	}

	suite.mockInvoiceRepo.On("ListInvoices", ctx, 20, (*string)(nil)).
		Return([]domain.Invoice{stale}, nil, nil).Once()

	resp, err := suite.service.ListInvoices(ctx, dto.ListInvoicesParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Invoices, 1)
	suite.Equal(domain.InvoiceOverdue, resp.Invoices[0].Status)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
