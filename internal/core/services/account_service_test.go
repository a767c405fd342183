package services_test

import (
	"context"
	"testing"

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

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SeedsOpeningBalance() {
	ctx := context.Background()

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:           "Bank",
		AccountType:    domain.AccountTypeAsset,
		OpeningBalance: decimal.NewFromInt(50000),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(account.IsActive)
	suite.True(account.Balance.Equal(decimal.NewFromInt(50000)))
	suite.Equal(suite.userID, account.CreatedBy)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateName() {
	ctx := context.Background()

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:        "Bank",
		AccountType: domain.AccountTypeAsset,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestResolveAccountsByNames_MissingName() {
	ctx := context.Background()
	bank := domain.Account{AccountID: uuid.NewString(), Name: "Bank", AccountType: domain.AccountTypeAsset, IsActive: true}

	suite.mockAccountRepo.On("FindAccountsByNames", ctx, []string{"Bank", "Petty Cash"}).
		Return(map[string]domain.Account{"Bank": bank}, nil).Once()

	_, err := suite.service.ResolveAccountsByNames(ctx, []string{"Bank", "Petty Cash"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorContains(err, "Petty Cash")
}

func (suite *AccountServiceTestSuite) TestResolveAccountsByNames_InactiveRejected() {
	ctx := context.Background()
	dormant := domain.Account{AccountID: uuid.NewString(), Name: "Old Bank", AccountType: domain.AccountTypeAsset, IsActive: false}

	suite.mockAccountRepo.On("FindAccountsByNames", ctx, []string{"Old Bank"}).
		Return(map[string]domain.Account{"Old Bank": dormant}, nil).Once()

	_, err := suite.service.ResolveAccountsByNames(ctx, []string{"Old Bank"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoChangesSkipsWrite() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Name: "Bank", AccountType: domain.AccountTypeAsset, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	result, err := suite.service.UpdateAccount(ctx, account.AccountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(account.Name, result.Name)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountDetails", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
