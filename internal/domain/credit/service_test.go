package credit

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"credit-system/internal/domain/customer"
	"credit-system/internal/pkg/apperrors"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) Register(ctx context.Context, input customer.RegisterInput) (*customer.Customer, error) {
	ret := _m.Called(ctx, input)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerService) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if rf, ok := ret.Get(0).(func(context.Context, int64) *customer.Customer); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*customer.Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerService) Update(ctx context.Context, customerID int64, input customer.UpdateInput) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID, input)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerService) Delete(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

func validIssueInput() IssueInput {
	return IssueInput{
		CreditValue:          decimal.NewFromInt(5000),
		DayFirstInstallment:  time.Now().AddDate(0, 0, 30),
		NumberOfInstallments: 12,
		CustomerID:           1,
	}
}

func TestIssue(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockCustomerService := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomerService, nil, DefaultFirstInstallmentHorizonMonths, logger)

	ctx := context.Background()
	cust := &customer.Customer{ID: 1, Email: "me@layin.net", Income: decimal.NewFromInt(1000)}
	mockCustomerService.On("FindByID", ctx, int64(1)).Return(cust, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*credit.Credit")).Return(nil)

	issued, err := service.Issue(ctx, validIssueInput())

	assert.NoError(t, err)
	assert.NotNil(t, issued)
	assert.NotEqual(t, uuid.Nil, issued.Credit.CreditCode)
	assert.Equal(t, StatusInProgress, issued.Credit.Status)
	assert.Equal(t, int64(1), issued.Credit.CustomerID)
	assert.Equal(t, cust, issued.Customer)
	mockRepo.AssertExpectations(t)
	mockCustomerService.AssertExpectations(t)
}

func TestIssueAtHorizonBoundary(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockCustomerService := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomerService, nil, DefaultFirstInstallmentHorizonMonths, logger)

	ctx := context.Background()
	cust := &customer.Customer{ID: 1}
	mockCustomerService.On("FindByID", ctx, int64(1)).Return(cust, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*credit.Credit")).Return(nil)

	input := validIssueInput()
	input.DayFirstInstallment = time.Now().AddDate(0, 3, 0)

	issued, err := service.Issue(ctx, input)

	assert.NoError(t, err, "Exactly three months out is still acceptable")
	assert.NotNil(t, issued)
}

func TestIssueInvalidDate(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockCustomerService := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomerService, nil, DefaultFirstInstallmentHorizonMonths, logger)

	ctx := context.Background()
	input := validIssueInput()
	input.DayFirstInstallment = time.Now().AddDate(0, 3, 1)

	issued, err := service.Issue(ctx, input)

	assert.Nil(t, issued)
	assert.ErrorIs(t, err, apperrors.ErrBusiness)

	var businessErr *apperrors.BusinessError
	assert.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "Invalid Date", businessErr.Message)

	mockCustomerService.AssertNotCalled(t, "FindByID")
	mockRepo.AssertNotCalled(t, "Save")
}

func TestIssueUnknownCustomer(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockCustomerService := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomerService, nil, DefaultFirstInstallmentHorizonMonths, logger)

	ctx := context.Background()
	mockCustomerService.On("FindByID", ctx, int64(1)).Return(nil, apperrors.NewNotFoundError("Id %d not found", 1))

	issued, err := service.Issue(ctx, validIssueInput())

	assert.Nil(t, issued)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var notFoundErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "Id 1 not found", notFoundErr.Message)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestFindAllByCustomer(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockCustomerService := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomerService, nil, DefaultFirstInstallmentHorizonMonths, logger)

	ctx := context.Background()
	credits := []*Credit{{ID: 1}, {ID: 2}}
	mockRepo.On("FindAllByCustomerID", ctx, int64(1)).Return(credits, nil)

	result, err := service.FindAllByCustomer(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, credits, result)
	mockRepo.AssertExpectations(t)
}

func TestFindAllByCustomerEmpty(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockCustomerService := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomerService, nil, DefaultFirstInstallmentHorizonMonths, logger)

	ctx := context.Background()
	mockRepo.On("FindAllByCustomerID", ctx, int64(99)).Return([]*Credit{}, nil)

	result, err := service.FindAllByCustomer(ctx, 99)

	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestFindByCreditCode(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockCustomerService := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomerService, nil, DefaultFirstInstallmentHorizonMonths, logger)

	ctx := context.Background()
	code := uuid.New()
	cr := &Credit{ID: 1, CreditCode: code, CustomerID: 1}
	cust := &customer.Customer{ID: 1, Email: "me@layin.net"}
	mockRepo.On("FindByCreditCode", ctx, code).Return(cr, nil)
	mockCustomerService.On("FindByID", ctx, int64(1)).Return(cust, nil)

	detail, err := service.FindByCreditCode(ctx, 1, code)

	assert.NoError(t, err)
	assert.Equal(t, cr, detail.Credit)
	assert.Equal(t, cust, detail.Customer)
	mockRepo.AssertExpectations(t)
}

func TestFindByCreditCodeUnknown(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockCustomerService := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomerService, nil, DefaultFirstInstallmentHorizonMonths, logger)

	ctx := context.Background()
	code := uuid.New()
	mockRepo.On("FindByCreditCode", ctx, code).Return(nil, ErrNotFound)

	detail, err := service.FindByCreditCode(ctx, 1, code)

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, apperrors.ErrBusiness)

	var businessErr *apperrors.BusinessError
	assert.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "Creditcode "+code.String()+" not found", businessErr.Message)
}

func TestFindByCreditCodeWrongOwner(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockCustomerService := new(MockCustomerService)
	service := NewCreditService(mockRepo, mockCustomerService, nil, DefaultFirstInstallmentHorizonMonths, logger)

	ctx := context.Background()
	code := uuid.New()
	cr := &Credit{ID: 1, CreditCode: code, CustomerID: 2}
	mockRepo.On("FindByCreditCode", ctx, code).Return(cr, nil)

	detail, err := service.FindByCreditCode(ctx, 1, code)

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, apperrors.ErrBusiness)

	var businessErr *apperrors.BusinessError
	assert.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "Contact admin", businessErr.Message)
	mockCustomerService.AssertNotCalled(t, "FindByID")
}
