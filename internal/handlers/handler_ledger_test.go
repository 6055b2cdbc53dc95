package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukkan-app/dukkan_backend/internal/apperrors"
	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	portssvc "github.com/dukkan-app/dukkan_backend/internal/core/ports/services"
	"github.com/dukkan-app/dukkan_backend/internal/dto"
	"github.com/dukkan-app/dukkan_backend/internal/handlers"
	"github.com/dukkan-app/dukkan_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Customer), token, args.Error(2)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetAccountStatement(ctx context.Context, customerID string) (*domain.AccountStatement, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountStatement), args.Error(1)
}

func (m *MockLedgerService) GetCurrentBalance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) InvalidateCustomer(customerID string) {
	m.Called(customerID)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite Setup ---

type LedgerHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	customerService *MockCustomerService
	ledgerService   *MockLedgerService
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.customerService = new(MockCustomerService)
	suite.ledgerService = new(MockLedgerService)

	cfg := &config.Config{
		Port:               "8080",
		RateLimit:          "1000-S",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
	services := &portssvc.ServiceContainer{
		Customer: suite.customerService,
		Ledger:   suite.ledgerService,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *LedgerHandlerTestSuite) perform(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleStatement() *domain.AccountStatement {
	generated := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)
	return &domain.AccountStatement{
		CustomerID: "cust-1",
		Entries: []domain.LedgerEntry{
			{
				EntryID:        "opening-cust-1",
				Timestamp:      time.Date(2026, time.April, 1, 9, 30, 0, 0, time.UTC),
				Kind:           domain.EntryOpeningBalance,
				Description:    "Opening balance",
				GrossValue:     decimal.RequireFromString("100"),
				SignedAmount:   decimal.RequireFromString("100"),
				RunningBalance: decimal.RequireFromString("100"),
				SequenceIndex:  1,
			},
		},
		FinalBalance: decimal.RequireFromString("100"),
		GeneratedAt:  generated,
	}
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestGetStatement_Success() {
	suite.ledgerService.On("GetAccountStatement", mock.Anything, "cust-1").Return(sampleStatement(), nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/customers/cust-1/statement")

	suite.Equal(http.StatusOK, w.Code)
	var response dto.StatementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("cust-1", response.CustomerID)
	suite.Require().Len(response.Entries, 1)
	suite.Equal("2026-04-01", response.Entries[0].Date)
	suite.Equal("09:30:00", response.Entries[0].Time)
	suite.Equal(string(domain.EntryOpeningBalance), response.Entries[0].Kind)
	suite.False(response.Partial)
	suite.ledgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetStatement_NotFound() {
	suite.ledgerService.On("GetAccountStatement", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.perform(http.MethodGet, "/api/v1/customers/missing/statement")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.ledgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetStatement_InternalError() {
	suite.ledgerService.On("GetAccountStatement", mock.Anything, "cust-1").Return(nil, context.DeadlineExceeded).Once()

	w := suite.perform(http.MethodGet, "/api/v1/customers/cust-1/statement")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.ledgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetBalance_Success() {
	suite.ledgerService.On("GetCurrentBalance", mock.Anything, "cust-1").Return(decimal.RequireFromString("150"), nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/customers/cust-1/balance")

	suite.Equal(http.StatusOK, w.Code)
	var response dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("cust-1", response.CustomerID)
	suite.True(response.Balance.Equal(decimal.RequireFromString("150")))
	suite.ledgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetBalance_NotFound() {
	suite.ledgerService.On("GetCurrentBalance", mock.Anything, "missing").Return(decimal.Zero, apperrors.ErrNotFound).Once()

	w := suite.perform(http.MethodGet, "/api/v1/customers/missing/balance")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.ledgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestRefreshLedger() {
	suite.ledgerService.On("InvalidateCustomer", "cust-1").Once()

	w := suite.perform(http.MethodPost, "/api/v1/customers/cust-1/ledger/refresh")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.ledgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetCustomer_AttachesBalance() {
	customer := &domain.Customer{CustomerID: "cust-1", Name: "Ahmed Trading", OpeningBalance: decimal.RequireFromString("100"), IsActive: true}
	suite.customerService.On("GetCustomerByID", mock.Anything, "cust-1").Return(customer, nil).Once()
	suite.ledgerService.On("GetCurrentBalance", mock.Anything, "cust-1").Return(decimal.RequireFromString("150"), nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/customers/cust-1")

	suite.Equal(http.StatusOK, w.Code)
	var response dto.CustomerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Ahmed Trading", response.Name)
	suite.Require().NotNil(response.CurrentBalance)
	suite.True(response.CurrentBalance.Equal(decimal.RequireFromString("150")))
	suite.customerService.AssertExpectations(suite.T())
	suite.ledgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetCustomer_BalanceUnavailable() {
	customer := &domain.Customer{CustomerID: "cust-1", Name: "Ahmed Trading", IsActive: true}
	suite.customerService.On("GetCustomerByID", mock.Anything, "cust-1").Return(customer, nil).Once()
	suite.ledgerService.On("GetCurrentBalance", mock.Anything, "cust-1").Return(decimal.Zero, apperrors.ErrSourceFetch).Once()

	w := suite.perform(http.MethodGet, "/api/v1/customers/cust-1")

	suite.Equal(http.StatusOK, w.Code, "the account read survives a failing balance aggregation")
	var response dto.CustomerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Nil(response.CurrentBalance)
	suite.customerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListCustomers() {
	token := "bmV4dA"
	customers := []domain.Customer{{CustomerID: "cust-1", Name: "Ahmed Trading", IsActive: true}}
	suite.customerService.On("ListCustomers", mock.Anything, 10, (*string)(nil)).Return(customers, &token, nil).Once()

	w := suite.perform(http.MethodGet, "/api/v1/customers?limit=10")

	suite.Equal(http.StatusOK, w.Code)
	var response dto.ListCustomersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Customers, 1)
	suite.Require().NotNil(response.NextToken)
	suite.Equal(token, *response.NextToken)
	suite.customerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListCustomers_InvalidLimit() {
	w := suite.perform(http.MethodGet, "/api/v1/customers?limit=500")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.customerService.AssertNotCalled(suite.T(), "ListCustomers")
}

func (suite *LedgerHandlerTestSuite) TestHealthCheck() {
	w := suite.perform(http.MethodGet, "/health")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
