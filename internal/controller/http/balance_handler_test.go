package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-market/internal/entity"
	"campus-market/internal/usecase"
	"campus-market/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBalanceUseCase is a mock implementation of BalanceUseCase
type MockBalanceUseCase struct {
	mock.Mock
}

func (m *MockBalanceUseCase) GetBalance(userID string) (*entity.Balance, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Balance), args.Error(1)
}

func (m *MockBalanceUseCase) Withdraw(userID string, amount int64) (*entity.Balance, error) {
	args := m.Called(userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Balance), args.Error(1)
}

// MockSettlementUseCase is a mock implementation of SettlementUseCase
type MockSettlementUseCase struct {
	mock.Mock
}

func (m *MockSettlementUseCase) RunSettlementSweep(ctx context.Context) *usecase.SettlementResult {
	args := m.Called(ctx)
	return args.Get(0).(*usecase.SettlementResult)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGetBalance_Success(t *testing.T) {
	mockBalance := new(MockBalanceUseCase)
	mockSettlement := new(MockSettlementUseCase)
	handler := NewBalanceHandler(mockBalance, mockSettlement, logger.New())

	router := setupTestRouter()
	router.GET("/balance", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.GetBalance(c)
	})

	mockBalance.On("GetBalance", "user-123").Return(&entity.Balance{
		UserID:           "user-123",
		PendingBalance:   9500,
		AvailableBalance: 317,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/balance", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response entity.Balance
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(9500), response.PendingBalance)
	assert.Equal(t, int64(317), response.AvailableBalance)

	mockBalance.AssertExpectations(t)
}

func TestGetBalance_Unauthorized(t *testing.T) {
	handler := NewBalanceHandler(new(MockBalanceUseCase), new(MockSettlementUseCase), logger.New())

	router := setupTestRouter()
	router.GET("/balance", handler.GetBalance)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/balance", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	mockBalance := new(MockBalanceUseCase)
	handler := NewBalanceHandler(mockBalance, new(MockSettlementUseCase), logger.New())

	router := setupTestRouter()
	router.POST("/balance/withdraw", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.Withdraw(c)
	})

	mockBalance.On("Withdraw", "user-123", int64(5000)).Return(nil, errors.New("insufficient balance"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/balance/withdraw", bytes.NewBufferString(`{"amount":5000}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "insufficient balance", response["error"])

	mockBalance.AssertExpectations(t)
}

func TestAutoRelease_Success(t *testing.T) {
	mockSettlement := new(MockSettlementUseCase)
	handler := NewBalanceHandler(new(MockBalanceUseCase), mockSettlement, logger.New())

	router := setupTestRouter()
	router.POST("/balance/auto-release", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.AutoRelease(c)
	})

	mockSettlement.On("RunSettlementSweep", mock.Anything).Return(&usecase.SettlementResult{
		Success:       true,
		ReleasedCount: 2,
		TotalReleased: 66500,
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/balance/auto-release", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(2), response["releasedCount"])
	assert.Equal(t, float64(66500), response["totalReleased"])

	mockSettlement.AssertExpectations(t)
}

func TestAutoRelease_Unauthorized(t *testing.T) {
	handler := NewBalanceHandler(new(MockBalanceUseCase), new(MockSettlementUseCase), logger.New())

	router := setupTestRouter()
	router.POST("/balance/auto-release", handler.AutoRelease)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/balance/auto-release", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
