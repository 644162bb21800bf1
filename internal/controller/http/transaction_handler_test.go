package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-market/internal/entity"
	"campus-market/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTransactionUseCase is a mock implementation of TransactionUseCase
type MockTransactionUseCase struct {
	mock.Mock
}

func (m *MockTransactionUseCase) Purchase(buyerID, itemID string) (*entity.Transaction, error) {
	args := m.Called(buyerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionUseCase) Confirm(transactionID, buyerID string) (*entity.Transaction, error) {
	args := m.Called(transactionID, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionUseCase) Cancel(transactionID, buyerID string) error {
	args := m.Called(transactionID, buyerID)
	return args.Error(0)
}

func (m *MockTransactionUseCase) ListForUser(userID string, limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func TestPurchase_Success(t *testing.T) {
	mockUseCase := new(MockTransactionUseCase)
	handler := NewTransactionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/transactions", func(c *gin.Context) {
		c.Set("user_id", "buyer-123")
		handler.Purchase(c)
	})

	mockUseCase.On("Purchase", "buyer-123", "item-123").Return(&entity.Transaction{
		ID:      "tx-1",
		ItemID:  "item-123",
		BuyerID: "buyer-123",
		Amount:  2500,
		Status:  entity.TransactionStatusPending,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/transactions", bytes.NewBufferString(`{"item_id":"item-123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response entity.Transaction
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, entity.TransactionStatusPending, response.Status)

	mockUseCase.AssertExpectations(t)
}

func TestPurchase_OwnItem(t *testing.T) {
	mockUseCase := new(MockTransactionUseCase)
	handler := NewTransactionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/transactions", func(c *gin.Context) {
		c.Set("user_id", "seller-123")
		handler.Purchase(c)
	})

	mockUseCase.On("Purchase", "seller-123", "item-123").Return(nil, errors.New("cannot buy your own item"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/transactions", bytes.NewBufferString(`{"item_id":"item-123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestConfirm_Success(t *testing.T) {
	mockUseCase := new(MockTransactionUseCase)
	handler := NewTransactionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/transactions/:id/confirm", func(c *gin.Context) {
		c.Set("user_id", "buyer-123")
		handler.Confirm(c)
	})

	mockUseCase.On("Confirm", "tx-1", "buyer-123").Return(&entity.Transaction{
		ID:     "tx-1",
		Status: entity.TransactionStatusCompleted,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/transactions/tx-1/confirm", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response entity.Transaction
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, entity.TransactionStatusCompleted, response.Status)

	mockUseCase.AssertExpectations(t)
}

func TestConfirm_NotBuyer(t *testing.T) {
	mockUseCase := new(MockTransactionUseCase)
	handler := NewTransactionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/transactions/:id/confirm", func(c *gin.Context) {
		c.Set("user_id", "other-user")
		handler.Confirm(c)
	})

	mockUseCase.On("Confirm", "tx-1", "other-user").Return(nil, errors.New("not the buyer of this transaction"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/transactions/tx-1/confirm", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}
