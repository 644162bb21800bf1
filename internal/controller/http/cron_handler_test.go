package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-market/internal/usecase"
	"campus-market/pkg/logger"
	"campus-market/pkg/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUnreadNotifierUseCase is a mock implementation of UnreadNotifierUseCase
type MockUnreadNotifierUseCase struct {
	mock.Mock
}

func (m *MockUnreadNotifierUseCase) RunUnreadNotifier(ctx context.Context, conversationID string) *usecase.UnreadNotifierResult {
	args := m.Called(ctx, conversationID)
	return args.Get(0).(*usecase.UnreadNotifierResult)
}

func TestNotifyUnreadMessages_Success(t *testing.T) {
	mockNotifier := new(MockUnreadNotifierUseCase)
	handler := NewCronHandler(mockNotifier, logger.New())

	router := setupTestRouter()
	router.GET("/cron/notify-unread-messages", handler.NotifyUnreadMessages)

	mockNotifier.On("RunUnreadNotifier", mock.Anything, "").Return(&usecase.UnreadNotifierResult{
		Success:             true,
		EmailsSent:          3,
		TotalUnreadMessages: 7,
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/cron/notify-unread-messages", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(3), response["emailsSent"])
	assert.Equal(t, float64(7), response["totalUnreadMessages"])

	mockNotifier.AssertExpectations(t)
}

func TestNotifyUnreadMessages_ConversationFilter(t *testing.T) {
	mockNotifier := new(MockUnreadNotifierUseCase)
	handler := NewCronHandler(mockNotifier, logger.New())

	router := setupTestRouter()
	router.GET("/cron/notify-unread-messages", handler.NotifyUnreadMessages)

	mockNotifier.On("RunUnreadNotifier", mock.Anything, "conv-42").Return(&usecase.UnreadNotifierResult{
		Success: true,
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/cron/notify-unread-messages?conversation_id=conv-42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockNotifier.AssertExpectations(t)
}

func TestNotifyUnreadMessages_RequiresSecret(t *testing.T) {
	mockNotifier := new(MockUnreadNotifierUseCase)
	handler := NewCronHandler(mockNotifier, logger.New())

	router := setupTestRouter()
	router.GET("/cron/notify-unread-messages", middleware.CronAuthMiddleware("sweep-secret"), handler.NotifyUnreadMessages)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/cron/notify-unread-messages", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mockNotifier.On("RunUnreadNotifier", mock.Anything, "").Return(&usecase.UnreadNotifierResult{Success: true})

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/cron/notify-unread-messages", nil)
	req.Header.Set("Authorization", "Bearer sweep-secret")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockNotifier.AssertExpectations(t)
}
