package http

import (
	"net/http"

	"campus-market/internal/usecase"
	"campus-market/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CronHandler struct {
	unreadNotifier usecase.UnreadNotifierUseCase
	logger         *logger.Logger
}

func NewCronHandler(unreadNotifier usecase.UnreadNotifierUseCase, logger *logger.Logger) *CronHandler {
	return &CronHandler{
		unreadNotifier: unreadNotifier,
		logger:         logger,
	}
}

// NotifyUnreadMessages godoc
// @Summary      Run unread-message notifier
// @Description  Email receivers of unread messages older than the grace period; at most one email per receiver per run
// @Tags         cron
// @Produce      json
// @Security     BearerAuth
// @Param        conversation_id query string false "Restrict the run to one conversation"
// @Success      200  {object}  usecase.UnreadNotifierResult
// @Router       /cron/notify-unread-messages [get]
func (h *CronHandler) NotifyUnreadMessages(c *gin.Context) {
	result := h.unreadNotifier.RunUnreadNotifier(c.Request.Context(), c.Query("conversation_id"))
	c.JSON(http.StatusOK, result)
}
