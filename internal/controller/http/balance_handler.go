package http

import (
	"net/http"

	"campus-market/internal/usecase"
	"campus-market/pkg/logger"

	"github.com/gin-gonic/gin"
)

type BalanceHandler struct {
	balanceUseCase    usecase.BalanceUseCase
	settlementUseCase usecase.SettlementUseCase
	logger            *logger.Logger
}

func NewBalanceHandler(
	balanceUseCase usecase.BalanceUseCase,
	settlementUseCase usecase.SettlementUseCase,
	logger *logger.Logger,
) *BalanceHandler {
	return &BalanceHandler{
		balanceUseCase:    balanceUseCase,
		settlementUseCase: settlementUseCase,
		logger:            logger,
	}
}

// GetBalance godoc
// @Summary      Get balance
// @Description  Pending and available balance of the caller, in cents
// @Tags         balance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Balance
// @Router       /balance [get]
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, err := h.balanceUseCase.GetBalance(userID)
	if err != nil {
		h.logger.Error("Failed to get balance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get balance"})
		return
	}

	c.JSON(http.StatusOK, balance)
}

type WithdrawRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// Withdraw godoc
// @Summary      Withdraw funds
// @Description  Move funds out of the available balance
// @Tags         balance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body WithdrawRequest true "Amount in cents"
// @Success      200  {object}  entity.Balance
// @Router       /balance/withdraw [post]
func (h *BalanceHandler) Withdraw(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.balanceUseCase.Withdraw(userID, req.Amount)
	if err != nil {
		if err.Error() == "insufficient balance" || err.Error() == "amount must be positive" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to withdraw: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw"})
		return
	}

	c.JSON(http.StatusOK, balance)
}

// AutoRelease godoc
// @Summary      Run settlement sweep
// @Description  Release held seller earnings whose hold period has elapsed
// @Tags         balance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usecase.SettlementResult
// @Router       /balance/auto-release [post]
func (h *BalanceHandler) AutoRelease(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result := h.settlementUseCase.RunSettlementSweep(c.Request.Context())
	c.JSON(http.StatusOK, result)
}
