package http

import (
	"net/http"

	"campus-market/internal/usecase"
	"campus-market/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionUseCase usecase.TransactionUseCase
	logger             *logger.Logger
}

func NewTransactionHandler(transactionUseCase usecase.TransactionUseCase, logger *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
		logger:             logger,
	}
}

type PurchaseRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// Purchase godoc
// @Summary      Purchase item
// @Description  Open a pending transaction for an active listing
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PurchaseRequest true "Item reference"
// @Success      201  {object}  entity.Transaction
// @Router       /transactions [post]
func (h *TransactionHandler) Purchase(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.transactionUseCase.Purchase(userID, req.ItemID)
	if err != nil {
		switch err.Error() {
		case "item not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "item is not available", "cannot buy your own item":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create transaction: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// Confirm godoc
// @Summary      Confirm delivery
// @Description  Buyer confirms receipt; the seller's earnings are credited to the pending balance
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Transaction ID"
// @Success      200  {object}  entity.Transaction
// @Router       /transactions/{id}/confirm [post]
func (h *TransactionHandler) Confirm(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transaction, err := h.transactionUseCase.Confirm(c.Param("id"), userID)
	if err != nil {
		switch err.Error() {
		case "transaction not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "not the buyer of this transaction":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "transaction is not pending":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to confirm transaction: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// Cancel godoc
// @Summary      Cancel transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Transaction ID"
// @Success      200  {object}  map[string]string
// @Router       /transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.transactionUseCase.Cancel(c.Param("id"), userID); err != nil {
		switch err.Error() {
		case "transaction not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "not the buyer of this transaction":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "only pending transactions can be cancelled":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to cancel transaction: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction cancelled"})
}

// ListTransactions godoc
// @Summary      List transactions
// @Description  Transactions where the caller is buyer or seller
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, offset := paginationParams(c)

	transactions, err := h.transactionUseCase.ListForUser(userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}
