package usecase

import (
	"fmt"

	"campus-market/internal/entity"
	"campus-market/internal/repo/persistent"
	"campus-market/pkg/logger"
	"campus-market/pkg/queue"
)

type TransactionUseCase interface {
	Purchase(buyerID, itemID string) (*entity.Transaction, error)
	Confirm(transactionID, buyerID string) (*entity.Transaction, error)
	Cancel(transactionID, buyerID string) error
	ListForUser(userID string, limit, offset int) ([]*entity.Transaction, error)
}

type transactionUseCase struct {
	transactionRepo persistent.TransactionRepository
	itemRepo        persistent.ItemRepository
	balanceRepo     persistent.BalanceRepository
	queueClient     *queue.Client
	logger          *logger.Logger
	feeRate         float64
}

func NewTransactionUseCase(
	transactionRepo persistent.TransactionRepository,
	itemRepo persistent.ItemRepository,
	balanceRepo persistent.BalanceRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
	feeRate float64,
) TransactionUseCase {
	return &transactionUseCase{
		transactionRepo: transactionRepo,
		itemRepo:        itemRepo,
		balanceRepo:     balanceRepo,
		queueClient:     queueClient,
		logger:          logger,
		feeRate:         feeRate,
	}
}

func (uc *transactionUseCase) Purchase(buyerID, itemID string) (*entity.Transaction, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("item not found")
	}
	if item.Status != entity.ItemStatusActive {
		return nil, fmt.Errorf("item is not available")
	}
	if item.SellerID == buyerID {
		return nil, fmt.Errorf("cannot buy your own item")
	}

	transaction, err := uc.transactionRepo.Create(&entity.Transaction{
		ItemID:  itemID,
		BuyerID: buyerID,
		Amount:  item.Price,
		Status:  entity.TransactionStatusPending,
	})
	if err != nil {
		uc.logger.Error("Failed to create transaction: %v", err)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// Confirm completes a pending purchase: the item is marked sold and the
// seller's net earnings enter the escrow (pending) balance. The settlement
// sweep releases them after the hold period.
func (uc *transactionUseCase) Confirm(transactionID, buyerID string) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, fmt.Errorf("transaction not found")
	}
	if transaction.BuyerID != buyerID {
		return nil, fmt.Errorf("not the buyer of this transaction")
	}
	if transaction.Status != entity.TransactionStatusPending {
		return nil, fmt.Errorf("transaction is not pending")
	}
	if transaction.Item == nil {
		return nil, fmt.Errorf("item no longer exists")
	}

	if err := uc.transactionRepo.UpdateStatus(transactionID, entity.TransactionStatusCompleted); err != nil {
		uc.logger.Error("Failed to complete transaction %s: %v", transactionID, err)
		return nil, fmt.Errorf("failed to complete transaction: %w", err)
	}

	if err := uc.itemRepo.UpdateStatus(transaction.ItemID, entity.ItemStatusSold); err != nil {
		uc.logger.Error("Failed to mark item %s sold: %v", transaction.ItemID, err)
	}

	sellerEarnings := transaction.Amount - PlatformFee(transaction.Amount, uc.feeRate)
	if err := uc.balanceRepo.CreditPending(transaction.Item.SellerID, sellerEarnings); err != nil {
		uc.logger.Error("Failed to credit pending balance for seller %s: %v", transaction.Item.SellerID, err)
		return nil, fmt.Errorf("failed to credit seller: %w", err)
	}

	if err := uc.balanceRepo.IncrementPurchases(buyerID); err != nil {
		uc.logger.Warn("Failed to increment purchase count for %s: %v", buyerID, err)
	}

	if uc.queueClient != nil {
		task := &queue.Task{
			Type:    "item_sold",
			UserID:  transaction.Item.SellerID,
			Title:   "Item sold",
			Message: fmt.Sprintf("%q was sold for $%.2f", transaction.Item.Title, float64(transaction.Amount)/100),
			Data: map[string]interface{}{
				"transaction_id": transactionID,
				"item_id":        transaction.ItemID,
			},
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Warn("Failed to publish item_sold task: %v", err)
		}
	}

	return uc.transactionRepo.GetByID(transactionID)
}

func (uc *transactionUseCase) Cancel(transactionID, buyerID string) error {
	transaction, err := uc.transactionRepo.GetByID(transactionID)
	if err != nil {
		return fmt.Errorf("transaction not found")
	}
	if transaction.BuyerID != buyerID {
		return fmt.Errorf("not the buyer of this transaction")
	}
	if transaction.Status != entity.TransactionStatusPending {
		return fmt.Errorf("only pending transactions can be cancelled")
	}

	if err := uc.transactionRepo.UpdateStatus(transactionID, entity.TransactionStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel transaction: %w", err)
	}
	return nil
}

func (uc *transactionUseCase) ListForUser(userID string, limit, offset int) ([]*entity.Transaction, error) {
	transactions, err := uc.transactionRepo.ListForUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
