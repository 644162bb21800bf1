package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"campus-market/internal/repo/persistent"
	"campus-market/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const settlementSweepName = "balance_auto_release"

// SettlementResult is the summary returned by a settlement sweep. The sweep
// never panics past its boundary; failures are reported here.
type SettlementResult struct {
	Success       bool   `json:"success"`
	ReleasedCount int    `json:"releasedCount"`
	TotalReleased int64  `json:"totalReleased"`
	Error         string `json:"error,omitempty"`
}

type SettlementUseCase interface {
	RunSettlementSweep(ctx context.Context) *SettlementResult
}

type settlementUseCase struct {
	transactionRepo persistent.TransactionRepository
	balanceRepo     persistent.BalanceRepository
	notificationUC  NotificationUseCase
	redisClient     *redis.Client
	logger          *logger.Logger

	holdPeriod time.Duration
	feeRate    float64
	batchSize  int
	now        func() time.Time
}

func NewSettlementUseCase(
	transactionRepo persistent.TransactionRepository,
	balanceRepo persistent.BalanceRepository,
	notificationUC NotificationUseCase,
	redisClient *redis.Client,
	logger *logger.Logger,
	holdPeriod time.Duration,
	feeRate float64,
	batchSize int,
) SettlementUseCase {
	return &settlementUseCase{
		transactionRepo: transactionRepo,
		balanceRepo:     balanceRepo,
		notificationUC:  notificationUC,
		redisClient:     redisClient,
		logger:          logger,
		holdPeriod:      holdPeriod,
		feeRate:         feeRate,
		batchSize:       batchSize,
		now:             time.Now,
	}
}

// PlatformFee truncates toward zero so rounding never favors the seller.
func PlatformFee(amount int64, rate float64) int64 {
	return int64(math.Floor(float64(amount) * rate))
}

// RunSettlementSweep releases held earnings for every COMPLETED transaction
// older than the hold period. The pending balance is never marked "settled"
// on the transaction itself; the conditional decrement on the ledger is what
// makes re-processing a no-op.
func (uc *settlementUseCase) RunSettlementSweep(ctx context.Context) *SettlementResult {
	acquired, release := acquireSweepLock(ctx, uc.redisClient, settlementSweepName)
	if !acquired {
		uc.logger.Warn("Settlement sweep already running, skipping")
		return &SettlementResult{Success: true}
	}
	defer release()

	// One absolute cutoff per sweep for a consistent snapshot
	cutoff := uc.now().Add(-uc.holdPeriod)

	releasedCount := 0
	var totalReleased int64
	offset := 0

	for {
		batch, err := uc.transactionRepo.GetCompletedBefore(cutoff, uc.batchSize, offset)
		if err != nil {
			uc.logger.Error("Settlement sweep scan failed: %v", err)
			return &SettlementResult{Success: false, Error: fmt.Sprintf("failed to scan transactions: %v", err)}
		}

		for _, transaction := range batch {
			// Item may have been deleted since the sale
			if transaction.Item == nil {
				uc.logger.Warn("Skipping transaction %s: item %s not found", transaction.ID, transaction.ItemID)
				continue
			}

			sellerID := transaction.Item.SellerID
			platformFee := PlatformFee(transaction.Amount, uc.feeRate)
			sellerEarnings := transaction.Amount - platformFee

			released, err := uc.balanceRepo.TryRelease(sellerID, sellerEarnings)
			if err != nil {
				// Row stays eligible for the next sweep
				uc.logger.Error("Failed to release balance for transaction %s: %v", transaction.ID, err)
				continue
			}
			if !released {
				uc.logger.Info("Skipping transaction %s: pending balance below %d for seller %s", transaction.ID, sellerEarnings, sellerID)
				continue
			}

			if _, err := uc.notificationUC.SendNotification(
				sellerID,
				"Funds released",
				fmt.Sprintf("$%.2f from your sale of %q is now available for withdrawal", float64(sellerEarnings)/100, transaction.Item.Title),
				"balance_released",
				map[string]interface{}{
					"transaction_id": transaction.ID,
					"item_id":        transaction.ItemID,
					"amount":         sellerEarnings,
				},
			); err != nil {
				uc.logger.Error("Failed to create release notification for seller %s: %v", sellerID, err)
			}

			releasedCount++
			totalReleased += sellerEarnings
		}

		if len(batch) < uc.batchSize {
			break
		}
		// Nothing in the eligibility predicate is mutated, so plain offset
		// pagination sees a stable row set within the sweep
		offset += uc.batchSize
	}

	uc.logger.Info("Settlement sweep finished: released=%d total=%d", releasedCount, totalReleased)
	return &SettlementResult{
		Success:       true,
		ReleasedCount: releasedCount,
		TotalReleased: totalReleased,
	}
}
