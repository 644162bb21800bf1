package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-market/internal/entity"
	"campus-market/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newTestSettlementUseCase(transactionRepo *fakeTransactionRepo, balanceRepo *fakeBalanceRepo, notifications *fakeNotificationUC, now time.Time) *settlementUseCase {
	uc := NewSettlementUseCase(
		transactionRepo,
		balanceRepo,
		notifications,
		nil, // no redis in unit tests; the sweep lock is skipped
		logger.New(),
		72*time.Hour,
		0.05,
		500,
	).(*settlementUseCase)
	uc.now = func() time.Time { return now }
	return uc
}

func completedTransaction(id, sellerID string, amount int64, age time.Duration, now time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:        id,
		ItemID:    "item-" + id,
		BuyerID:   "buyer-1",
		Amount:    amount,
		Status:    entity.TransactionStatusCompleted,
		CreatedAt: now.Add(-age),
		Item:      &entity.Item{ID: "item-" + id, SellerID: sellerID, Title: "Desk Lamp"},
	}
}

func TestPlatformFee(t *testing.T) {
	assert.Equal(t, int64(500), PlatformFee(10000, 0.05))
	assert.Equal(t, int64(9500), int64(10000)-PlatformFee(10000, 0.05))

	// Non-integer products truncate toward zero
	assert.Equal(t, int64(16), PlatformFee(333, 0.05))
	assert.Equal(t, int64(317), int64(333)-PlatformFee(333, 0.05))
}

func TestRunSettlementSweep_FullRun(t *testing.T) {
	now := time.Now()
	transactionRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
		completedTransaction("tx-1", "seller-a", 20000, 4*24*time.Hour, now),
		completedTransaction("tx-2", "seller-b", 50000, 4*24*time.Hour, now),
		completedTransaction("tx-3", "seller-a", 10000, 24*time.Hour, now), // too young
	}}
	balanceRepo := newFakeBalanceRepo()
	balanceRepo.balances["seller-a"] = &entity.Balance{UserID: "seller-a", PendingBalance: 19000}
	balanceRepo.balances["seller-b"] = &entity.Balance{UserID: "seller-b", PendingBalance: 47500}
	notifications := &fakeNotificationUC{}

	uc := newTestSettlementUseCase(transactionRepo, balanceRepo, notifications, now)
	result := uc.RunSettlementSweep(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ReleasedCount)
	assert.Equal(t, int64(19000+47500), result.TotalReleased)

	assert.Equal(t, int64(0), balanceRepo.balances["seller-a"].PendingBalance)
	assert.Equal(t, int64(19000), balanceRepo.balances["seller-a"].AvailableBalance)
	assert.Equal(t, int64(0), balanceRepo.balances["seller-b"].PendingBalance)
	assert.Equal(t, int64(47500), balanceRepo.balances["seller-b"].AvailableBalance)

	// One notification per release
	assert.Len(t, notifications.notifications, 2)
	assert.Equal(t, "balance_released", notifications.notifications[0].Type)
}

func TestRunSettlementSweep_SecondRunIsNoOp(t *testing.T) {
	now := time.Now()
	transactionRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
		completedTransaction("tx-1", "seller-a", 20000, 4*24*time.Hour, now),
	}}
	balanceRepo := newFakeBalanceRepo()
	balanceRepo.balances["seller-a"] = &entity.Balance{UserID: "seller-a", PendingBalance: 19000}

	uc := newTestSettlementUseCase(transactionRepo, balanceRepo, &fakeNotificationUC{}, now)

	first := uc.RunSettlementSweep(context.Background())
	assert.Equal(t, 1, first.ReleasedCount)

	// The transaction stays COMPLETED forever; the drained pending balance is
	// what blocks a duplicate release
	second := uc.RunSettlementSweep(context.Background())
	assert.True(t, second.Success)
	assert.Equal(t, 0, second.ReleasedCount)
	assert.Equal(t, int64(0), balanceRepo.balances["seller-a"].PendingBalance)
	assert.Equal(t, int64(19000), balanceRepo.balances["seller-a"].AvailableBalance)
}

func TestRunSettlementSweep_EligibilityBoundary(t *testing.T) {
	now := time.Now()
	exactCutoff := completedTransaction("tx-exact", "seller-a", 10000, 72*time.Hour, now)
	justInside := completedTransaction("tx-young", "seller-a", 10000, 72*time.Hour-time.Millisecond, now)

	transactionRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{exactCutoff, justInside}}
	balanceRepo := newFakeBalanceRepo()
	balanceRepo.balances["seller-a"] = &entity.Balance{UserID: "seller-a", PendingBalance: 19000}

	uc := newTestSettlementUseCase(transactionRepo, balanceRepo, &fakeNotificationUC{}, now)
	result := uc.RunSettlementSweep(context.Background())

	// Exactly hold-period old is eligible; one millisecond younger is not
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ReleasedCount)
	assert.Equal(t, int64(9500), result.TotalReleased)
}

func TestRunSettlementSweep_InsufficientPendingIsSkipped(t *testing.T) {
	now := time.Now()
	transactionRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
		completedTransaction("tx-1", "seller-a", 20000, 4*24*time.Hour, now),
	}}
	balanceRepo := newFakeBalanceRepo()
	balanceRepo.balances["seller-a"] = &entity.Balance{UserID: "seller-a", PendingBalance: 5000}

	uc := newTestSettlementUseCase(transactionRepo, balanceRepo, &fakeNotificationUC{}, now)
	result := uc.RunSettlementSweep(context.Background())

	// Skipped, not partially applied: the ledger never goes negative
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ReleasedCount)
	assert.Equal(t, int64(5000), balanceRepo.balances["seller-a"].PendingBalance)
	assert.Equal(t, int64(0), balanceRepo.balances["seller-a"].AvailableBalance)
}

func TestRunSettlementSweep_MissingLedgerIsSkipped(t *testing.T) {
	now := time.Now()
	transactionRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
		completedTransaction("tx-1", "seller-a", 20000, 4*24*time.Hour, now),
	}}
	balanceRepo := newFakeBalanceRepo()

	uc := newTestSettlementUseCase(transactionRepo, balanceRepo, &fakeNotificationUC{}, now)
	result := uc.RunSettlementSweep(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ReleasedCount)
}

func TestRunSettlementSweep_MissingItemIsSkipped(t *testing.T) {
	now := time.Now()
	orphaned := completedTransaction("tx-1", "seller-a", 20000, 4*24*time.Hour, now)
	orphaned.Item = nil

	transactionRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{orphaned}}
	balanceRepo := newFakeBalanceRepo()
	balanceRepo.balances["seller-a"] = &entity.Balance{UserID: "seller-a", PendingBalance: 19000}

	uc := newTestSettlementUseCase(transactionRepo, balanceRepo, &fakeNotificationUC{}, now)
	result := uc.RunSettlementSweep(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ReleasedCount)
	assert.Equal(t, int64(19000), balanceRepo.balances["seller-a"].PendingBalance)
}

func TestRunSettlementSweep_ScanFailureAborts(t *testing.T) {
	transactionRepo := &fakeTransactionRepo{scanErr: errors.New("connection refused")}

	uc := newTestSettlementUseCase(transactionRepo, newFakeBalanceRepo(), &fakeNotificationUC{}, time.Now())
	result := uc.RunSettlementSweep(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "failed to scan transactions")
}

func TestRunSettlementSweep_RowErrorDoesNotAbort(t *testing.T) {
	now := time.Now()
	transactionRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
		completedTransaction("tx-1", "seller-a", 20000, 4*24*time.Hour, now),
		completedTransaction("tx-2", "seller-b", 50000, 4*24*time.Hour, now),
	}}
	balanceRepo := newFakeBalanceRepo()
	balanceRepo.balances["seller-a"] = &entity.Balance{UserID: "seller-a", PendingBalance: 19000}
	balanceRepo.balances["seller-b"] = &entity.Balance{UserID: "seller-b", PendingBalance: 47500}
	balanceRepo.releaseErr["seller-a"] = errors.New("deadlock detected")

	uc := newTestSettlementUseCase(transactionRepo, balanceRepo, &fakeNotificationUC{}, now)
	result := uc.RunSettlementSweep(context.Background())

	// seller-a's row failed and stays eligible; seller-b still settles
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ReleasedCount)
	assert.Equal(t, int64(47500), result.TotalReleased)
	assert.Equal(t, int64(19000), balanceRepo.balances["seller-a"].PendingBalance)
}

func TestRunSettlementSweep_SameSellerTwiceInOneSweep(t *testing.T) {
	now := time.Now()
	transactionRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
		completedTransaction("tx-1", "seller-a", 10000, 5*24*time.Hour, now),
		completedTransaction("tx-2", "seller-a", 10000, 4*24*time.Hour, now),
	}}
	balanceRepo := newFakeBalanceRepo()
	// Only one release worth of pending funds
	balanceRepo.balances["seller-a"] = &entity.Balance{UserID: "seller-a", PendingBalance: 9500}

	uc := newTestSettlementUseCase(transactionRepo, balanceRepo, &fakeNotificationUC{}, now)
	result := uc.RunSettlementSweep(context.Background())

	// Sequential processing: the second row sees the first row's decrement
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ReleasedCount)
	assert.Equal(t, int64(0), balanceRepo.balances["seller-a"].PendingBalance)
	assert.Equal(t, int64(9500), balanceRepo.balances["seller-a"].AvailableBalance)
}

func TestRunSettlementSweep_Pagination(t *testing.T) {
	now := time.Now()
	transactionRepo := &fakeTransactionRepo{}
	balanceRepo := newFakeBalanceRepo()
	balanceRepo.balances["seller-a"] = &entity.Balance{UserID: "seller-a", PendingBalance: 9500 * 5}
	for i := 0; i < 5; i++ {
		transactionRepo.transactions = append(transactionRepo.transactions,
			completedTransaction(string(rune('a'+i)), "seller-a", 10000, time.Duration(96+i)*time.Hour, now))
	}

	uc := newTestSettlementUseCase(transactionRepo, balanceRepo, &fakeNotificationUC{}, now)
	uc.batchSize = 2
	result := uc.RunSettlementSweep(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 5, result.ReleasedCount)
	assert.Equal(t, int64(9500*5), result.TotalReleased)
	assert.Equal(t, int64(0), balanceRepo.balances["seller-a"].PendingBalance)
}
