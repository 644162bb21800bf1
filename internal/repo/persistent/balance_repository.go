package persistent

import (
	"campus-market/internal/entity"
	"campus-market/pkg/models"

	"gorm.io/gorm"
)

type BalanceRepository interface {
	GetOrCreate(userID string) (*entity.Balance, error)
	CreditPending(userID string, amount int64) error
	// TryRelease moves amount from pending to available in one conditional
	// atomic update. Returns false when the ledger is missing or pending
	// funds are insufficient; the caller treats that as a skip.
	TryRelease(userID string, amount int64) (bool, error)
	// TryWithdraw decrements available balance, failing closed when funds
	// are insufficient.
	TryWithdraw(userID string, amount int64) (bool, error)
	IncrementPurchases(userID string) error
}

type balanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) GetOrCreate(userID string) (*entity.Balance, error) {
	var statsModel models.UserStats
	if err := r.db.Where("user_id = ?", userID).First(&statsModel).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		statsModel = models.UserStats{UserID: userID}
		if err := r.db.Create(&statsModel).Error; err != nil {
			return nil, err
		}
	}
	return ToBalanceEntity(&statsModel), nil
}

func (r *balanceRepository) CreditPending(userID string, amount int64) error {
	if _, err := r.GetOrCreate(userID); err != nil {
		return err
	}
	return r.db.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"pending_balance": gorm.Expr("pending_balance + ?", amount),
			"total_sales":     gorm.Expr("total_sales + 1"),
		}).Error
}

func (r *balanceRepository) TryRelease(userID string, amount int64) (bool, error) {
	result := r.db.Model(&models.UserStats{}).
		Where("user_id = ? AND pending_balance >= ?", userID, amount).
		Updates(map[string]interface{}{
			"pending_balance":   gorm.Expr("pending_balance - ?", amount),
			"available_balance": gorm.Expr("available_balance + ?", amount),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *balanceRepository) TryWithdraw(userID string, amount int64) (bool, error) {
	result := r.db.Model(&models.UserStats{}).
		Where("user_id = ? AND available_balance >= ?", userID, amount).
		Update("available_balance", gorm.Expr("available_balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *balanceRepository) IncrementPurchases(userID string) error {
	if _, err := r.GetOrCreate(userID); err != nil {
		return err
	}
	return r.db.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Update("total_purchases", gorm.Expr("total_purchases + 1")).Error
}
