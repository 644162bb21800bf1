package persistent

import (
	"time"

	"campus-market/internal/entity"
	"campus-market/pkg/models"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(transaction *entity.Transaction) (*entity.Transaction, error)
	GetByID(id string) (*entity.Transaction, error)
	UpdateStatus(id string, status entity.TransactionStatus) error
	ListForUser(userID string, limit, offset int) ([]*entity.Transaction, error)
	GetCompletedBefore(cutoff time.Time, limit, offset int) ([]*entity.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(transaction *entity.Transaction) (*entity.Transaction, error) {
	transactionModel := &models.Transaction{
		ID:      transaction.ID,
		ItemID:  transaction.ItemID,
		BuyerID: transaction.BuyerID,
		Amount:  transaction.Amount,
		Status:  models.TransactionStatus(transaction.Status),
	}
	if err := r.db.Create(transactionModel).Error; err != nil {
		return nil, err
	}
	return ToTransactionEntity(transactionModel), nil
}

func (r *transactionRepository) GetByID(id string) (*entity.Transaction, error) {
	var transactionModel models.Transaction
	if err := r.db.Preload("Item").Where("id = ?", id).First(&transactionModel).Error; err != nil {
		return nil, err
	}
	return ToTransactionEntity(&transactionModel), nil
}

func (r *transactionRepository) UpdateStatus(id string, status entity.TransactionStatus) error {
	return r.db.Model(&models.Transaction{}).Where("id = ?", id).Update("status", string(status)).Error
}

func (r *transactionRepository) ListForUser(userID string, limit, offset int) ([]*entity.Transaction, error) {
	query := r.db.Model(&models.Transaction{}).Preload("Item").
		Where("buyer_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var transactionModels []models.Transaction
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = ToTransactionEntity(&transactionModels[i])
	}
	return transactions, nil
}

// GetCompletedBefore selects COMPLETED transactions created at or before the
// cutoff, oldest first, with the item preloaded for seller resolution.
func (r *transactionRepository) GetCompletedBefore(cutoff time.Time, limit, offset int) ([]*entity.Transaction, error) {
	query := r.db.Model(&models.Transaction{}).Preload("Item").
		Where("status = ? AND created_at <= ?", models.TransactionStatusCompleted, cutoff).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var transactionModels []models.Transaction
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = ToTransactionEntity(&transactionModels[i])
	}
	return transactions, nil
}
